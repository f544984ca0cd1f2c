package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/constants"
	"tobehealthy_backend/internals/features/lessonhistories/dto"
	"tobehealthy_backend/internals/features/lessonhistories/errs"
	"tobehealthy_backend/internals/features/lessonhistories/model"
	helper "tobehealthy_backend/internals/helpers"
)

// LessonHistoryRepository is the read side: scoped, paginated projections of
// lesson-history records. Mutations live in the service package.
type LessonHistoryRepository struct {
	DB *gorm.DB
}

func NewLessonHistoryRepository(db *gorm.DB) *LessonHistoryRepository {
	return &LessonHistoryRepository{DB: db}
}

/* ===============================
   Listings
=================================*/

// FindAllLessonHistory lists records visible to the caller: a trainer sees
// the records they authored, everyone else the records written about them.
// searchDate is an optional YYYYMM filter on the lesson date.
func (r *LessonHistoryRepository) FindAllLessonHistory(ctx context.Context, memberID uuid.UUID, memberType, searchDate string, paging helper.Paging) ([]dto.LessonHistoryResponse, int64, error) {
	base := r.DB.WithContext(ctx).Model(&model.LessonHistoryModel{})
	if memberType == constants.MemberTypeTrainer {
		base = base.Where("lesson_history_trainer_id = ?", memberID)
	} else {
		base = base.Where("lesson_history_student_id = ?", memberID)
	}
	return r.list(ctx, base, searchDate, paging)
}

// FindAllByStudent lists one student's records without role scoping. Used by
// trainers browsing a student they coach.
func (r *LessonHistoryRepository) FindAllByStudent(ctx context.Context, studentID uuid.UUID, searchDate string, paging helper.Paging) ([]dto.LessonHistoryResponse, int64, error) {
	base := r.DB.WithContext(ctx).Model(&model.LessonHistoryModel{}).
		Where("lesson_history_student_id = ?", studentID)
	return r.list(ctx, base, searchDate, paging)
}

func (r *LessonHistoryRepository) list(ctx context.Context, base *gorm.DB, searchDate string, paging helper.Paging) ([]dto.LessonHistoryResponse, int64, error) {
	if searchDate != "" {
		base = base.
			Joins("JOIN schedules ON schedules.schedule_id = lesson_histories.lesson_history_schedule_id").
			Where("to_char(schedules.schedule_lesson_dt, 'YYYYMM') = ?", searchDate)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.LessonHistoryModel
	if err := base.Session(&gorm.Session{}).
		Select("lesson_histories.*").
		Preload("Student").Preload("Trainer").Preload("Schedule").
		Order("lesson_histories.lesson_history_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out, err := r.toSummaries(ctx, rows, time.Now())
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindLatestByStudent returns the newest record for the student, or nil when
// none exists yet.
func (r *LessonHistoryRepository) FindLatestByStudent(ctx context.Context, studentID uuid.UUID) (*dto.LessonHistoryResponse, error) {
	var m model.LessonHistoryModel
	err := r.DB.WithContext(ctx).
		Preload("Student").Preload("Trainer").Preload("Schedule").
		Where("lesson_history_student_id = ?", studentID).
		Order("lesson_history_created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	out, err := r.toSummaries(ctx, []model.LessonHistoryModel{m}, time.Now())
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

/* ===============================
   Detail
=================================*/

// FindOneLessonHistory loads one record with its live comment thread. When
// the viewer is the record's student the unread feedback flag flips to read
// as a side effect; the flip is idempotent and the response reflects it.
func (r *LessonHistoryRepository) FindOneLessonHistory(ctx context.Context, id, viewerID uuid.UUID, viewerType string) (dto.LessonHistoryDetailResponse, error) {
	db := r.DB.WithContext(ctx)

	q := db.Preload("Student").Preload("Trainer").Preload("Schedule")
	if viewerType == constants.MemberTypeTrainer {
		q = q.Where("lesson_history_trainer_id = ?", viewerID)
	} else {
		q = q.Where("lesson_history_student_id = ?", viewerID)
	}

	var m model.LessonHistoryModel
	if err := q.First(&m, "lesson_history_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonHistoryDetailResponse{}, errs.ErrLessonHistoryNotFound
		}
		return dto.LessonHistoryDetailResponse{}, err
	}

	if viewerID == m.LessonHistoryStudentID && !m.LessonHistoryFeedbackChecked {
		if err := db.Model(&m).
			Update("lesson_history_feedback_checked", true).Error; err != nil {
			return dto.LessonHistoryDetailResponse{}, err
		}
		m.LessonHistoryFeedbackChecked = true
	}

	var comments []model.LessonHistoryCommentModel
	if err := db.Preload("Writer").
		Where("lesson_history_comment_lesson_history_id = ? AND lesson_history_comment_deleted_at IS NULL", id).
		Order("lesson_history_comment_parent_id ASC NULLS FIRST, lesson_history_comment_order ASC").
		Find(&comments).Error; err != nil {
		return dto.LessonHistoryDetailResponse{}, err
	}

	recordFiles, err := r.filesByOwner(ctx, model.FileOwnerLessonHistory, []uuid.UUID{id})
	if err != nil {
		return dto.LessonHistoryDetailResponse{}, err
	}

	commentIDs := make([]uuid.UUID, 0, len(comments))
	for _, cm := range comments {
		commentIDs = append(commentIDs, cm.LessonHistoryCommentID)
	}
	commentFiles, err := r.filesByOwner(ctx, model.FileOwnerComment, commentIDs)
	if err != nil {
		return dto.LessonHistoryDetailResponse{}, err
	}

	return dto.ToLessonHistoryDetailResponse(
		m, int64(len(comments)), recordFiles[id], comments, commentFiles, time.Now(),
	), nil
}

/* ===============================
   hydration
=================================*/

func (r *LessonHistoryRepository) toSummaries(ctx context.Context, rows []model.LessonHistoryModel, now time.Time) ([]dto.LessonHistoryResponse, error) {
	out := make([]dto.LessonHistoryResponse, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.LessonHistoryID)
	}

	counts, err := r.commentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	files, err := r.filesByOwner(ctx, model.FileOwnerLessonHistory, ids)
	if err != nil {
		return nil, err
	}

	for _, m := range rows {
		out = append(out, dto.ToLessonHistoryResponse(m, counts[m.LessonHistoryID], files[m.LessonHistoryID], now))
	}
	return out, nil
}

// commentCounts counts live comments per record in one grouped query.
func (r *LessonHistoryRepository) commentCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		ID uuid.UUID `gorm:"column:id"`
		N  int64     `gorm:"column:n"`
	}
	var grouped []row
	if err := r.DB.WithContext(ctx).Model(&model.LessonHistoryCommentModel{}).
		Select("lesson_history_comment_lesson_history_id AS id, COUNT(*) AS n").
		Where("lesson_history_comment_lesson_history_id IN ? AND lesson_history_comment_deleted_at IS NULL", ids).
		Group("lesson_history_comment_lesson_history_id").
		Scan(&grouped).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(grouped))
	for _, g := range grouped {
		counts[g.ID] = g.N
	}
	return counts, nil
}

// filesByOwner fetches attachment rows for a set of owners, sorted by batch
// order within each owner.
func (r *LessonHistoryRepository) filesByOwner(ctx context.Context, ownerType string, ownerIDs []uuid.UUID) (map[uuid.UUID][]model.LessonHistoryFileModel, error) {
	grouped := make(map[uuid.UUID][]model.LessonHistoryFileModel)
	if len(ownerIDs) == 0 {
		return grouped, nil
	}

	var rows []model.LessonHistoryFileModel
	if err := r.DB.WithContext(ctx).
		Where("lesson_history_file_owner_type = ? AND lesson_history_file_owner_id IN ?", ownerType, ownerIDs).
		Order("lesson_history_file_owner_id ASC, lesson_history_file_order ASC, lesson_history_file_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, f := range rows {
		grouped[f.LessonHistoryFileOwnerID] = append(grouped[f.LessonHistoryFileOwnerID], f)
	}
	return grouped, nil
}

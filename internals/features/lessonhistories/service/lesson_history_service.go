package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/constants"
	"tobehealthy_backend/internals/features/lessonhistories/dto"
	"tobehealthy_backend/internals/features/lessonhistories/errs"
	"tobehealthy_backend/internals/features/lessonhistories/model"
	MemberModel "tobehealthy_backend/internals/features/members/model"
	ScheduleModel "tobehealthy_backend/internals/features/schedules/model"
	"tobehealthy_backend/internals/helpers/oss"
)

// uploadDir is the object-storage prefix for every lesson-history blob.
const uploadDir = "lesson-histories"

// LessonHistoryService owns the write side: records, attachments and the
// comment thread. Reads live in the repository package.
type LessonHistoryService struct {
	DB   *gorm.DB
	Blob oss.BlobService
}

func NewLessonHistoryService(db *gorm.DB, blob oss.BlobService) *LessonHistoryService {
	return &LessonHistoryService{DB: db, Blob: blob}
}

/* ===============================
   Lesson history record
=================================*/

// RegisterLessonHistory creates the trainer's record for one schedule slot.
// The feedback flag starts unread; the student flips it by opening the detail.
func (s *LessonHistoryService) RegisterLessonHistory(ctx context.Context, trainerID uuid.UUID, req dto.RegisterLessonHistoryRequest) (model.LessonHistoryModel, error) {
	var out model.LessonHistoryModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student MemberModel.MemberModel
		if err := tx.First(&student, "member_id = ?", req.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrMemberNotFound
			}
			return err
		}

		var trainer MemberModel.MemberModel
		if err := tx.First(&trainer, "member_id = ? AND member_type = ?", trainerID, constants.MemberTypeTrainer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrTrainerNotFound
			}
			return err
		}

		var schedule ScheduleModel.ScheduleModel
		if err := tx.First(&schedule, "schedule_id = ?", req.ScheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrScheduleNotFound
			}
			return err
		}

		out = model.LessonHistoryModel{
			LessonHistoryTitle:      req.Title,
			LessonHistoryContent:    req.Content,
			LessonHistoryStudentID:  student.MemberID,
			LessonHistoryTrainerID:  trainer.MemberID,
			LessonHistoryScheduleID: schedule.ScheduleID,
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		return model.LessonHistoryModel{}, err
	}
	return out, nil
}

func (s *LessonHistoryService) UpdateLessonHistory(ctx context.Context, id uuid.UUID, req dto.UpdateLessonHistoryRequest) (model.LessonHistoryModel, error) {
	var m model.LessonHistoryModel
	if err := s.DB.WithContext(ctx).First(&m, "lesson_history_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.LessonHistoryModel{}, errs.ErrLessonHistoryNotFound
		}
		return model.LessonHistoryModel{}, err
	}

	m.LessonHistoryTitle = req.Title
	m.LessonHistoryContent = req.Content
	if err := s.DB.WithContext(ctx).Model(&m).Updates(map[string]any{
		"lesson_history_title":   m.LessonHistoryTitle,
		"lesson_history_content": m.LessonHistoryContent,
	}).Error; err != nil {
		return model.LessonHistoryModel{}, err
	}
	return m, nil
}

// DeleteLessonHistory removes the record, its comment thread and every file
// row owned by either. Blob deletion happens after commit, best effort.
func (s *LessonHistoryService) DeleteLessonHistory(ctx context.Context, id uuid.UUID) error {
	var orphanURLs []string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.LessonHistoryModel
		if err := tx.First(&m, "lesson_history_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrLessonHistoryNotFound
			}
			return err
		}

		var commentIDs []uuid.UUID
		if err := tx.Model(&model.LessonHistoryCommentModel{}).
			Where("lesson_history_comment_lesson_history_id = ?", id).
			Pluck("lesson_history_comment_id", &commentIDs).Error; err != nil {
			return err
		}

		fileQ := tx.Model(&model.LessonHistoryFileModel{}).
			Where("lesson_history_file_owner_type = ? AND lesson_history_file_owner_id = ?", model.FileOwnerLessonHistory, id)
		if len(commentIDs) > 0 {
			fileQ = fileQ.Or("lesson_history_file_owner_type = ? AND lesson_history_file_owner_id IN ?", model.FileOwnerComment, commentIDs)
		}
		if err := fileQ.Pluck("lesson_history_file_url", &orphanURLs).Error; err != nil {
			return err
		}

		del := tx.Where("lesson_history_file_owner_type = ? AND lesson_history_file_owner_id = ?", model.FileOwnerLessonHistory, id)
		if len(commentIDs) > 0 {
			del = del.Or("lesson_history_file_owner_type = ? AND lesson_history_file_owner_id IN ?", model.FileOwnerComment, commentIDs)
		}
		if err := del.Delete(&model.LessonHistoryFileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_history_comment_lesson_history_id = ?", id).
			Delete(&model.LessonHistoryCommentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
	if err != nil {
		return err
	}

	if s.Blob != nil {
		for _, u := range orphanURLs {
			_ = s.Blob.DeleteByPublicURL(u)
		}
	}
	return nil
}

/* ===============================
   Attachments
=================================*/

// AttachFilesToLessonHistory uploads a batch onto an existing record.
// File order restarts at 1 for every call.
func (s *LessonHistoryService) AttachFilesToLessonHistory(ctx context.Context, id, uploaderID uuid.UUID, files []*multipart.FileHeader) ([]dto.UploadFileResult, error) {
	var exists int64
	if err := s.DB.WithContext(ctx).Model(&model.LessonHistoryModel{}).
		Where("lesson_history_id = ?", id).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.ErrLessonHistoryNotFound
	}
	return s.uploadBatch(ctx, s.DB, model.FileOwnerLessonHistory, id, uploaderID, files)
}

// uploadBatch validates the batch, pushes each non-empty file to object
// storage and persists the rows. Zero-byte parts are skipped, not counted
// against the cap, and never shift the 1-based order of later files.
func (s *LessonHistoryService) uploadBatch(ctx context.Context, db *gorm.DB, ownerType string, ownerID, uploaderID uuid.UUID, files []*multipart.FileHeader) ([]dto.UploadFileResult, error) {
	if err := CheckMaximumFiles(files); err != nil {
		return nil, err
	}
	if s.Blob == nil && hasNonEmpty(files) {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "file storage is not configured")
	}

	var (
		rows    []model.LessonHistoryFileModel
		results []dto.UploadFileResult
		order   int
	)
	for _, fh := range files {
		if fh == nil || fh.Size == 0 {
			continue
		}
		url, err := s.Blob.UploadAttachment(uploadDir, fh)
		if err != nil {
			s.cleanupBlobs(rows)
			return nil, err
		}
		order++

		name := fh.Filename
		uid := uploaderID
		rows = append(rows, model.LessonHistoryFileModel{
			LessonHistoryFileOriginalName: &name,
			LessonHistoryFileURL:          url,
			LessonHistoryFileOrder:        order,
			LessonHistoryFileMemberID:     &uid,
			LessonHistoryFileOwnerType:    ownerType,
			LessonHistoryFileOwnerID:      ownerID,
		})
		results = append(results, dto.UploadFileResult{
			OriginalName: name,
			FileURL:      url,
			FileOrder:    order,
		})
	}
	if len(rows) == 0 {
		return []dto.UploadFileResult{}, nil
	}

	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		s.cleanupBlobs(rows)
		return nil, err
	}
	return results, nil
}

func (s *LessonHistoryService) cleanupBlobs(rows []model.LessonHistoryFileModel) {
	if s.Blob == nil {
		return
	}
	for _, r := range rows {
		_ = s.Blob.DeleteByPublicURL(r.LessonHistoryFileURL)
	}
}

func hasNonEmpty(files []*multipart.FileHeader) bool {
	for _, fh := range files {
		if fh != nil && fh.Size > 0 {
			return true
		}
	}
	return false
}

// CheckMaximumFiles enforces the per-call attachment cap on the raw part
// count. Empty parts count against the cap even though they are never
// stored.
func CheckMaximumFiles(files []*multipart.FileHeader) error {
	if len(files) > constants.MaxUploadFilesPerCall {
		return errs.ErrExceedMaximumFiles
	}
	return nil
}

//go:build testutil

package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/constants"
	"tobehealthy_backend/internals/features/lessonhistories/dto"
	"tobehealthy_backend/internals/features/lessonhistories/errs"
	"tobehealthy_backend/internals/features/lessonhistories/model"
	"tobehealthy_backend/internals/features/lessonhistories/repository"
	MemberModel "tobehealthy_backend/internals/features/members/model"
	ScheduleModel "tobehealthy_backend/internals/features/schedules/model"
	helper "tobehealthy_backend/internals/helpers"
	"tobehealthy_backend/internals/testutil/testdb"
)

type fakeBlob struct {
	uploads int
	deleted []string
}

func (f *fakeBlob) UploadAttachment(dir string, fh *multipart.FileHeader) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://blob.test/%s/%d-%s", dir, f.uploads, fh.Filename), nil
}

func (f *fakeBlob) DeleteByPublicURL(publicURL string) error {
	f.deleted = append(f.deleted, publicURL)
	return nil
}

func seedMember(t *testing.T, db *gorm.DB, name, memberType string) uuid.UUID {
	t.Helper()
	m := MemberModel.MemberModel{MemberName: name, MemberType: memberType}
	require.NoError(t, db.Create(&m).Error)
	return m.MemberID
}

func seedSchedule(t *testing.T, db *gorm.DB, trainerID, studentID uuid.UUID, lessonDt time.Time) uuid.UUID {
	t.Helper()
	s := ScheduleModel.ScheduleModel{
		ScheduleLessonDt:        lessonDt,
		ScheduleLessonStartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		ScheduleLessonEndTime:   time.Date(0, 1, 1, 9, 50, 0, 0, time.UTC),
		ScheduleTrainerID:       &trainerID,
		ScheduleStudentID:       &studentID,
	}
	require.NoError(t, db.Create(&s).Error)
	return s.ScheduleID
}

func register(t *testing.T, svc *LessonHistoryService, trainerID, studentID, scheduleID uuid.UUID, title string) model.LessonHistoryModel {
	t.Helper()
	m, err := svc.RegisterLessonHistory(context.Background(), trainerID, dto.RegisterLessonHistoryRequest{
		StudentID:  studentID,
		ScheduleID: scheduleID,
		Title:      title,
		Content:    "스쿼트 자세 교정",
	})
	require.NoError(t, err)
	return m
}

func TestCommentThreadScenario(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewLessonHistoryService(db, &fakeBlob{})
	repo := repository.NewLessonHistoryRepository(db)

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)
	schedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	lh := register(t, svc, trainer, student, schedule, "오늘의 수업")

	c1, err := svc.AddComment(ctx, lh.LessonHistoryID, student, "첫 번째 댓글", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c1.LessonHistoryCommentOrder)

	c2, err := svc.AddComment(ctx, lh.LessonHistoryID, trainer, "두 번째 댓글", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c2.LessonHistoryCommentOrder)

	// Reply scope has its own 1-based sequence.
	r1, err := svc.AddReply(ctx, lh.LessonHistoryID, c1.LessonHistoryCommentID, trainer, "답글", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r1.LessonHistoryCommentOrder)
	require.NotNil(t, r1.LessonHistoryCommentParentID)
	assert.Equal(t, c1.LessonHistoryCommentID, *r1.LessonHistoryCommentParentID)

	// Soft delete keeps the order occupied.
	require.NoError(t, svc.DeleteComment(ctx, c1.LessonHistoryCommentID))

	c3, err := svc.AddComment(ctx, lh.LessonHistoryID, student, "세 번째 댓글", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c3.LessonHistoryCommentOrder)

	detail, err := repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, trainer, constants.MemberTypeTrainer)
	require.NoError(t, err)
	orders := map[int]bool{}
	for _, cm := range detail.Comments {
		assert.NotEqual(t, c1.LessonHistoryCommentID, cm.CommentID, "deleted comment must not be listed")
		if cm.ParentID == nil {
			orders[cm.Order] = true
		}
	}
	assert.Equal(t, map[int]bool{2: true, 3: true}, orders)
	assert.EqualValues(t, 3, detail.CommentTotalCount)
}

func TestCommentThreadErrors(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewLessonHistoryService(db, &fakeBlob{})

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)
	schedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	lh := register(t, svc, trainer, student, schedule, "오늘의 수업")

	_, err := svc.AddComment(ctx, uuid.New(), student, "x", nil)
	assert.ErrorIs(t, err, errs.ErrLessonHistoryNotFound)

	_, err = svc.AddComment(ctx, lh.LessonHistoryID, uuid.New(), "x", nil)
	assert.ErrorIs(t, err, errs.ErrMemberNotFound)

	_, err = svc.AddReply(ctx, lh.LessonHistoryID, uuid.New(), student, "x", nil)
	assert.ErrorIs(t, err, errs.ErrCommentNotFound)

	// Replying under a soft-deleted parent is rejected.
	c, err := svc.AddComment(ctx, lh.LessonHistoryID, student, "댓글", nil)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComment(ctx, c.LessonHistoryCommentID))
	_, err = svc.AddReply(ctx, lh.LessonHistoryID, c.LessonHistoryCommentID, trainer, "x", nil)
	assert.ErrorIs(t, err, errs.ErrCommentNotFound)

	assert.ErrorIs(t, svc.DeleteComment(ctx, c.LessonHistoryCommentID), errs.ErrCommentNotFound)
	_, err = svc.UpdateComment(ctx, c.LessonHistoryCommentID, "y")
	assert.ErrorIs(t, err, errs.ErrCommentNotFound)
}

func TestRegisterLessonHistoryNotFounds(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewLessonHistoryService(db, &fakeBlob{})

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)
	schedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	_, err := svc.RegisterLessonHistory(ctx, trainer, dto.RegisterLessonHistoryRequest{
		StudentID: uuid.New(), ScheduleID: schedule, Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, errs.ErrMemberNotFound)

	// A student id in the trainer slot fails the trainer lookup.
	_, err = svc.RegisterLessonHistory(ctx, student, dto.RegisterLessonHistoryRequest{
		StudentID: student, ScheduleID: schedule, Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, errs.ErrTrainerNotFound)

	_, err = svc.RegisterLessonHistory(ctx, trainer, dto.RegisterLessonHistoryRequest{
		StudentID: student, ScheduleID: uuid.New(), Title: "t", Content: "c",
	})
	assert.ErrorIs(t, err, errs.ErrScheduleNotFound)
}

func TestFeedbackFlipOnStudentView(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewLessonHistoryService(db, &fakeBlob{})
	repo := repository.NewLessonHistoryRepository(db)

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)
	other := seedMember(t, db, "박철수", constants.MemberTypeStudent)
	schedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	lh := register(t, svc, trainer, student, schedule, "오늘의 수업")

	// Trainer view never flips the flag.
	detail, err := repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, trainer, constants.MemberTypeTrainer)
	require.NoError(t, err)
	assert.False(t, detail.FeedbackChecked)

	// Another student cannot see the record at all.
	_, err = repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, other, constants.MemberTypeStudent)
	assert.ErrorIs(t, err, errs.ErrLessonHistoryNotFound)

	// The record's student flips it; the flip is idempotent.
	detail, err = repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, student, constants.MemberTypeStudent)
	require.NoError(t, err)
	assert.True(t, detail.FeedbackChecked)

	detail, err = repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, student, constants.MemberTypeStudent)
	require.NoError(t, err)
	assert.True(t, detail.FeedbackChecked)
}

func TestFindAllScopeAndDateFilter(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewLessonHistoryService(db, &fakeBlob{})
	repo := repository.NewLessonHistoryRepository(db)

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	otherTrainer := seedMember(t, db, "최강사", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)

	janSchedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	febSchedule := seedSchedule(t, db, trainer, student, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	otherSchedule := seedSchedule(t, db, otherTrainer, student, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

	register(t, svc, trainer, student, janSchedule, "1월 수업")
	register(t, svc, trainer, student, febSchedule, "2월 수업")
	register(t, svc, otherTrainer, student, otherSchedule, "다른 트레이너 수업")

	paging := helper.Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}

	// Trainer sees only their own records.
	items, total, err := repo.FindAllLessonHistory(ctx, trainer, constants.MemberTypeTrainer, "", paging)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	// Student sees every record written about them.
	_, total, err = repo.FindAllLessonHistory(ctx, student, constants.MemberTypeStudent, "", paging)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	// YYYYMM filter narrows by lesson month.
	items, total, err = repo.FindAllLessonHistory(ctx, trainer, constants.MemberTypeTrainer, "202401", paging)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "1월 수업", items[0].Title)

	_, total, err = repo.FindAllLessonHistory(ctx, trainer, constants.MemberTypeTrainer, "202403", paging)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	// Unscoped student listing for trainers browsing a student.
	_, total, err = repo.FindAllByStudent(ctx, student, "", paging)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestAttachFiles(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	blob := &fakeBlob{}
	svc := NewLessonHistoryService(db, blob)

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)
	schedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	lh := register(t, svc, trainer, student, schedule, "오늘의 수업")

	_, err := svc.AttachFilesToLessonHistory(ctx, uuid.New(), trainer, nil)
	assert.ErrorIs(t, err, errs.ErrLessonHistoryNotFound)

	four := []*multipart.FileHeader{fh(1), fh(1), fh(1), fh(1)}
	_, err = svc.AttachFilesToLessonHistory(ctx, lh.LessonHistoryID, trainer, four)
	assert.ErrorIs(t, err, errs.ErrExceedMaximumFiles)

	// Empty parts are skipped without shifting order.
	batch := []*multipart.FileHeader{fh(5), fh(0), fh(7)}
	results, err := svc.AttachFilesToLessonHistory(ctx, lh.LessonHistoryID, trainer, batch)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].FileOrder)
	assert.Equal(t, 2, results[1].FileOrder)

	// Order restarts at 1 on every call.
	results, err = svc.AttachFilesToLessonHistory(ctx, lh.LessonHistoryID, trainer, []*multipart.FileHeader{fh(3)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].FileOrder)

	var rows []model.LessonHistoryFileModel
	require.NoError(t, db.Where(
		"lesson_history_file_owner_type = ? AND lesson_history_file_owner_id = ?",
		model.FileOwnerLessonHistory, lh.LessonHistoryID,
	).Find(&rows).Error)
	assert.Len(t, rows, 3)

	// Reads sort by stored order first, so the second batch's order-1 file
	// comes before the first batch's order-2 file despite being newer.
	repo := repository.NewLessonHistoryRepository(db)
	detail, err := repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, trainer, constants.MemberTypeTrainer)
	require.NoError(t, err)
	require.Len(t, detail.Files, 3)
	assert.Equal(t, []int{1, 1, 2}, []int{
		detail.Files[0].FileOrder,
		detail.Files[1].FileOrder,
		detail.Files[2].FileOrder,
	})
}

func TestDeleteLessonHistoryRemovesThreadAndFiles(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	blob := &fakeBlob{}
	svc := NewLessonHistoryService(db, blob)
	repo := repository.NewLessonHistoryRepository(db)

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)
	schedule := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	lh := register(t, svc, trainer, student, schedule, "오늘의 수업")

	_, err := svc.AttachFilesToLessonHistory(ctx, lh.LessonHistoryID, trainer, []*multipart.FileHeader{fh(5)})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, lh.LessonHistoryID, student, "댓글", []*multipart.FileHeader{fh(5)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLessonHistory(ctx, lh.LessonHistoryID))

	_, err = repo.FindOneLessonHistory(ctx, lh.LessonHistoryID, trainer, constants.MemberTypeTrainer)
	assert.ErrorIs(t, err, errs.ErrLessonHistoryNotFound)

	var comments int64
	require.NoError(t, db.Model(&model.LessonHistoryCommentModel{}).
		Where("lesson_history_comment_lesson_history_id = ?", lh.LessonHistoryID).
		Count(&comments).Error)
	assert.EqualValues(t, 0, comments)

	var files int64
	require.NoError(t, db.Model(&model.LessonHistoryFileModel{}).Count(&files).Error)
	assert.EqualValues(t, 0, files)

	// Both blobs were released from object storage.
	assert.Len(t, blob.deleted, 2)

	assert.ErrorIs(t, svc.DeleteLessonHistory(ctx, lh.LessonHistoryID), errs.ErrLessonHistoryNotFound)
}

func TestFindLatestByStudent(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewLessonHistoryService(db, &fakeBlob{})
	repo := repository.NewLessonHistoryRepository(db)

	trainer := seedMember(t, db, "김민수", constants.MemberTypeTrainer)
	student := seedMember(t, db, "이영희", constants.MemberTypeStudent)

	latest, err := repo.FindLatestByStudent(ctx, student)
	require.NoError(t, err)
	assert.Nil(t, latest)

	s1 := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	register(t, svc, trainer, student, s1, "첫 수업")
	time.Sleep(10 * time.Millisecond)
	s2 := seedSchedule(t, db, trainer, student, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC))
	register(t, svc, trainer, student, s2, "둘째 수업")

	latest, err = repo.FindLatestByStudent(ctx, student)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "둘째 수업", latest.Title)
}

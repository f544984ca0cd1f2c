package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tobehealthy_backend/internals/features/lessonhistories/errs"
	"tobehealthy_backend/internals/features/lessonhistories/model"
	MemberModel "tobehealthy_backend/internals/features/members/model"
)

/* ===============================
   Comment thread
=================================*/

// AddComment appends a top-level comment. The record row is locked for the
// duration of the insert so the per-record order sequence has no gaps or
// duplicates under concurrent writers.
func (s *LessonHistoryService) AddComment(ctx context.Context, lessonHistoryID, writerID uuid.UUID, content string, files []*multipart.FileHeader) (model.LessonHistoryCommentModel, error) {
	if err := CheckMaximumFiles(files); err != nil {
		return model.LessonHistoryCommentModel{}, err
	}

	var out model.LessonHistoryCommentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireMember(tx, writerID); err != nil {
			return err
		}

		// Anchor lock: serializes order assignment for this record's
		// top-level scope.
		var lh model.LessonHistoryModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&lh, "lesson_history_id = ?", lessonHistoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrLessonHistoryNotFound
			}
			return err
		}

		next, err := nextCommentOrder(tx, lessonHistoryID, nil)
		if err != nil {
			return err
		}

		out = model.LessonHistoryCommentModel{
			LessonHistoryCommentContent:         content,
			LessonHistoryCommentOrder:           next,
			LessonHistoryCommentWriterID:        writerID,
			LessonHistoryCommentLessonHistoryID: lessonHistoryID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		_, err = s.uploadBatch(ctx, tx, model.FileOwnerComment, out.LessonHistoryCommentID, writerID, files)
		return err
	})
	if err != nil {
		return model.LessonHistoryCommentModel{}, err
	}
	return out, nil
}

// AddReply appends a reply under a live parent comment. The parent row is
// the lock anchor; its reply scope gets its own 1-based sequence.
func (s *LessonHistoryService) AddReply(ctx context.Context, lessonHistoryID, parentID, writerID uuid.UUID, content string, files []*multipart.FileHeader) (model.LessonHistoryCommentModel, error) {
	if err := CheckMaximumFiles(files); err != nil {
		return model.LessonHistoryCommentModel{}, err
	}

	var out model.LessonHistoryCommentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireMember(tx, writerID); err != nil {
			return err
		}

		var parent model.LessonHistoryCommentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&parent,
				"lesson_history_comment_id = ? AND lesson_history_comment_lesson_history_id = ? AND lesson_history_comment_deleted_at IS NULL",
				parentID, lessonHistoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrCommentNotFound
			}
			return err
		}

		next, err := nextCommentOrder(tx, lessonHistoryID, &parentID)
		if err != nil {
			return err
		}

		out = model.LessonHistoryCommentModel{
			LessonHistoryCommentContent:         content,
			LessonHistoryCommentOrder:           next,
			LessonHistoryCommentWriterID:        writerID,
			LessonHistoryCommentLessonHistoryID: lessonHistoryID,
			LessonHistoryCommentParentID:        &parentID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		_, err = s.uploadBatch(ctx, tx, model.FileOwnerComment, out.LessonHistoryCommentID, writerID, files)
		return err
	})
	if err != nil {
		return model.LessonHistoryCommentModel{}, err
	}
	return out, nil
}

func (s *LessonHistoryService) UpdateComment(ctx context.Context, commentID uuid.UUID, content string) (model.LessonHistoryCommentModel, error) {
	var m model.LessonHistoryCommentModel
	if err := s.DB.WithContext(ctx).
		First(&m, "lesson_history_comment_id = ? AND lesson_history_comment_deleted_at IS NULL", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.LessonHistoryCommentModel{}, errs.ErrCommentNotFound
		}
		return model.LessonHistoryCommentModel{}, err
	}

	m.LessonHistoryCommentContent = content
	if err := s.DB.WithContext(ctx).Model(&m).
		Update("lesson_history_comment_content", content).Error; err != nil {
		return model.LessonHistoryCommentModel{}, err
	}
	return m, nil
}

// DeleteComment soft-deletes: the row keeps its order so the scope sequence
// is never renumbered. Replies stay visible.
func (s *LessonHistoryService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&model.LessonHistoryCommentModel{}).
		Where("lesson_history_comment_id = ? AND lesson_history_comment_deleted_at IS NULL", commentID).
		Update("lesson_history_comment_deleted_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrCommentNotFound
	}
	return nil
}

/* ===============================
   internals
=================================*/

func requireMember(tx *gorm.DB, memberID uuid.UUID) error {
	var n int64
	if err := tx.Model(&MemberModel.MemberModel{}).
		Where("member_id = ?", memberID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}

// nextCommentOrder returns max(order)+1 over the scope, soft-deleted rows
// included, so an order value is never handed out twice.
func nextCommentOrder(tx *gorm.DB, lessonHistoryID uuid.UUID, parentID *uuid.UUID) (int, error) {
	q := tx.Model(&model.LessonHistoryCommentModel{}).
		Where("lesson_history_comment_lesson_history_id = ?", lessonHistoryID)
	if parentID == nil {
		q = q.Where("lesson_history_comment_parent_id IS NULL")
	} else {
		q = q.Where("lesson_history_comment_parent_id = ?", *parentID)
	}

	var max int
	if err := q.Select("COALESCE(MAX(lesson_history_comment_order), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

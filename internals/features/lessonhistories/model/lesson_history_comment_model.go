package model

import (
	"time"

	"github.com/google/uuid"

	MemberModel "tobehealthy_backend/internals/features/members/model"
)

// LessonHistoryCommentModel is one comment or reply on a lesson history.
// CommentOrder is the append-only sequence inside its scope: top-level
// comments of the record when ParentID is nil, replies under ParentID
// otherwise. Orders are never reused or renumbered; deletion is soft.
type LessonHistoryCommentModel struct {
	LessonHistoryCommentID      uuid.UUID `gorm:"column:lesson_history_comment_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	LessonHistoryCommentContent string    `gorm:"column:lesson_history_comment_content;type:text;not null"`
	LessonHistoryCommentOrder   int       `gorm:"column:lesson_history_comment_order;not null"`

	LessonHistoryCommentWriterID        uuid.UUID  `gorm:"column:lesson_history_comment_writer_id;type:uuid;not null"`
	LessonHistoryCommentLessonHistoryID uuid.UUID  `gorm:"column:lesson_history_comment_lesson_history_id;type:uuid;not null"`
	LessonHistoryCommentParentID        *uuid.UUID `gorm:"column:lesson_history_comment_parent_id;type:uuid"` // nil = top-level

	LessonHistoryCommentDeletedAt *time.Time `gorm:"column:lesson_history_comment_deleted_at"`
	LessonHistoryCommentCreatedAt time.Time  `gorm:"column:lesson_history_comment_created_at;autoCreateTime"`
	LessonHistoryCommentUpdatedAt time.Time  `gorm:"column:lesson_history_comment_updated_at;autoUpdateTime"`

	// Relations
	Writer *MemberModel.MemberModel `gorm:"foreignKey:LessonHistoryCommentWriterID"`
}

func (LessonHistoryCommentModel) TableName() string {
	return "lesson_history_comments"
}

func (m LessonHistoryCommentModel) IsDeleted() bool {
	return m.LessonHistoryCommentDeletedAt != nil
}

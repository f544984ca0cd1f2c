package model

import (
	"time"

	"github.com/google/uuid"
)

// File owner kinds. A file belongs to exactly one owner, tagged rather
// than spread over two nullable foreign keys.
const (
	FileOwnerLessonHistory = "lesson_history"
	FileOwnerComment       = "comment"
)

// LessonHistoryFileModel is one uploaded attachment. FileOrder is 1-based
// per upload batch and restarts every call.
type LessonHistoryFileModel struct {
	LessonHistoryFileID           uuid.UUID `gorm:"column:lesson_history_file_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	LessonHistoryFileOriginalName *string   `gorm:"column:lesson_history_file_original_name;type:varchar(255)"`
	LessonHistoryFileURL          string    `gorm:"column:lesson_history_file_url;type:text;not null"`
	LessonHistoryFileOrder        int       `gorm:"column:lesson_history_file_order;not null"`

	LessonHistoryFileMemberID  *uuid.UUID `gorm:"column:lesson_history_file_member_id;type:uuid"`
	LessonHistoryFileOwnerType string     `gorm:"column:lesson_history_file_owner_type;type:varchar(20);not null"`
	LessonHistoryFileOwnerID   uuid.UUID  `gorm:"column:lesson_history_file_owner_id;type:uuid;not null"`

	LessonHistoryFileCreatedAt time.Time `gorm:"column:lesson_history_file_created_at;autoCreateTime"`
}

func (LessonHistoryFileModel) TableName() string {
	return "lesson_history_files"
}

package model

import (
	"time"

	"github.com/google/uuid"

	MemberModel "tobehealthy_backend/internals/features/members/model"
	ScheduleModel "tobehealthy_backend/internals/features/schedules/model"
)

// LessonHistoryModel is the trainer's written record of one lesson with a
// student. Exactly one schedule per record (unique FK).
type LessonHistoryModel struct {
	LessonHistoryID      uuid.UUID `gorm:"column:lesson_history_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	LessonHistoryTitle   string    `gorm:"column:lesson_history_title;type:varchar(255);not null"`
	LessonHistoryContent string    `gorm:"column:lesson_history_content;type:text;not null"`

	// false = the student has not read the note yet
	LessonHistoryFeedbackChecked bool `gorm:"column:lesson_history_feedback_checked;not null;default:false"`

	LessonHistoryStudentID  uuid.UUID `gorm:"column:lesson_history_student_id;type:uuid;not null"`
	LessonHistoryTrainerID  uuid.UUID `gorm:"column:lesson_history_trainer_id;type:uuid;not null"`
	LessonHistoryScheduleID uuid.UUID `gorm:"column:lesson_history_schedule_id;type:uuid;not null;unique"`

	LessonHistoryCreatedAt time.Time `gorm:"column:lesson_history_created_at;autoCreateTime"`
	LessonHistoryUpdatedAt time.Time `gorm:"column:lesson_history_updated_at;autoUpdateTime"`

	// Relations
	Student  *MemberModel.MemberModel     `gorm:"foreignKey:LessonHistoryStudentID"`
	Trainer  *MemberModel.MemberModel     `gorm:"foreignKey:LessonHistoryTrainerID"`
	Schedule *ScheduleModel.ScheduleModel `gorm:"foreignKey:LessonHistoryScheduleID"`
	Comments []LessonHistoryCommentModel  `gorm:"foreignKey:LessonHistoryCommentLessonHistoryID"`
}

func (LessonHistoryModel) TableName() string {
	return "lesson_histories"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleModel is a reserved lesson slot. Owned by the scheduling service;
// read-only here.
type ScheduleModel struct {
	ScheduleID              uuid.UUID  `gorm:"column:schedule_id;primaryKey;type:uuid;default:gen_random_uuid()"`
	ScheduleLessonDt        time.Time  `gorm:"column:schedule_lesson_dt;type:date;not null"`
	ScheduleLessonStartTime time.Time  `gorm:"column:schedule_lesson_start_time;type:time;not null"`
	ScheduleLessonEndTime   time.Time  `gorm:"column:schedule_lesson_end_time;type:time;not null"`
	ScheduleTrainerID       *uuid.UUID `gorm:"column:schedule_trainer_id;type:uuid"`
	ScheduleStudentID       *uuid.UUID `gorm:"column:schedule_student_id;type:uuid"`

	ScheduleCreatedAt time.Time `gorm:"column:schedule_created_at;autoCreateTime"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}

package dto

import "github.com/google/uuid"

// ============================
// Request DTOs
// ============================

type RegisterLessonHistoryRequest struct {
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	ScheduleID uuid.UUID `json:"schedule_id" validate:"required"`
	Title      string    `json:"title" validate:"required,min=1,max=255"`
	Content    string    `json:"content" validate:"required"`
}

type UpdateLessonHistoryRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required"`
}

// Comment text arrives as the multipart field "comment" alongside files.
type RegisterCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

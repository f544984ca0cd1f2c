package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tobehealthy_backend/internals/constants"
	"tobehealthy_backend/internals/features/lessonhistories/model"
)

// ============================
// Response DTOs
// ============================

type LessonHistoryResponse struct {
	LessonHistoryID   uuid.UUID    `json:"lesson_history_id"`
	Title             string       `json:"title"`
	Content           string       `json:"content"`
	CommentTotalCount int64        `json:"comment_total_count"`
	CreatedAt         time.Time    `json:"created_at"`
	Student           string       `json:"student"`
	Trainer           string       `json:"trainer"`
	ScheduleID        uuid.UUID    `json:"schedule_id"`
	LessonDt          string       `json:"lesson_dt"`
	LessonTime        string       `json:"lesson_time"`
	AttendanceStatus  string       `json:"attendance_status"`
	Files             []FileResult `json:"files"`
}

type LessonHistoryDetailResponse struct {
	LessonHistoryResponse
	FeedbackChecked bool            `json:"feedback_checked"`
	FeedbackStatus  string          `json:"feedback_status"`
	Comments        []CommentResult `json:"comments"`
}

type CommentResult struct {
	CommentID  uuid.UUID    `json:"comment_id"`
	Content    string       `json:"content"`
	WriterID   uuid.UUID    `json:"writer_id"`
	WriterName string       `json:"writer_name,omitempty"`
	Order      int          `json:"order"`
	ParentID   *uuid.UUID   `json:"parent_id,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	Files      []FileResult `json:"files,omitempty"`
}

type FileResult struct {
	FileURL   string    `json:"file_url"`
	FileOrder int       `json:"file_order"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadFileResult struct {
	OriginalName string `json:"original_name"`
	FileURL      string `json:"file_url"`
	FileOrder    int    `json:"file_order"`
}

// ============================
// Display derivations
// ============================

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatLessonDt renders a lesson date as "MM월 dd일 E요일" (Korean weekday).
func FormatLessonDt(lessonDt time.Time) string {
	return fmt.Sprintf("%02d월 %02d일 %s요일",
		int(lessonDt.Month()), lessonDt.Day(), koreanWeekdays[int(lessonDt.Weekday())])
}

// FormatLessonTime renders the slot as "HH:mm - HH:mm".
func FormatLessonTime(start, end time.Time) string {
	return start.Format("15:04") + " - " + end.Format("15:04")
}

// AttendanceStatusAt derives attendance from wall-clock time: attended once
// the slot's end instant has passed, absent before. Never persisted.
func AttendanceStatusAt(lessonDt, lessonEndTime, now time.Time) string {
	lessonEnd := time.Date(
		lessonDt.Year(), lessonDt.Month(), lessonDt.Day(),
		lessonEndTime.Hour(), lessonEndTime.Minute(), lessonEndTime.Second(), 0,
		now.Location(),
	)
	if now.After(lessonEnd) {
		return constants.AttendanceAttended
	}
	return constants.AttendanceAbsent
}

// TrainerDisplayName appends the Korean trainer honorific.
func TrainerDisplayName(name string) string {
	return name + " 트레이너"
}

// ============================
// Converters
// ============================

func ToFileResult(f model.LessonHistoryFileModel) FileResult {
	return FileResult{
		FileURL:   f.LessonHistoryFileURL,
		FileOrder: f.LessonHistoryFileOrder,
		CreatedAt: f.LessonHistoryFileCreatedAt,
	}
}

func ToFileResults(files []model.LessonHistoryFileModel) []FileResult {
	out := make([]FileResult, 0, len(files))
	for _, f := range files {
		out = append(out, ToFileResult(f))
	}
	return out
}

func ToCommentResult(m model.LessonHistoryCommentModel, files []model.LessonHistoryFileModel) CommentResult {
	res := CommentResult{
		CommentID: m.LessonHistoryCommentID,
		Content:   m.LessonHistoryCommentContent,
		WriterID:  m.LessonHistoryCommentWriterID,
		Order:     m.LessonHistoryCommentOrder,
		ParentID:  m.LessonHistoryCommentParentID,
		CreatedAt: m.LessonHistoryCommentCreatedAt,
		Files:     ToFileResults(files),
	}
	if m.Writer != nil {
		res.WriterName = m.Writer.MemberName
	}
	return res
}

// ToLessonHistoryResponse shapes one summary row. Expects Student, Trainer
// and Schedule preloaded; files already sorted by order.
func ToLessonHistoryResponse(m model.LessonHistoryModel, commentTotalCount int64, files []model.LessonHistoryFileModel, now time.Time) LessonHistoryResponse {
	res := LessonHistoryResponse{
		LessonHistoryID:   m.LessonHistoryID,
		Title:             m.LessonHistoryTitle,
		Content:           m.LessonHistoryContent,
		CommentTotalCount: commentTotalCount,
		CreatedAt:         m.LessonHistoryCreatedAt,
		ScheduleID:        m.LessonHistoryScheduleID,
		Files:             ToFileResults(files),
	}
	if m.Student != nil {
		res.Student = m.Student.MemberName
	}
	if m.Trainer != nil {
		res.Trainer = TrainerDisplayName(m.Trainer.MemberName)
	}
	if m.Schedule != nil {
		res.LessonDt = FormatLessonDt(m.Schedule.ScheduleLessonDt)
		res.LessonTime = FormatLessonTime(m.Schedule.ScheduleLessonStartTime, m.Schedule.ScheduleLessonEndTime)
		res.AttendanceStatus = AttendanceStatusAt(m.Schedule.ScheduleLessonDt, m.Schedule.ScheduleLessonEndTime, now)
	}
	return res
}

// ToLessonHistoryDetailResponse shapes the detail view: the summary plus
// feedback status and the live comment thread (sorted by scope order).
func ToLessonHistoryDetailResponse(
	m model.LessonHistoryModel,
	commentTotalCount int64,
	files []model.LessonHistoryFileModel,
	comments []model.LessonHistoryCommentModel,
	commentFiles map[uuid.UUID][]model.LessonHistoryFileModel,
	now time.Time,
) LessonHistoryDetailResponse {
	status := constants.FeedbackStatusUnread
	if m.LessonHistoryFeedbackChecked {
		status = constants.FeedbackStatusRead
	}
	res := LessonHistoryDetailResponse{
		LessonHistoryResponse: ToLessonHistoryResponse(m, commentTotalCount, files, now),
		FeedbackChecked:       m.LessonHistoryFeedbackChecked,
		FeedbackStatus:        status,
		Comments:              make([]CommentResult, 0, len(comments)),
	}
	for _, cm := range comments {
		res.Comments = append(res.Comments, ToCommentResult(cm, commentFiles[cm.LessonHistoryCommentID]))
	}
	return res
}

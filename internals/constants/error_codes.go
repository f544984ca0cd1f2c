package constants

// Stable error codes surfaced in the error envelope. All are deterministic
// validation/lookup failures, never retriable.
const (
	ErrCodeMemberNotFound        = "MEMBER_NOT_FOUND"
	ErrCodeTrainerNotFound       = "TRAINER_NOT_FOUND"
	ErrCodeScheduleNotFound      = "SCHEDULE_NOT_FOUND"
	ErrCodeLessonHistoryNotFound = "LESSON_HISTORY_NOT_FOUND"
	ErrCodeCommentNotFound       = "LESSON_HISTORY_COMMENT_NOT_FOUND"
	ErrCodeExceedMaximumFiles    = "EXCEED_MAXIMUM_NUMBER_OF_FILES"
)

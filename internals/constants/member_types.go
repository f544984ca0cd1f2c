package constants

// Member roles as stored in members.member_type and carried in the JWT.
const (
	MemberTypeTrainer = "trainer"
	MemberTypeStudent = "student"
)

// Attendance status display values. Derived at read time, never persisted.
const (
	AttendanceAttended = "출석"
	AttendanceAbsent   = "미출석"
)

// Feedback check status of a lesson history (has the student read the note).
const (
	FeedbackStatusUnread = "UNREAD"
	FeedbackStatusRead   = "READ"
)

// Maximum number of attachments accepted in a single upload call.
const MaxUploadFilesPerCall = 3

func IsValidMemberType(t string) bool {
	return t == MemberTypeTrainer || t == MemberTypeStudent
}

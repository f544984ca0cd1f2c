package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tobehealthy_backend/internals/constants"
	"tobehealthy_backend/internals/features/lessonhistories/model"
	MemberModel "tobehealthy_backend/internals/features/members/model"
	ScheduleModel "tobehealthy_backend/internals/features/schedules/model"
)

func TestFormatLessonDt(t *testing.T) {
	// 2024-01-15 was a Monday
	assert.Equal(t, "01월 15일 월요일", FormatLessonDt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	// 2024-03-09 was a Saturday
	assert.Equal(t, "03월 09일 토요일", FormatLessonDt(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
	// 2024-12-01 was a Sunday
	assert.Equal(t, "12월 01일 일요일", FormatLessonDt(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatLessonTime(t *testing.T) {
	start := time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(0, 1, 1, 9, 50, 0, 0, time.UTC)
	assert.Equal(t, "09:00 - 09:50", FormatLessonTime(start, end))
}

func TestAttendanceStatusAt(t *testing.T) {
	lessonDt := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(0, 1, 1, 10, 50, 0, 0, time.UTC)

	before := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, constants.AttendanceAbsent, AttendanceStatusAt(lessonDt, endTime, before))

	atEnd := time.Date(2024, 5, 20, 10, 50, 0, 0, time.UTC)
	assert.Equal(t, constants.AttendanceAbsent, AttendanceStatusAt(lessonDt, endTime, atEnd))

	after := time.Date(2024, 5, 20, 10, 50, 1, 0, time.UTC)
	assert.Equal(t, constants.AttendanceAttended, AttendanceStatusAt(lessonDt, endTime, after))

	nextDay := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, constants.AttendanceAttended, AttendanceStatusAt(lessonDt, endTime, nextDay))
}

func TestTrainerDisplayName(t *testing.T) {
	assert.Equal(t, "김민수 트레이너", TrainerDisplayName("김민수"))
}

func TestToLessonHistoryResponse(t *testing.T) {
	m := model.LessonHistoryModel{
		LessonHistoryTitle:   "오늘의 수업",
		LessonHistoryContent: "스쿼트 자세 교정",
		Student:              &MemberModel.MemberModel{MemberName: "이영희"},
		Trainer:              &MemberModel.MemberModel{MemberName: "김민수"},
		Schedule: &ScheduleModel.ScheduleModel{
			ScheduleLessonDt:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ScheduleLessonStartTime: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
			ScheduleLessonEndTime:   time.Date(0, 1, 1, 9, 50, 0, 0, time.UTC),
		},
	}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	res := ToLessonHistoryResponse(m, 3, nil, now)

	assert.Equal(t, "이영희", res.Student)
	assert.Equal(t, "김민수 트레이너", res.Trainer)
	assert.Equal(t, "01월 15일 월요일", res.LessonDt)
	assert.Equal(t, "09:00 - 09:50", res.LessonTime)
	assert.Equal(t, constants.AttendanceAttended, res.AttendanceStatus)
	assert.EqualValues(t, 3, res.CommentTotalCount)
	assert.Empty(t, res.Files)
}

func TestToLessonHistoryDetailResponse_GroupsCommentFiles(t *testing.T) {
	m := model.LessonHistoryModel{LessonHistoryFeedbackChecked: true}
	c1 := model.LessonHistoryCommentModel{LessonHistoryCommentContent: "good", LessonHistoryCommentOrder: 1}
	now := time.Now()

	res := ToLessonHistoryDetailResponse(m, 1, nil,
		[]model.LessonHistoryCommentModel{c1}, nil, now)

	assert.True(t, res.FeedbackChecked)
	assert.Equal(t, constants.FeedbackStatusRead, res.FeedbackStatus)
	assert.Len(t, res.Comments, 1)

	unread := ToLessonHistoryDetailResponse(model.LessonHistoryModel{}, 0, nil, nil, nil, now)
	assert.Equal(t, constants.FeedbackStatusUnread, unread.FeedbackStatus)

	assert.Equal(t, 1, res.Comments[0].Order)
	assert.Nil(t, res.Comments[0].ParentID)
}

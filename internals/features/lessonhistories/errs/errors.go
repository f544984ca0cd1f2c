// Package errs holds the lesson-history domain failures. All are
// deterministic lookup/validation errors; nothing here is retriable.
package errs

import (
	"github.com/gofiber/fiber/v2"

	"tobehealthy_backend/internals/constants"
	helper "tobehealthy_backend/internals/helpers"
)

var (
	ErrMemberNotFound        = helper.NewAPIError(fiber.StatusNotFound, constants.ErrCodeMemberNotFound, "회원이 존재하지 않습니다.")
	ErrTrainerNotFound       = helper.NewAPIError(fiber.StatusNotFound, constants.ErrCodeTrainerNotFound, "트레이너를 찾을 수 없습니다.")
	ErrScheduleNotFound      = helper.NewAPIError(fiber.StatusNotFound, constants.ErrCodeScheduleNotFound, "일정을 찾을 수 없습니다.")
	ErrLessonHistoryNotFound = helper.NewAPIError(fiber.StatusNotFound, constants.ErrCodeLessonHistoryNotFound, "수업 일지를 찾을 수 없습니다.")
	ErrCommentNotFound       = helper.NewAPIError(fiber.StatusNotFound, constants.ErrCodeCommentNotFound, "댓글을 찾을 수 없습니다.")
	ErrExceedMaximumFiles    = helper.NewAPIError(fiber.StatusBadRequest, constants.ErrCodeExceedMaximumFiles, "첨부파일은 최대 3개까지 등록할 수 있습니다.")
)

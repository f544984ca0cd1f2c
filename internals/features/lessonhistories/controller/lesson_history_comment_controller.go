package controller

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tobehealthy_backend/internals/features/lessonhistories/dto"
	helper "tobehealthy_backend/internals/helpers"
	"tobehealthy_backend/internals/middlewares/auth"
)

/* ===============================
   Comment endpoints
=================================*/

// AddComment handles POST /lesson-histories/:id/comments. Multipart body:
// "comment" text plus optional "files".
func (ctl *LessonHistoryController) AddComment(c *fiber.Ctx) error {
	writerID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid lesson history id")
	}

	content, files, err := parseCommentForm(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	m, err := ctl.Service.AddComment(c.Context(), id, writerID, content, files)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "댓글이 등록되었습니다.", fiber.Map{
		"comment_id": m.LessonHistoryCommentID,
		"order":      m.LessonHistoryCommentOrder,
	})
}

// AddReply handles POST /lesson-histories/:id/comments/:comment_id.
func (ctl *LessonHistoryController) AddReply(c *fiber.Ctx) error {
	writerID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid lesson history id")
	}
	parentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	content, files, err := parseCommentForm(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	m, err := ctl.Service.AddReply(c.Context(), id, parentID, writerID, content, files)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "답글이 등록되었습니다.", fiber.Map{
		"comment_id": m.LessonHistoryCommentID,
		"order":      m.LessonHistoryCommentOrder,
	})
}

// UpdateComment handles PATCH /lesson-histories/comments/:comment_id.
func (ctl *LessonHistoryController) UpdateComment(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m, err := ctl.Service.UpdateComment(c.Context(), commentID, req.Content)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "댓글이 수정되었습니다.", fiber.Map{
		"comment_id": m.LessonHistoryCommentID,
	})
}

// DeleteComment handles DELETE /lesson-histories/comments/:comment_id.
func (ctl *LessonHistoryController) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := ctl.Service.DeleteComment(c.Context(), commentID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "댓글이 삭제되었습니다.", nil)
}

// parseCommentForm reads the "comment" text and optional "files" parts.
// JSON bodies with a "comment" field work too, for clients without files.
func parseCommentForm(c *fiber.Ctx) (string, []*multipart.FileHeader, error) {
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["files"]
	}

	content := strings.TrimSpace(c.FormValue("comment"))
	if content == "" {
		var body dto.RegisterCommentRequest
		if err := c.BodyParser(&body); err == nil {
			content = strings.TrimSpace(body.Comment)
		}
	}
	if content == "" {
		return "", nil, fiber.NewError(fiber.StatusUnprocessableEntity, "comment is required")
	}
	return content, files, nil
}

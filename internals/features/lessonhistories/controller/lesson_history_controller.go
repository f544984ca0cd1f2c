package controller

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/features/lessonhistories/dto"
	"tobehealthy_backend/internals/features/lessonhistories/repository"
	"tobehealthy_backend/internals/features/lessonhistories/service"
	helper "tobehealthy_backend/internals/helpers"
	"tobehealthy_backend/internals/helpers/oss"
	"tobehealthy_backend/internals/middlewares/auth"
)

var validate = validator.New()

// searchDate filter is a YYYYMM month, nothing else.
var searchDatePattern = regexp.MustCompile(`^\d{6}$`)

type LessonHistoryController struct {
	Service *service.LessonHistoryService
	Repo    *repository.LessonHistoryRepository
}

func NewLessonHistoryController(db *gorm.DB, blob oss.BlobService) *LessonHistoryController {
	return &LessonHistoryController{
		Service: service.NewLessonHistoryService(db, blob),
		Repo:    repository.NewLessonHistoryRepository(db),
	}
}

/* ===============================
   Record endpoints
=================================*/

// Register handles POST /lesson-histories (trainer only).
func (ctl *LessonHistoryController) Register(c *fiber.Ctx) error {
	trainerID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}

	var req dto.RegisterLessonHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m, err := ctl.Service.RegisterLessonHistory(c.Context(), trainerID, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "수업 일지가 등록되었습니다.", fiber.Map{
		"lesson_history_id": m.LessonHistoryID,
	})
}

// FindAll handles GET /lesson-histories. Trainers see what they wrote,
// students what was written about them. ?searchDate=YYYYMM narrows by month.
func (ctl *LessonHistoryController) FindAll(c *fiber.Ctx) error {
	memberID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}

	searchDate, err := resolveSearchDate(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	paging := helper.ResolvePaging(c, 10, 100)

	items, total, err := ctl.Repo.FindAllLessonHistory(c.Context(), memberID, auth.MemberType(c), searchDate, paging)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "수업 일지 목록 조회 완료", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// FindAllByStudent handles GET /lesson-histories/student/:student_id
// (trainer only).
func (ctl *LessonHistoryController) FindAllByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	searchDate, err := resolveSearchDate(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	paging := helper.ResolvePaging(c, 10, 100)

	items, total, err := ctl.Repo.FindAllByStudent(c.Context(), studentID, searchDate, paging)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "수업 일지 목록 조회 완료", items,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// FindLatest handles GET /lesson-histories/latest: the caller's newest
// record, data null when none exists yet.
func (ctl *LessonHistoryController) FindLatest(c *fiber.Ctx) error {
	memberID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}

	item, err := ctl.Repo.FindLatestByStudent(c.Context(), memberID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "최근 수업 일지 조회 완료", item)
}

// FindLatestOfStudent handles GET /lesson-histories/student/:student_id/latest
// (trainer only).
func (ctl *LessonHistoryController) FindLatestOfStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	item, err := ctl.Repo.FindLatestByStudent(c.Context(), studentID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "최근 수업 일지 조회 완료", item)
}

// FindOne handles GET /lesson-histories/:id. Viewing as the record's student
// marks the feedback as read.
func (ctl *LessonHistoryController) FindOne(c *fiber.Ctx) error {
	memberID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid lesson history id")
	}

	item, err := ctl.Repo.FindOneLessonHistory(c.Context(), id, memberID, auth.MemberType(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "수업 일지 조회 완료", item)
}

// Update handles PATCH /lesson-histories/:id (trainer only).
func (ctl *LessonHistoryController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid lesson history id")
	}

	var req dto.UpdateLessonHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m, err := ctl.Service.UpdateLessonHistory(c.Context(), id, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "수업 일지가 수정되었습니다.", fiber.Map{
		"lesson_history_id": m.LessonHistoryID,
	})
}

// Delete handles DELETE /lesson-histories/:id (trainer only).
func (ctl *LessonHistoryController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid lesson history id")
	}

	if err := ctl.Service.DeleteLessonHistory(c.Context(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "수업 일지가 삭제되었습니다.", nil)
}

// UploadFiles handles POST /lesson-histories/:id/files (trainer only).
// Multipart field "files", at most three per call.
func (ctl *LessonHistoryController) UploadFiles(c *fiber.Ctx) error {
	memberID, ok := auth.MemberID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "login required")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid lesson history id")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "multipart form required")
	}

	results, err := ctl.Service.AttachFilesToLessonHistory(c.Context(), id, memberID, form.File["files"])
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "파일이 등록되었습니다.", results)
}

func resolveSearchDate(c *fiber.Ctx) (string, error) {
	v := c.Query("searchDate")
	if v == "" {
		return "", nil
	}
	if !searchDatePattern.MatchString(v) {
		return "", fiber.NewError(fiber.StatusBadRequest, "searchDate must be YYYYMM")
	}
	return v, nil
}

package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	lhDto "tobehealthy_backend/internals/features/lessonhistories/dto"
	"tobehealthy_backend/internals/features/schedules/model"
	helper "tobehealthy_backend/internals/helpers"
)

type ScheduleController struct {
	DB *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db}
}

// FindOne handles GET /schedules/:id.
func (ctl *ScheduleController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid schedule id")
	}

	var m model.ScheduleModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "schedule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "일정을 찾을 수 없습니다.")
		}
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "일정 조회 완료", fiber.Map{
		"schedule_id": m.ScheduleID,
		"lesson_dt":   lhDto.FormatLessonDt(m.ScheduleLessonDt),
		"lesson_time": lhDto.FormatLessonTime(m.ScheduleLessonStartTime, m.ScheduleLessonEndTime),
		"trainer_id":  m.ScheduleTrainerID,
		"student_id":  m.ScheduleStudentID,
	})
}

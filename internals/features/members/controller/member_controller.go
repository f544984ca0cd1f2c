package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/features/members/model"
	helper "tobehealthy_backend/internals/helpers"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

// FindOne handles GET /members/:id.
func (ctl *MemberController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid member id")
	}

	var m model.MemberModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "회원이 존재하지 않습니다.")
		}
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "회원 조회 완료", fiber.Map{
		"member_id":   m.MemberID,
		"member_name": m.MemberName,
		"member_type": m.MemberType,
	})
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/features/members/controller"
)

func MemberRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewMemberController(db)
	api.Get("/members/:id", ctl.FindOne)
}

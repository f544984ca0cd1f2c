package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/features/schedules/controller"
)

func ScheduleRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewScheduleController(db)
	api.Get("/schedules/:id", ctl.FindOne)
}

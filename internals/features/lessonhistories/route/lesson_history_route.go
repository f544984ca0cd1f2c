package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/features/lessonhistories/controller"
	"tobehealthy_backend/internals/helpers/oss"
	"tobehealthy_backend/internals/middlewares/auth"
)

// LessonHistoryRoutes mounts the lesson-history endpoints on an already
// authenticated group. Writes to the record itself are trainer-only; the
// comment thread is open to both member types.
func LessonHistoryRoutes(api fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctl := controller.NewLessonHistoryController(db, blob)

	lh := api.Group("/lesson-histories")

	// Reads
	lh.Get("/", ctl.FindAll)
	lh.Get("/latest", ctl.FindLatest)
	lh.Get("/student/:student_id", auth.RequireTrainer(), ctl.FindAllByStudent)
	lh.Get("/student/:student_id/latest", auth.RequireTrainer(), ctl.FindLatestOfStudent)
	lh.Get("/:id", ctl.FindOne)

	// Record writes (trainer only)
	lh.Post("/", auth.RequireTrainer(), ctl.Register)
	lh.Patch("/:id", auth.RequireTrainer(), ctl.Update)
	lh.Delete("/:id", auth.RequireTrainer(), ctl.Delete)
	lh.Post("/:id/files", auth.RequireTrainer(), ctl.UploadFiles)

	// Comment thread
	lh.Post("/:id/comments", ctl.AddComment)
	lh.Post("/:id/comments/:comment_id", ctl.AddReply)
	lh.Patch("/comments/:comment_id", ctl.UpdateComment)
	lh.Delete("/comments/:comment_id", ctl.DeleteComment)
}

// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tobehealthy_backend/internals/configs"
	lessonHistoryRoute "tobehealthy_backend/internals/features/lessonhistories/route"
	memberRoute "tobehealthy_backend/internals/features/members/route"
	scheduleRoute "tobehealthy_backend/internals/features/schedules/route"
	"tobehealthy_backend/internals/helpers/oss"
	"tobehealthy_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes wires every endpoint group. Everything under /api/u requires a
// valid JWT; trainer-only writes add their own guard per route.
func SetupRoutes(app *fiber.App, db *gorm.DB, blob oss.BlobService, log *zap.Logger) {
	startTime = time.Now()

	BaseRoutes(app, db)

	private := app.Group("/api/u",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Info("mounting lesson history routes")
	lessonHistoryRoute.LessonHistoryRoutes(private, db, blob)

	log.Info("mounting member and schedule routes")
	memberRoute.MemberRoutes(private, db)
	scheduleRoute.ScheduleRoutes(private, db)
}

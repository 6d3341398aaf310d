package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	academicRoute "unitrack_backend/internals/features/academics/route"
	analyticsRoute "unitrack_backend/internals/features/analytics/route"
	chatRoute "unitrack_backend/internals/features/chat/route"
	fileRoute "unitrack_backend/internals/features/files/route"
	gradingRoute "unitrack_backend/internals/features/grading/route"
	institutionRoute "unitrack_backend/internals/features/institutions/route"
	markRoute "unitrack_backend/internals/features/marks/route"
	authRoute "unitrack_backend/internals/features/users/auth/route"
	userRoute "unitrack_backend/internals/features/users/user/route"
)

// SetupRoutes mounts every feature under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, db)
	institutionRoute.InstitutionRoutes(api, db)
	academicRoute.AcademicRoutes(api, db)
	gradingRoute.GradingRoutes(api, db)
	markRoute.MarkRoutes(api, db)
	chatRoute.ChatRoutes(api, db, rdb)
	analyticsRoute.AnalyticsRoutes(api, db)
	fileRoute.FileRoutes(api, db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	analyticsController "unitrack_backend/internals/features/analytics/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func AnalyticsRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &analyticsController.AnalyticsController{DB: db}

	admin := api.Group("/admin/analytics",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles("Admin access required", constants.AdminAndAbove...),
	)
	admin.Get("/dashboard", ctrl.Dashboard)
	admin.Get("/attendance-rate", ctrl.AttendanceRate)
	admin.Get("/subject-averages", ctrl.SubjectAverages)
	admin.Get("/grade-distribution", ctrl.GradeDistribution)
}

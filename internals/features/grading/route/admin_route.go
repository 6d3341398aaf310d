package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	gradingController "unitrack_backend/internals/features/grading/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func GradingRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &gradingController.GradingSystemController{DB: db}

	admin := api.Group("/admin/grading-systems",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles("Admin access required", constants.AdminAndAbove...),
	)
	admin.Post("/", ctrl.CreateGradingSystem)
	admin.Get("/", ctrl.ListGradingSystems)
	admin.Post("/validate", ctrl.Validate)
	admin.Get("/:id", ctrl.GetGradingSystem)
	admin.Patch("/:id", ctrl.UpdateGradingSystem)
	admin.Post("/:id/default", ctrl.SetDefault)
	admin.Delete("/:id", ctrl.DeleteGradingSystem)

	// conversion preview is open to any authenticated member
	user := api.Group("/grading-systems", authMW.AuthMiddleware(db))
	user.Post("/:id/convert", ctrl.Convert)
}

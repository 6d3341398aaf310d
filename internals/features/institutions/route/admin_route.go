package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	instController "unitrack_backend/internals/features/institutions/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func InstitutionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &instController.InstitutionController{DB: db}

	admin := api.Group("/admin/institutions",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles("Super admin access required", constants.RoleSuperAdmin),
	)
	admin.Post("/", ctrl.CreateInstitution)
	admin.Get("/", ctrl.ListInstitutions)
	admin.Get("/:id", ctrl.GetInstitution)
	admin.Patch("/:id", ctrl.UpdateInstitution)
	admin.Delete("/:id", ctrl.DeleteInstitution)
}

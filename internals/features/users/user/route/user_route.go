package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	userController "unitrack_backend/internals/features/users/user/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	userCtrl := &userController.UserController{DB: db}
	profileCtrl := &userController.ProfileController{DB: db}

	users := api.Group("/users", authMW.AuthMiddleware(db))
	users.Get("/me", userCtrl.GetMe)
	users.Post("/me/avatar", userCtrl.UploadAvatar)

	admin := api.Group("/admin",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles("Admin access required", constants.AdminAndAbove...),
	)
	admin.Get("/users", userCtrl.ListUsers)
	admin.Post("/profiles/students", profileCtrl.CreateStudentProfile)
	admin.Post("/profiles/teachers", profileCtrl.CreateTeacherProfile)
	admin.Post("/profiles/parents", profileCtrl.CreateParentProfile)
	admin.Post("/profiles/admins", profileCtrl.CreateAdminProfile)
}

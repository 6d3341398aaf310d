package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "unitrack_backend/internals/features/users/auth/controller"
	"unitrack_backend/internals/middlewares"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &authController.AuthController{DB: db}

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), ctrl.GoogleLogin)
	auth.Post("/refresh", ctrl.Refresh)
	auth.Post("/logout", authMW.AuthMiddleware(db), ctrl.Logout)
}

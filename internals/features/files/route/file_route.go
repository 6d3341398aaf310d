package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fileController "unitrack_backend/internals/features/files/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func FileRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &fileController.FileController{DB: db}

	files := api.Group("/files", authMW.AuthMiddleware(db))
	files.Post("/attachments", ctrl.UploadAttachment)
	files.Get("/signed-url", ctrl.GetSignedURL)
	files.Delete("/", ctrl.DeleteFile)
}

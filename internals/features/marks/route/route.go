package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	markController "unitrack_backend/internals/features/marks/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func MarkRoutes(api fiber.Router, db *gorm.DB) {
	marks := &markController.MarkController{DB: db}
	attendance := &markController.AttendanceController{DB: db}

	teacher := api.Group("/teacher",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles("Staff access required", constants.StaffAndAbove...),
	)
	teacher.Post("/marks", marks.CreateMark)
	teacher.Patch("/marks/:id", marks.UpdateMark)
	teacher.Post("/attendance", attendance.CreateAttendance)

	user := api.Group("/", authMW.AuthMiddleware(db))
	user.Get("/marks", marks.ListMarks)
	user.Get("/marks/:id", marks.GetMark)
	user.Get("/attendance", attendance.ListAttendance)
}

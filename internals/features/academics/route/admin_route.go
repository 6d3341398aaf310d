package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	acadController "unitrack_backend/internals/features/academics/controller"
	authMW "unitrack_backend/internals/middlewares/auth"
)

func AcademicRoutes(api fiber.Router, db *gorm.DB) {
	acad := &acadController.AcademicController{DB: db}
	courses := &acadController.CourseController{DB: db}

	admin := api.Group("/admin",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles("Admin access required", constants.AdminAndAbove...),
	)

	admin.Post("/faculties", acad.CreateFaculty)
	admin.Get("/faculties", acad.ListFaculties)
	admin.Post("/majors", acad.CreateMajor)
	admin.Get("/majors", acad.ListMajors)
	admin.Post("/grade-levels", acad.CreateGradeLevel)
	admin.Get("/grade-levels", acad.ListGradeLevels)
	admin.Post("/semesters", acad.CreateSemester)
	admin.Get("/semesters", acad.ListSemesters)

	admin.Post("/subjects", courses.CreateSubject)
	admin.Get("/subjects", courses.ListSubjects)
	admin.Post("/courses", courses.CreateCourse)
	admin.Get("/courses", courses.ListCourses)
}

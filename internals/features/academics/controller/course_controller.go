package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acadDTO "unitrack_backend/internals/features/academics/dto"
	acadModel "unitrack_backend/internals/features/academics/model"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

// CourseController covers subjects and the courses that bind subject +
// teacher + semester together.
type CourseController struct {
	DB *gorm.DB
}

// POST /admin/subjects
func (h *CourseController) CreateSubject(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req acadDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := acadModel.SubjectModel{
		SubjectInstitutionID: institutionID,
		SubjectCode:          req.Code,
		SubjectName:          req.Name,
		SubjectDesc:          req.Desc,
		SubjectIsActive:      true,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&acadModel.SubjectModel{}).
			Where("subject_institution_id = ? AND lower(subject_code) = lower(?)", institutionID, req.Code).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check code")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Subject code already in use")
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create subject")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Subject created", m)
}

// GET /admin/subjects?q=
func (h *CourseController) ListSubjects(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&acadModel.SubjectModel{}).
		Where("subject_institution_id = ?", institutionID)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("lower(subject_name) LIKE ? OR lower(subject_code) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count subjects")
	}
	var rows []acadModel.SubjectModel
	if err := tx.Order("subject_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return helper.JsonList(c, "Subjects loaded", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// POST /admin/courses
func (h *CourseController) CreateCourse(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req acadDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := acadModel.CourseModel{
		CourseInstitutionID: institutionID,
		CourseSubjectID:     req.SubjectID,
		CourseTeacherID:     req.TeacherID,
		CourseSemesterID:    req.SemesterID,
		CourseGradeLevelID:  req.GradeLevelID,
		CourseName:          req.Name,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&acadModel.SubjectModel{}).
			Where("subject_id = ? AND subject_institution_id = ?", req.SubjectID, institutionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check subject")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		cnt = 0
		if err := tx.Model(&userModel.TeacherProfileModel{}).
			Where("teacher_id = ? AND teacher_institution_id = ?", req.TeacherID, institutionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check teacher")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		cnt = 0
		if err := tx.Model(&acadModel.SemesterModel{}).
			Where("semester_id = ? AND semester_institution_id = ?", req.SemesterID, institutionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check semester")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Semester not found")
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create course")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Course created", m)
}

// GET /admin/courses?semester_id=
func (h *CourseController) ListCourses(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&acadModel.CourseModel{}).
		Where("course_institution_id = ?", institutionID)
	if sem := strings.TrimSpace(c.Query("semester_id")); sem != "" {
		tx = tx.Where("course_semester_id = ?", sem)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count courses")
	}
	var rows []acadModel.CourseModel
	if err := tx.Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list courses")
	}
	return helper.JsonList(c, "Courses loaded", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

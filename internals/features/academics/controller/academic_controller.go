package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	acadDTO "unitrack_backend/internals/features/academics/dto"
	acadModel "unitrack_backend/internals/features/academics/model"
	helper "unitrack_backend/internals/helpers"
)

// AcademicController covers the structural entities: faculties, majors,
// grade levels, semesters.
type AcademicController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /admin/faculties
func (h *AcademicController) CreateFaculty(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req acadDTO.CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := acadModel.FacultyModel{
		FacultyInstitutionID: institutionID,
		FacultyCode:          req.Code,
		FacultyName:          req.Name,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&acadModel.FacultyModel{}).
			Where("faculty_institution_id = ? AND lower(faculty_code) = lower(?)", institutionID, req.Code).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check code")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Faculty code already in use")
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create faculty")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Faculty created", m)
}

// GET /admin/faculties
func (h *AcademicController) ListFaculties(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&acadModel.FacultyModel{}).
		Where("faculty_institution_id = ?", institutionID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count faculties")
	}
	var rows []acadModel.FacultyModel
	if err := tx.Order("faculty_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list faculties")
	}
	return helper.JsonList(c, "Faculties loaded", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// POST /admin/majors
func (h *AcademicController) CreateMajor(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req acadDTO.CreateMajorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := acadModel.MajorModel{
		MajorInstitutionID: institutionID,
		MajorFacultyID:     req.FacultyID,
		MajorCode:          req.Code,
		MajorName:          req.Name,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&acadModel.FacultyModel{}).
			Where("faculty_id = ? AND faculty_institution_id = ?", req.FacultyID, institutionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check faculty")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Faculty not found")
		}
		cnt = 0
		if err := tx.Model(&acadModel.MajorModel{}).
			Where("major_institution_id = ? AND lower(major_code) = lower(?)", institutionID, req.Code).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check code")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Major code already in use")
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create major")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Major created", m)
}

// GET /admin/majors
func (h *AcademicController) ListMajors(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&acadModel.MajorModel{}).
		Where("major_institution_id = ?", institutionID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count majors")
	}
	var rows []acadModel.MajorModel
	if err := tx.Order("major_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list majors")
	}
	return helper.JsonList(c, "Majors loaded", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// POST /admin/grade-levels
func (h *AcademicController) CreateGradeLevel(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req acadDTO.CreateGradeLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := acadModel.GradeLevelModel{
		GradeLevelInstitutionID: institutionID,
		GradeLevelNumber:        req.Number,
		GradeLevelName:          req.Name,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&acadModel.GradeLevelModel{}).
			Where("grade_level_institution_id = ? AND grade_level_number = ?", institutionID, req.Number).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check grade level")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Grade level already exists")
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create grade level")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Grade level created", m)
}

// GET /admin/grade-levels
func (h *AcademicController) ListGradeLevels(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	var rows []acadModel.GradeLevelModel
	if err := h.DB.Where("grade_level_institution_id = ?", institutionID).
		Order("grade_level_number ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list grade levels")
	}
	return helper.JsonOK(c, "Grade levels loaded", rows)
}

// POST /admin/semesters
// Marking a semester current clears the previous current flag in the same
// transaction; at most one current semester per institution.
func (h *AcademicController) CreateSemester(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req acadDTO.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.EndDate.After(req.StartDate) {
		return fiber.NewError(fiber.StatusBadRequest, "Semester end date must be after start date")
	}

	m := acadModel.SemesterModel{
		SemesterInstitutionID: institutionID,
		SemesterName:          req.Name,
		SemesterStartDate:     req.StartDate,
		SemesterEndDate:       req.EndDate,
		SemesterIsCurrent:     req.IsCurrent,
	}
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsCurrent {
			if err := tx.Model(&acadModel.SemesterModel{}).
				Where("semester_institution_id = ? AND semester_is_current = true", institutionID).
				Update("semester_is_current", false).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear current semester")
			}
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create semester")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Semester created", m)
}

// GET /admin/semesters
func (h *AcademicController) ListSemesters(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	var rows []acadModel.SemesterModel
	if err := h.DB.Where("semester_institution_id = ?", institutionID).
		Order("semester_start_date DESC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list semesters")
	}
	return helper.JsonOK(c, "Semesters loaded", rows)
}

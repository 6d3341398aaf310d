package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gradingDTO "unitrack_backend/internals/features/grading/dto"
	gradingModel "unitrack_backend/internals/features/grading/model"
	gradingService "unitrack_backend/internals/features/grading/service"
	markModel "unitrack_backend/internals/features/marks/model"
	helper "unitrack_backend/internals/helpers"
)

type GradingSystemController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /admin/grading-systems
func (h *GradingSystemController) CreateGradingSystem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req gradingDTO.CreateGradingSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sys := req.ToModel(institutionID)
	if issues := gradingService.ValidateSystem(sys); len(issues) > 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, strings.Join(issues, "; "))
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if sys.GradingSystemIsDefault {
			// at most one default per institution
			if err := tx.Model(&gradingModel.GradingSystemModel{}).
				Where("grading_system_institution_id = ? AND grading_system_is_default = true", institutionID).
				Update("grading_system_is_default", false).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear default system")
			}
		}
		if err := tx.Create(&sys).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create grading system")
		}
		return nil
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Grading system created", gradingDTO.FromGradingSystemModel(sys))
}

// GET /admin/grading-systems
func (h *GradingSystemController) ListGradingSystems(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []gradingModel.GradingSystemModel
	if err := h.DB.Preload("GradeScales").
		Where("grading_system_institution_id = ?", institutionID).
		Order("grading_system_created_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list grading systems")
	}

	out := make([]gradingDTO.GradingSystemResponse, 0, len(rows))
	for _, sys := range rows {
		out = append(out, gradingDTO.FromGradingSystemModel(sys))
	}
	return helper.JsonOK(c, "Grading systems loaded", out)
}

// GET /admin/grading-systems/:id
func (h *GradingSystemController) GetGradingSystem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	sys, err := h.loadSystem(c, institutionID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Grading system found", gradingDTO.FromGradingSystemModel(sys))
}

// PATCH /admin/grading-systems/:id
func (h *GradingSystemController) UpdateGradingSystem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req gradingDTO.UpdateGradingSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sys, err := h.loadSystem(c, institutionID)
	if err != nil {
		return err
	}

	req.Apply(&sys)
	if issues := gradingService.ValidateSystem(sys); len(issues) > 0 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, strings.Join(issues, "; "))
	}

	if err := h.DB.Save(&sys).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update grading system")
	}
	return helper.JsonUpdated(c, "Grading system updated", gradingDTO.FromGradingSystemModel(sys))
}

// POST /admin/grading-systems/:id/default
func (h *GradingSystemController) SetDefault(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	sys, err := h.loadSystem(c, institutionID)
	if err != nil {
		return err
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&gradingModel.GradingSystemModel{}).
			Where("grading_system_institution_id = ? AND grading_system_is_default = true", institutionID).
			Update("grading_system_is_default", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear default system")
		}
		if err := tx.Model(&gradingModel.GradingSystemModel{}).
			Where("grading_system_id = ?", sys.GradingSystemID).
			Update("grading_system_is_default", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to set default system")
		}
		return nil
	}); err != nil {
		return err
	}

	sys.GradingSystemIsDefault = true
	return helper.JsonUpdated(c, "Default grading system set", gradingDTO.FromGradingSystemModel(sys))
}

// DELETE /admin/grading-systems/:id (soft)
// The institution default cannot be deleted while marks still read through it.
func (h *GradingSystemController) DeleteGradingSystem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	sys, err := h.loadSystem(c, institutionID)
	if err != nil {
		return err
	}

	if sys.GradingSystemIsDefault {
		var marks int64
		if err := h.DB.Model(&markModel.MarkModel{}).
			Where("mark_institution_id = ?", institutionID).
			Count(&marks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check marks")
		}
		if marks > 0 {
			return fiber.NewError(fiber.StatusConflict, "Default grading system is referenced by marks")
		}
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grade_scale_grading_system_id = ?", sys.GradingSystemID).
			Delete(&gradingModel.GradeScaleModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete scales")
		}
		if err := tx.Where("grading_system_id = ?", sys.GradingSystemID).
			Delete(&gradingModel.GradingSystemModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete grading system")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Grading system deleted", fiber.Map{"grading_system_id": sys.GradingSystemID})
}

// POST /api/grading-systems/:id/convert
// Runs the conversion engine over raw input: resolve to canonical score,
// then derive label/GPA/pass.
func (h *GradingSystemController) Convert(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	sys, err := h.loadSystem(c, institutionID)
	if err != nil {
		return err
	}

	var req gradingDTO.ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	score, err := gradingService.ResolveScore(gradingService.GradeInput{
		Grade: req.Grade,
		Score: req.Score,
	}, sys)
	if err != nil {
		switch {
		case errors.Is(err, gradingService.ErrValidation):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, gradingService.ErrUnknownGrade):
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Conversion failed")
		}
	}

	derived := gradingService.DeriveGrade(score, sys)
	return helper.JsonOK(c, "Converted", gradingDTO.ConvertResponse{
		Score:  score,
		Label:  derived.Label,
		Gpa:    derived.Gpa,
		Passed: derived.Passed,
	})
}

// POST /admin/grading-systems/validate — pre-save validation surface.
func (h *GradingSystemController) Validate(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req gradingDTO.CreateGradingSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()

	issues := gradingService.ValidateSystem(req.ToModel(institutionID))
	return helper.JsonOK(c, "Validation complete", fiber.Map{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}

func (h *GradingSystemController) loadSystem(c *fiber.Ctx, institutionID uuid.UUID) (gradingModel.GradingSystemModel, error) {
	var sys gradingModel.GradingSystemModel
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return sys, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	if err := h.DB.Preload("GradeScales").
		Where("grading_system_id = ? AND grading_system_institution_id = ?", id, institutionID).
		First(&sys).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sys, fiber.NewError(fiber.StatusNotFound, "Grading system not found")
		}
		return sys, fiber.NewError(fiber.StatusInternalServerError, "Failed to load grading system")
	}
	return sys, nil
}

// DefaultSystemFor loads the institution's default grading system with its
// scales. Shared with the marks read path and analytics.
func DefaultSystemFor(db *gorm.DB, institutionID uuid.UUID) (gradingModel.GradingSystemModel, error) {
	var sys gradingModel.GradingSystemModel
	err := db.Preload("GradeScales").
		Where("grading_system_institution_id = ? AND grading_system_is_default = true", institutionID).
		First(&sys).Error
	return sys, err
}

package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	gradingController "unitrack_backend/internals/features/grading/controller"
	gradingModel "unitrack_backend/internals/features/grading/model"
	gradingService "unitrack_backend/internals/features/grading/service"
	markDTO "unitrack_backend/internals/features/marks/dto"
	markModel "unitrack_backend/internals/features/marks/model"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

type MarkController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /teacher/marks
// Raw input (exact score or letter grade) is resolved to the canonical
// 0..100 value through the institution's default grading system before the
// row is written.
func (h *MarkController) CreateMark(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req markDTO.CreateMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sys, sysErr := gradingController.DefaultSystemFor(h.DB, institutionID)
	if sysErr != nil && req.Score == nil {
		// letter input needs configured bands; exact scores do not
		return fiber.NewError(fiber.StatusUnprocessableEntity, "No default grading system configured")
	}

	value, err := gradingService.ResolveScore(gradingService.GradeInput{
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
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve score")
		}
	}

	var teacher userModel.TeacherProfileModel
	if err := h.DB.Where("teacher_user_id = ? AND teacher_institution_id = ?", userID, institutionID).
		First(&teacher).Error; err != nil {
		return fiber.NewError(fiber.StatusForbidden, "Caller has no teacher profile")
	}

	m := markModel.MarkModel{
		MarkInstitutionID: institutionID,
		MarkStudentID:     req.StudentID,
		MarkSubjectID:     req.SubjectID,
		MarkTeacherID:     teacher.TeacherID,
		MarkSemesterID:    req.SemesterID,
		MarkValue:         value,
		MarkTopic:         req.Topic,
		MarkType:          markModel.MarkType(req.Type),
		MarkDescription:   req.Description,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&userModel.StudentProfileModel{}).
			Where("student_id = ? AND student_institution_id = ?", req.StudentID, institutionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create mark")
		}
		return nil
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Mark recorded", h.withDerived(m, sys, sysErr == nil))
}

// GET /api/marks?student_id=&subject_id=&semester_id=
func (h *MarkController) ListMarks(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&markModel.MarkModel{}).
		Where("mark_institution_id = ?", institutionID)
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		tx = tx.Where("mark_student_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("subject_id")); v != "" {
		tx = tx.Where("mark_subject_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("semester_id")); v != "" {
		tx = tx.Where("mark_semester_id = ?", v)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count marks")
	}

	var rows []markModel.MarkModel
	if err := tx.Order("mark_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list marks")
	}

	sys, sysErr := gradingController.DefaultSystemFor(h.DB, institutionID)
	out := make([]markDTO.MarkResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, h.withDerived(m, sys, sysErr == nil))
	}
	return helper.JsonList(c, "Marks loaded", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/marks/:id
func (h *MarkController) GetMark(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	var m markModel.MarkModel
	if err := h.DB.Where("mark_id = ? AND mark_institution_id = ?", id, institutionID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Mark not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load mark")
	}

	sys, sysErr := gradingController.DefaultSystemFor(h.DB, institutionID)
	return helper.JsonOK(c, "Mark found", h.withDerived(m, sys, sysErr == nil))
}

// PATCH /teacher/marks/:id — only the recording teacher may amend a mark.
func (h *MarkController) UpdateMark(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	var req markDTO.UpdateMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m markModel.MarkModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mark_id = ? AND mark_institution_id = ?", id, institutionID).
			First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Mark not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load mark")
		}

		var teacher userModel.TeacherProfileModel
		if err := tx.Where("teacher_user_id = ?", userID).First(&teacher).Error; err != nil ||
			teacher.TeacherID != m.MarkTeacherID {
			if !helper.HasRole(c, constants.AdminAndAbove...) {
				return fiber.NewError(fiber.StatusForbidden, "Only the recording teacher may amend this mark")
			}
		}

		if req.Score != nil {
			m.MarkValue = *req.Score
		}
		if req.Topic != nil {
			m.MarkTopic = strings.TrimSpace(*req.Topic)
		}
		if req.Description != nil {
			m.MarkDescription = req.Description
		}
		if err := tx.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update mark")
		}
		return nil
	}); err != nil {
		return err
	}

	sys, sysErr := gradingController.DefaultSystemFor(h.DB, institutionID)
	return helper.JsonUpdated(c, "Mark updated", h.withDerived(m, sys, sysErr == nil))
}

func (h *MarkController) withDerived(m markModel.MarkModel, sys gradingModel.GradingSystemModel, haveSystem bool) markDTO.MarkResponse {
	if !haveSystem {
		return markDTO.FromMarkModel(m, nil)
	}
	derived := gradingService.DeriveGrade(m.MarkValue, sys)
	return markDTO.FromMarkModel(m, &derived)
}

package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	instDTO "unitrack_backend/internals/features/institutions/dto"
	instModel "unitrack_backend/internals/features/institutions/model"
	helper "unitrack_backend/internals/helpers"
)

type InstitutionController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /admin/institutions
func (h *InstitutionController) CreateInstitution(c *fiber.Ctx) error {
	var req instDTO.CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&instModel.InstitutionModel{}).
			Where("lower(institution_slug) = lower(?)", m.InstitutionSlug).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check slug")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Slug already in use")
		}
		if err := tx.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Slug already in use")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create institution")
		}
		return nil
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Institution created", instDTO.FromInstitutionModel(m))
}

// GET /admin/institutions/:id
func (h *InstitutionController) GetInstitution(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	var m instModel.InstitutionModel
	if err := h.DB.Where("institution_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Institution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load institution")
	}

	return helper.JsonOK(c, "Institution found", instDTO.FromInstitutionModel(m))
}

// GET /admin/institutions?q=&type=&page=&per_page=
func (h *InstitutionController) ListInstitutions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&instModel.InstitutionModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("lower(institution_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t != "" {
		if !instModel.InstitutionType(t).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid institution type")
		}
		tx = tx.Where("institution_type = ?", t)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count institutions")
	}

	var rows []instModel.InstitutionModel
	if err := tx.Order("institution_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list institutions")
	}

	out := make([]instDTO.InstitutionResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, instDTO.FromInstitutionModel(m))
	}
	return helper.JsonList(c, "Institutions loaded", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// PATCH /admin/institutions/:id
func (h *InstitutionController) UpdateInstitution(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	var req instDTO.UpdateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m instModel.InstitutionModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("institution_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Institution not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load institution")
		}
		req.Apply(&m)
		if err := tx.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update institution")
		}
		return nil
	}); err != nil {
		return err
	}

	return helper.JsonUpdated(c, "Institution updated", instDTO.FromInstitutionModel(m))
}

// DELETE /admin/institutions/:id (soft)
func (h *InstitutionController) DeleteInstitution(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	res := h.DB.Where("institution_id = ?", id).Delete(&instModel.InstitutionModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete institution")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Institution not found")
	}
	return helper.JsonDeleted(c, "Institution deleted", fiber.Map{"institution_id": id})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "unitrack_backend/internals/helpers"
	ossHelper "unitrack_backend/internals/helpers/oss"
)

type FileController struct {
	DB *gorm.DB
}

// POST /files/attachments (multipart field "file")
// Stores the file as-is and returns its object key plus a signed URL the
// client can embed in a chat message. Keys are opaque to the rest of the
// system.
func (h *FileController) UploadAttachment(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is required")
	}

	key, err := ossHelper.UploadAttachment(fh, "attachments/"+institutionID.String())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	url, err := ossHelper.SignedURL(key, time.Hour)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign URL")
	}

	return helper.JsonCreated(c, "Attachment uploaded", fiber.Map{
		"object_key": key,
		"url":        url,
	})
}

// GET /files/signed-url?key=
func (h *FileController) GetSignedURL(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Object key is required")
	}
	// keys are scoped per institution on upload; refuse cross-tenant reads
	if !strings.Contains(key, institutionID.String()) {
		return fiber.NewError(fiber.StatusForbidden, "Object belongs to another institution")
	}

	url, err := ossHelper.SignedURL(key, time.Hour)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to sign URL")
	}
	return helper.JsonOK(c, "URL signed", fiber.Map{"url": url})
}

// DELETE /files?key=
func (h *FileController) DeleteFile(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Object key is required")
	}
	if !strings.Contains(key, institutionID.String()) {
		return fiber.NewError(fiber.StatusForbidden, "Object belongs to another institution")
	}

	if err := ossHelper.DeleteObject(key); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete object")
	}
	return helper.JsonDeleted(c, "Object deleted", fiber.Map{"object_key": key})
}

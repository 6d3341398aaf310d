package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userDTO "unitrack_backend/internals/features/users/user/dto"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
	ossHelper "unitrack_backend/internals/helpers/oss"
)

type UserController struct {
	DB *gorm.DB
}

var validate = validator.New()

// GET /api/users/me
func (h *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var u userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}

	return helper.JsonOK(c, "Profile loaded", userDTO.FromUserModel(u, h.avatarURL(u)))
}

// sortable columns exposed on the admin user listing
var userSortColumns = map[string]string{
	"created_at": "user_created_at",
	"email":      "user_email",
	"name":       "user_full_name",
}

// GET /admin/users?q=&sort_by=&sort_order=&page=&per_page=
func (h *UserController) ListUsers(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 200)
	q := strings.TrimSpace(c.Query("q"))

	order, err := helper.SafeOrderClause(userSortColumns, c.Query("sort_by"), c.Query("sort_order"), "created_at")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid sort field")
	}

	tx := h.DB.Model(&userModel.UserModel{}).
		Where("user_institution_id = ?", institutionID)
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("lower(user_full_name) LIKE ? OR lower(user_email) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userModel.UserModel
	if err := tx.Order(order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}

	out := make([]userDTO.UserSummaryResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, userDTO.FromUserModel(u, h.avatarURL(u)))
	}
	return helper.JsonList(c, "Users loaded", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// POST /api/users/me/avatar — multipart field "avatar", normalized to WebP.
func (h *UserController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing avatar file")
	}

	key, err := ossHelper.UploadAvatarWebP(fh, "avatars/"+userID.String())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var u userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&u).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	oldKey := u.UserAvatarObjectKey
	if err := h.DB.Model(&u).Update("user_avatar_object_key", key).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save avatar")
	}
	if oldKey != nil && *oldKey != key {
		_ = ossHelper.DeleteObject(*oldKey)
	}

	u.UserAvatarObjectKey = &key
	return helper.JsonUpdated(c, "Avatar updated", userDTO.FromUserModel(u, h.avatarURL(u)))
}

func (h *UserController) avatarURL(u userModel.UserModel) *string {
	if u.UserAvatarObjectKey == nil {
		return nil
	}
	url, err := ossHelper.SignedURL(*u.UserAvatarObjectKey, 15*time.Minute)
	if err != nil {
		return nil
	}
	return &url
}

package controller

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unitrack_backend/internals/configs"
	authDTO "unitrack_backend/internals/features/users/auth/dto"
	authModel "unitrack_backend/internals/features/users/auth/model"
	authService "unitrack_backend/internals/features/users/auth/service"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

// POST /auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	u := userModel.UserModel{
		UserEmail:    req.Email,
		UserPassword: string(hash),
		UserFullName: req.FullName,
		UserIsActive: true,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_email = ?", req.Email).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check email")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		if err := tx.Create(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
		}
		return nil
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Account created", authDTO.FromUserModel(u, nil))
}

// POST /auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var u userModel.UserModel
	if err := h.DB.Where("user_email = ?", req.Email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !u.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	return h.respondWithTokens(c, u)
}

// POST /auth/google
// Verifies a Google ID token and signs the matching account in, creating it
// on first sight.
func (h *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || strings.TrimSpace(claims.Email) == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	sub := claims.Sub

	var u userModel.UserModel
	err = h.DB.Where("user_google_subject = ?", sub).Or("user_email = ?", email).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		name := strings.TrimSpace(claims.Name)
		if name == "" {
			name = email
		}
		u = userModel.UserModel{
			UserEmail:         email,
			UserPassword:      "!", // no local password for Google accounts
			UserFullName:      name,
			UserGoogleSubject: &sub,
			UserIsActive:      true,
		}
		if err := h.DB.Create(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
		}
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	default:
		if u.UserGoogleSubject == nil {
			_ = h.DB.Model(&u).Update("user_google_subject", sub).Error
		}
	}
	if !u.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
	}

	return h.respondWithTokens(c, u)
}

// POST /auth/refresh
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userID, err := authService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var u userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&u).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
	}
	if !u.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
	}

	return h.respondWithTokens(c, u)
}

// POST /auth/logout — blacklists the presented access token until its exp.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token_string").(string)
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	expiresAt := time.Now().Add(authService.AccessTokenTTL)
	if exp, ok := c.Locals("token_exp").(int64); ok && exp > 0 {
		expiresAt = time.Unix(exp, 0)
	}

	row := authModel.TokenBlacklistModel{
		TokenBlacklistToken:     tokenString,
		TokenBlacklistExpiresAt: expiresAt,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to log out")
	}
	return helper.JsonOK(c, "Logged out", nil)
}

func (h *AuthController) respondWithTokens(c *fiber.Ctx, u userModel.UserModel) error {
	roles, err := loadRoleNames(h.DB, u.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load roles")
	}

	access, err := authService.IssueAccessToken(u.UserID, u.UserInstitutionID, roles)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	refresh, err := authService.IssueRefreshToken(u.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Login successful", authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.FromUserModel(u, roles),
	})
}

func loadRoleNames(db *gorm.DB, userID interface{}) ([]string, error) {
	var roles []string
	err := db.Model(&userModel.UserRoleModel{}).
		Joins("JOIN roles ON roles.role_id = user_roles.user_role_role_id").
		Where("user_roles.user_role_user_id = ?", userID).
		Pluck("roles.role_name", &roles).Error
	return roles, err
}

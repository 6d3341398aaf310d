package dto

import (
	"strings"

	"github.com/google/uuid"

	userModel "unitrack_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=1,max=120"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	InstitutionID *uuid.UUID `json:"institution_id,omitempty"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Roles         []string   `json:"roles"`
	IsActive      bool       `json:"is_active"`
}

func FromUserModel(u userModel.UserModel, roles []string) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		InstitutionID: u.UserInstitutionID,
		Email:         u.UserEmail,
		FullName:      u.UserFullName,
		Roles:         roles,
		IsActive:      u.UserIsActive,
	}
}

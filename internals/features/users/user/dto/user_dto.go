package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	userModel "unitrack_backend/internals/features/users/user/model"
)

/* =========================================================
   PROFILE CREATE REQUESTS
   ========================================================= */

// Profiles require an existing user row; the controller creates the profile
// and the role assignment in one transaction.

type CreateStudentProfileRequest struct {
	UserID       uuid.UUID  `json:"student_user_id" validate:"required"`
	Number       string     `json:"student_number" validate:"required,min=1,max=40"`
	GradeLevelID *uuid.UUID `json:"student_grade_level_id"`
	MajorID      *uuid.UUID `json:"student_major_id"`
}

func (r *CreateStudentProfileRequest) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
}

type CreateTeacherProfileRequest struct {
	UserID   uuid.UUID  `json:"teacher_user_id" validate:"required"`
	Title    *string    `json:"teacher_title" validate:"omitempty,max=80"`
	HireDate *time.Time `json:"teacher_hire_date"`
}

type CreateParentProfileRequest struct {
	UserID     uuid.UUID   `json:"parent_user_id" validate:"required"`
	StudentIDs []uuid.UUID `json:"parent_student_ids" validate:"omitempty,dive,required"`
}

type CreateAdminProfileRequest struct {
	UserID   uuid.UUID `json:"admin_user_id" validate:"required"`
	Position *string   `json:"admin_position" validate:"omitempty,max=80"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

type StudentProfileResponse struct {
	StudentID     uuid.UUID  `json:"student_id"`
	UserID        uuid.UUID  `json:"student_user_id"`
	InstitutionID uuid.UUID  `json:"student_institution_id"`
	Number        string     `json:"student_number"`
	GradeLevelID  *uuid.UUID `json:"student_grade_level_id,omitempty"`
	MajorID       *uuid.UUID `json:"student_major_id,omitempty"`
	CreatedAt     time.Time  `json:"student_created_at"`
}

func FromStudentProfileModel(m userModel.StudentProfileModel) StudentProfileResponse {
	return StudentProfileResponse{
		StudentID:     m.StudentID,
		UserID:        m.StudentUserID,
		InstitutionID: m.StudentInstitutionID,
		Number:        m.StudentNumber,
		GradeLevelID:  m.StudentGradeLevelID,
		MajorID:       m.StudentMajorID,
		CreatedAt:     m.StudentCreatedAt,
	}
}

type UserSummaryResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	InstitutionID *uuid.UUID `json:"user_institution_id,omitempty"`
	Email         string     `json:"user_email"`
	FullName      string     `json:"user_full_name"`
	AvatarURL     *string    `json:"user_avatar_url,omitempty"`
	IsActive      bool       `json:"user_is_active"`
	CreatedAt     time.Time  `json:"user_created_at"`
}

func FromUserModel(m userModel.UserModel, avatarURL *string) UserSummaryResponse {
	return UserSummaryResponse{
		UserID:        m.UserID,
		InstitutionID: m.UserInstitutionID,
		Email:         m.UserEmail,
		FullName:      m.UserFullName,
		AvatarURL:     avatarURL,
		IsActive:      m.UserIsActive,
		CreatedAt:     m.UserCreatedAt,
	}
}

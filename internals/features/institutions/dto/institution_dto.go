package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "unitrack_backend/internals/features/institutions/model"
	helper "unitrack_backend/internals/helpers"
)

type CreateInstitutionRequest struct {
	Name         string  `json:"institution_name" validate:"required,min=1,max=160"`
	Type         string  `json:"institution_type" validate:"required,oneof=school university"`
	Slug         *string `json:"institution_slug" validate:"omitempty,min=1,max=180"`
	Address      *string `json:"institution_address"`
	ContactEmail *string `json:"institution_contact_email" validate:"omitempty,email,max=255"`
}

func (r *CreateInstitutionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	trimPtr(&r.Address)
	trimPtr(&r.ContactEmail)
	if r.Slug != nil {
		s := helper.Slugify(*r.Slug, 180)
		if s == "" {
			r.Slug = nil
		} else {
			r.Slug = &s
		}
	}
}

func (r CreateInstitutionRequest) ToModel() m.InstitutionModel {
	slug := ""
	if r.Slug != nil {
		slug = *r.Slug
	} else {
		slug = helper.Slugify(r.Name, 180)
		if slug == "" {
			slug = "institution"
		}
	}
	return m.InstitutionModel{
		InstitutionName:         r.Name,
		InstitutionType:         m.InstitutionType(r.Type),
		InstitutionSlug:         slug,
		InstitutionAddress:      r.Address,
		InstitutionContactEmail: r.ContactEmail,
		InstitutionIsActive:     true,
	}
}

type UpdateInstitutionRequest struct {
	Name         *string `json:"institution_name" validate:"omitempty,min=1,max=160"`
	Address      *string `json:"institution_address"`
	ContactEmail *string `json:"institution_contact_email" validate:"omitempty,email,max=255"`
	IsActive     *bool   `json:"institution_is_active"`
}

func (r *UpdateInstitutionRequest) Apply(mm *m.InstitutionModel) {
	if r.Name != nil {
		mm.InstitutionName = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		mm.InstitutionAddress = r.Address
	}
	if r.ContactEmail != nil {
		mm.InstitutionContactEmail = r.ContactEmail
	}
	if r.IsActive != nil {
		mm.InstitutionIsActive = *r.IsActive
	}
}

type InstitutionResponse struct {
	InstitutionID uuid.UUID `json:"institution_id"`
	Name          string    `json:"institution_name"`
	Type          string    `json:"institution_type"`
	Slug          string    `json:"institution_slug"`
	Address       *string   `json:"institution_address,omitempty"`
	ContactEmail  *string   `json:"institution_contact_email,omitempty"`
	IsActive      bool      `json:"institution_is_active"`
	CreatedAt     time.Time `json:"institution_created_at"`
}

func FromInstitutionModel(mm m.InstitutionModel) InstitutionResponse {
	return InstitutionResponse{
		InstitutionID: mm.InstitutionID,
		Name:          mm.InstitutionName,
		Type:          string(mm.InstitutionType),
		Slug:          mm.InstitutionSlug,
		Address:       mm.InstitutionAddress,
		ContactEmail:  mm.InstitutionContactEmail,
		IsActive:      mm.InstitutionIsActive,
		CreatedAt:     mm.InstitutionCreatedAt,
	}
}

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}

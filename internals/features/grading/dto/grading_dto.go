package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "unitrack_backend/internals/features/grading/model"
)

type GradeScaleRequest struct {
	Grade        string  `json:"grade_scale_grade" validate:"required,min=1,max=10"`
	MinimumScore float64 `json:"grade_scale_minimum_score" validate:"min=0,max=100"`
	MaximumScore float64 `json:"grade_scale_maximum_score" validate:"min=0,max=100"`
	GpaValue     float64 `json:"grade_scale_gpa_value" validate:"min=0,max=4"`
}

type CreateGradingSystemRequest struct {
	Name                string              `json:"grading_system_name" validate:"required,min=1,max=120"`
	Type                string              `json:"grading_system_type" validate:"required,oneof=letter numeric percentage"`
	IsDefault           bool                `json:"grading_system_is_default"`
	MinimumPassingScore float64             `json:"grading_system_minimum_passing_score" validate:"min=0,max=100"`
	MaximumScore        float64             `json:"grading_system_maximum_score" validate:"min=0,max=100"`
	GradeScales         []GradeScaleRequest `json:"grade_scales" validate:"required,min=1,dive"`
}

func (r *CreateGradingSystemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.MaximumScore == 0 {
		r.MaximumScore = 100
	}
	for i := range r.GradeScales {
		r.GradeScales[i].Grade = strings.TrimSpace(r.GradeScales[i].Grade)
	}
}

func (r CreateGradingSystemRequest) ToModel(institutionID uuid.UUID) m.GradingSystemModel {
	sys := m.GradingSystemModel{
		GradingSystemInstitutionID:       institutionID,
		GradingSystemName:                r.Name,
		GradingSystemType:                m.GradingSystemType(r.Type),
		GradingSystemIsDefault:           r.IsDefault,
		GradingSystemMinimumPassingScore: r.MinimumPassingScore,
		GradingSystemMaximumScore:        r.MaximumScore,
	}
	for _, s := range r.GradeScales {
		sys.GradeScales = append(sys.GradeScales, m.GradeScaleModel{
			GradeScaleGrade:        s.Grade,
			GradeScaleMinimumScore: s.MinimumScore,
			GradeScaleMaximumScore: s.MaximumScore,
			GradeScaleGpaValue:     s.GpaValue,
		})
	}
	return sys
}

type UpdateGradingSystemRequest struct {
	Name                *string `json:"grading_system_name" validate:"omitempty,min=1,max=120"`
	MinimumPassingScore *float64 `json:"grading_system_minimum_passing_score" validate:"omitempty,min=0,max=100"`
	MaximumScore        *float64 `json:"grading_system_maximum_score" validate:"omitempty,min=0,max=100"`
}

func (r *UpdateGradingSystemRequest) Apply(sys *m.GradingSystemModel) {
	if r.Name != nil {
		sys.GradingSystemName = strings.TrimSpace(*r.Name)
	}
	if r.MinimumPassingScore != nil {
		sys.GradingSystemMinimumPassingScore = *r.MinimumPassingScore
	}
	if r.MaximumScore != nil {
		sys.GradingSystemMaximumScore = *r.MaximumScore
	}
}

// ConvertRequest feeds the conversion engine directly; used by clients to
// preview how raw input lands on the configured bands.
type ConvertRequest struct {
	Grade *string  `json:"grade"`
	Score *float64 `json:"score"`
}

type ConvertResponse struct {
	Score  float64  `json:"score"`
	Label  *string  `json:"label"`
	Gpa    *float64 `json:"gpa"`
	Passed bool     `json:"passed"`
}

type GradingSystemResponse struct {
	GradingSystemID     uuid.UUID           `json:"grading_system_id"`
	InstitutionID       uuid.UUID           `json:"grading_system_institution_id"`
	Name                string              `json:"grading_system_name"`
	Type                string              `json:"grading_system_type"`
	IsDefault           bool                `json:"grading_system_is_default"`
	MinimumPassingScore float64             `json:"grading_system_minimum_passing_score"`
	MaximumScore        float64             `json:"grading_system_maximum_score"`
	GradeScales         []m.GradeScaleModel `json:"grade_scales"`
	CreatedAt           time.Time           `json:"grading_system_created_at"`
}

func FromGradingSystemModel(sys m.GradingSystemModel) GradingSystemResponse {
	return GradingSystemResponse{
		GradingSystemID:     sys.GradingSystemID,
		InstitutionID:       sys.GradingSystemInstitutionID,
		Name:                sys.GradingSystemName,
		Type:                string(sys.GradingSystemType),
		IsDefault:           sys.GradingSystemIsDefault,
		MinimumPassingScore: sys.GradingSystemMinimumPassingScore,
		MaximumScore:        sys.GradingSystemMaximumScore,
		GradeScales:         sys.GradeScales,
		CreatedAt:           sys.GradingSystemCreatedAt,
	}
}

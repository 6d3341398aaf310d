package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradingSystemType string

const (
	GradingSystemTypeLetter     GradingSystemType = "letter"
	GradingSystemTypeNumeric    GradingSystemType = "numeric"
	GradingSystemTypePercentage GradingSystemType = "percentage"
)

func (t GradingSystemType) Valid() bool {
	switch t {
	case GradingSystemTypeLetter, GradingSystemTypeNumeric, GradingSystemTypePercentage:
		return true
	}
	return false
}

// GradingSystemModel holds one institution's grade configuration. At most
// one row per institution carries grading_system_is_default = true.
type GradingSystemModel struct {
	GradingSystemID            uuid.UUID `gorm:"column:grading_system_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grading_system_id"`
	GradingSystemInstitutionID uuid.UUID `gorm:"column:grading_system_institution_id;type:uuid;not null;index" json:"grading_system_institution_id"`

	GradingSystemName      string            `gorm:"column:grading_system_name;type:varchar(120);not null" json:"grading_system_name"`
	GradingSystemType      GradingSystemType `gorm:"column:grading_system_type;type:varchar(20);not null" json:"grading_system_type"`
	GradingSystemIsDefault bool              `gorm:"column:grading_system_is_default;not null;default:false" json:"grading_system_is_default"`

	GradingSystemMinimumPassingScore float64 `gorm:"column:grading_system_minimum_passing_score;type:numeric(5,2);not null" json:"grading_system_minimum_passing_score"`
	GradingSystemMaximumScore        float64 `gorm:"column:grading_system_maximum_score;type:numeric(5,2);not null;default:100" json:"grading_system_maximum_score"`

	GradingSystemCreatedAt time.Time      `gorm:"column:grading_system_created_at;not null;autoCreateTime" json:"grading_system_created_at"`
	GradingSystemUpdatedAt time.Time      `gorm:"column:grading_system_updated_at;not null;autoUpdateTime" json:"grading_system_updated_at"`
	GradingSystemDeletedAt gorm.DeletedAt `gorm:"column:grading_system_deleted_at;index" json:"grading_system_deleted_at,omitempty"`

	GradeScales []GradeScaleModel `gorm:"foreignKey:GradeScaleGradingSystemID;references:GradingSystemID" json:"grade_scales,omitempty"`
}

func (GradingSystemModel) TableName() string { return "grading_systems" }

// GradeScaleModel is one band: label + inclusive score range + GPA points.
// Ranges across one system must not overlap; boundary ties resolve to the
// higher band (inclusive minimum).
type GradeScaleModel struct {
	GradeScaleID              uuid.UUID `gorm:"column:grade_scale_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_scale_id"`
	GradeScaleGradingSystemID uuid.UUID `gorm:"column:grade_scale_grading_system_id;type:uuid;not null;index" json:"grade_scale_grading_system_id"`

	GradeScaleGrade        string  `gorm:"column:grade_scale_grade;type:varchar(10);not null" json:"grade_scale_grade"`
	GradeScaleMinimumScore float64 `gorm:"column:grade_scale_minimum_score;type:numeric(5,2);not null" json:"grade_scale_minimum_score"`
	GradeScaleMaximumScore float64 `gorm:"column:grade_scale_maximum_score;type:numeric(5,2);not null" json:"grade_scale_maximum_score"`
	GradeScaleGpaValue     float64 `gorm:"column:grade_scale_gpa_value;type:numeric(3,2);not null" json:"grade_scale_gpa_value"`

	GradeScaleCreatedAt time.Time      `gorm:"column:grade_scale_created_at;not null;autoCreateTime" json:"grade_scale_created_at"`
	GradeScaleUpdatedAt time.Time      `gorm:"column:grade_scale_updated_at;not null;autoUpdateTime" json:"grade_scale_updated_at"`
	GradeScaleDeletedAt gorm.DeletedAt `gorm:"column:grade_scale_deleted_at;index" json:"grade_scale_deleted_at,omitempty"`
}

func (GradeScaleModel) TableName() string { return "grade_scales" }

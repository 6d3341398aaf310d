package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstitutionType string

const (
	InstitutionTypeSchool     InstitutionType = "school"
	InstitutionTypeUniversity InstitutionType = "university"
)

func (t InstitutionType) Valid() bool {
	return t == InstitutionTypeSchool || t == InstitutionTypeUniversity
}

type InstitutionModel struct {
	InstitutionID uuid.UUID `gorm:"column:institution_id;type:uuid;default:gen_random_uuid();primaryKey" json:"institution_id"`

	InstitutionName string          `gorm:"column:institution_name;type:varchar(160);not null" json:"institution_name"`
	InstitutionType InstitutionType `gorm:"column:institution_type;type:varchar(20);not null" json:"institution_type"`
	InstitutionSlug string          `gorm:"column:institution_slug;type:varchar(180);not null;uniqueIndex" json:"institution_slug"`

	InstitutionAddress      *string `gorm:"column:institution_address;type:text" json:"institution_address,omitempty"`
	InstitutionContactEmail *string `gorm:"column:institution_contact_email;type:varchar(255)" json:"institution_contact_email,omitempty"`

	InstitutionIsActive  bool           `gorm:"column:institution_is_active;not null;default:true" json:"institution_is_active"`
	InstitutionCreatedAt time.Time      `gorm:"column:institution_created_at;not null;autoCreateTime" json:"institution_created_at"`
	InstitutionUpdatedAt time.Time      `gorm:"column:institution_updated_at;not null;autoUpdateTime" json:"institution_updated_at"`
	InstitutionDeletedAt gorm.DeletedAt `gorm:"column:institution_deleted_at;index" json:"institution_deleted_at,omitempty"`
}

func (InstitutionModel) TableName() string { return "institutions" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role profiles are separate tables joined by user_id — a tagged union keyed
// by role, never a class hierarchy. A user may hold several profiles.

type StudentProfileModel struct {
	StudentID            uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentUserID        uuid.UUID `gorm:"column:student_user_id;type:uuid;not null;uniqueIndex" json:"student_user_id"`
	StudentInstitutionID uuid.UUID `gorm:"column:student_institution_id;type:uuid;not null;index" json:"student_institution_id"`

	StudentNumber       string     `gorm:"column:student_number;type:varchar(40);not null" json:"student_number"`
	StudentGradeLevelID *uuid.UUID `gorm:"column:student_grade_level_id;type:uuid" json:"student_grade_level_id,omitempty"`
	StudentMajorID      *uuid.UUID `gorm:"column:student_major_id;type:uuid" json:"student_major_id,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentProfileModel) TableName() string { return "student_profiles" }

type TeacherProfileModel struct {
	TeacherID            uuid.UUID `gorm:"column:teacher_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teacher_id"`
	TeacherUserID        uuid.UUID `gorm:"column:teacher_user_id;type:uuid;not null;uniqueIndex" json:"teacher_user_id"`
	TeacherInstitutionID uuid.UUID `gorm:"column:teacher_institution_id;type:uuid;not null;index" json:"teacher_institution_id"`

	TeacherTitle    *string    `gorm:"column:teacher_title;type:varchar(80)" json:"teacher_title,omitempty"`
	TeacherHireDate *time.Time `gorm:"column:teacher_hire_date" json:"teacher_hire_date,omitempty"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;not null;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;not null;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"teacher_deleted_at,omitempty"`
}

func (TeacherProfileModel) TableName() string { return "teacher_profiles" }

type ParentProfileModel struct {
	ParentID            uuid.UUID `gorm:"column:parent_id;type:uuid;default:gen_random_uuid();primaryKey" json:"parent_id"`
	ParentUserID        uuid.UUID `gorm:"column:parent_user_id;type:uuid;not null;uniqueIndex" json:"parent_user_id"`
	ParentInstitutionID uuid.UUID `gorm:"column:parent_institution_id;type:uuid;not null;index" json:"parent_institution_id"`

	ParentCreatedAt time.Time      `gorm:"column:parent_created_at;not null;autoCreateTime" json:"parent_created_at"`
	ParentUpdatedAt time.Time      `gorm:"column:parent_updated_at;not null;autoUpdateTime" json:"parent_updated_at"`
	ParentDeletedAt gorm.DeletedAt `gorm:"column:parent_deleted_at;index" json:"parent_deleted_at,omitempty"`
}

func (ParentProfileModel) TableName() string { return "parent_profiles" }

// ParentStudentModel links a parent profile to the students they oversee.
type ParentStudentModel struct {
	ParentStudentID        uuid.UUID `gorm:"column:parent_student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"parent_student_id"`
	ParentStudentParentID  uuid.UUID `gorm:"column:parent_student_parent_id;type:uuid;not null;uniqueIndex:uq_parent_students" json:"parent_student_parent_id"`
	ParentStudentStudentID uuid.UUID `gorm:"column:parent_student_student_id;type:uuid;not null;uniqueIndex:uq_parent_students" json:"parent_student_student_id"`
	ParentStudentCreatedAt time.Time `gorm:"column:parent_student_created_at;not null;autoCreateTime" json:"parent_student_created_at"`
}

func (ParentStudentModel) TableName() string { return "parent_students" }

type AdminProfileModel struct {
	AdminID            uuid.UUID `gorm:"column:admin_id;type:uuid;default:gen_random_uuid();primaryKey" json:"admin_id"`
	AdminUserID        uuid.UUID `gorm:"column:admin_user_id;type:uuid;not null;uniqueIndex" json:"admin_user_id"`
	AdminInstitutionID uuid.UUID `gorm:"column:admin_institution_id;type:uuid;not null;index" json:"admin_institution_id"`

	AdminPosition *string `gorm:"column:admin_position;type:varchar(80)" json:"admin_position,omitempty"`

	AdminCreatedAt time.Time      `gorm:"column:admin_created_at;not null;autoCreateTime" json:"admin_created_at"`
	AdminUpdatedAt time.Time      `gorm:"column:admin_updated_at;not null;autoUpdateTime" json:"admin_updated_at"`
	AdminDeletedAt gorm.DeletedAt `gorm:"column:admin_deleted_at;index" json:"admin_deleted_at,omitempty"`
}

func (AdminProfileModel) TableName() string { return "admin_profiles" }

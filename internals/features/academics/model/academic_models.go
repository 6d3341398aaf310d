package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacultyModel struct {
	FacultyID            uuid.UUID `gorm:"column:faculty_id;type:uuid;default:gen_random_uuid();primaryKey" json:"faculty_id"`
	FacultyInstitutionID uuid.UUID `gorm:"column:faculty_institution_id;type:uuid;not null;index" json:"faculty_institution_id"`

	FacultyCode string `gorm:"column:faculty_code;type:varchar(40);not null" json:"faculty_code"`
	FacultyName string `gorm:"column:faculty_name;type:varchar(120);not null" json:"faculty_name"`

	FacultyCreatedAt time.Time      `gorm:"column:faculty_created_at;not null;autoCreateTime" json:"faculty_created_at"`
	FacultyUpdatedAt time.Time      `gorm:"column:faculty_updated_at;not null;autoUpdateTime" json:"faculty_updated_at"`
	FacultyDeletedAt gorm.DeletedAt `gorm:"column:faculty_deleted_at;index" json:"faculty_deleted_at,omitempty"`
}

func (FacultyModel) TableName() string { return "faculties" }

type MajorModel struct {
	MajorID            uuid.UUID `gorm:"column:major_id;type:uuid;default:gen_random_uuid();primaryKey" json:"major_id"`
	MajorInstitutionID uuid.UUID `gorm:"column:major_institution_id;type:uuid;not null;index" json:"major_institution_id"`
	MajorFacultyID     uuid.UUID `gorm:"column:major_faculty_id;type:uuid;not null;index" json:"major_faculty_id"`

	MajorCode string `gorm:"column:major_code;type:varchar(40);not null" json:"major_code"`
	MajorName string `gorm:"column:major_name;type:varchar(120);not null" json:"major_name"`

	MajorCreatedAt time.Time      `gorm:"column:major_created_at;not null;autoCreateTime" json:"major_created_at"`
	MajorUpdatedAt time.Time      `gorm:"column:major_updated_at;not null;autoUpdateTime" json:"major_updated_at"`
	MajorDeletedAt gorm.DeletedAt `gorm:"column:major_deleted_at;index" json:"major_deleted_at,omitempty"`
}

func (MajorModel) TableName() string { return "majors" }

type GradeLevelModel struct {
	GradeLevelID            uuid.UUID `gorm:"column:grade_level_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_level_id"`
	GradeLevelInstitutionID uuid.UUID `gorm:"column:grade_level_institution_id;type:uuid;not null;index" json:"grade_level_institution_id"`

	GradeLevelNumber int    `gorm:"column:grade_level_number;not null" json:"grade_level_number"`
	GradeLevelName   string `gorm:"column:grade_level_name;type:varchar(80);not null" json:"grade_level_name"`

	GradeLevelCreatedAt time.Time      `gorm:"column:grade_level_created_at;not null;autoCreateTime" json:"grade_level_created_at"`
	GradeLevelUpdatedAt time.Time      `gorm:"column:grade_level_updated_at;not null;autoUpdateTime" json:"grade_level_updated_at"`
	GradeLevelDeletedAt gorm.DeletedAt `gorm:"column:grade_level_deleted_at;index" json:"grade_level_deleted_at,omitempty"`
}

func (GradeLevelModel) TableName() string { return "grade_levels" }

type SubjectModel struct {
	SubjectID            uuid.UUID `gorm:"column:subject_id;type:uuid;default:gen_random_uuid();primaryKey" json:"subject_id"`
	SubjectInstitutionID uuid.UUID `gorm:"column:subject_institution_id;type:uuid;not null;index" json:"subject_institution_id"`

	SubjectCode string  `gorm:"column:subject_code;type:varchar(40);not null" json:"subject_code"`
	SubjectName string  `gorm:"column:subject_name;type:varchar(120);not null" json:"subject_name"`
	SubjectDesc *string `gorm:"column:subject_desc;type:text" json:"subject_desc,omitempty"`

	SubjectIsActive  bool           `gorm:"column:subject_is_active;not null;default:true" json:"subject_is_active"`
	SubjectCreatedAt time.Time      `gorm:"column:subject_created_at;not null;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"column:subject_updated_at;not null;autoUpdateTime" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

type SemesterModel struct {
	SemesterID            uuid.UUID `gorm:"column:semester_id;type:uuid;default:gen_random_uuid();primaryKey" json:"semester_id"`
	SemesterInstitutionID uuid.UUID `gorm:"column:semester_institution_id;type:uuid;not null;index" json:"semester_institution_id"`

	SemesterName      string    `gorm:"column:semester_name;type:varchar(80);not null" json:"semester_name"`
	SemesterStartDate time.Time `gorm:"column:semester_start_date;not null" json:"semester_start_date"`
	SemesterEndDate   time.Time `gorm:"column:semester_end_date;not null" json:"semester_end_date"`
	SemesterIsCurrent bool      `gorm:"column:semester_is_current;not null;default:false" json:"semester_is_current"`

	SemesterCreatedAt time.Time      `gorm:"column:semester_created_at;not null;autoCreateTime" json:"semester_created_at"`
	SemesterUpdatedAt time.Time      `gorm:"column:semester_updated_at;not null;autoUpdateTime" json:"semester_updated_at"`
	SemesterDeletedAt gorm.DeletedAt `gorm:"column:semester_deleted_at;index" json:"semester_deleted_at,omitempty"`
}

func (SemesterModel) TableName() string { return "semesters" }

type CourseModel struct {
	CourseID            uuid.UUID `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseInstitutionID uuid.UUID `gorm:"column:course_institution_id;type:uuid;not null;index" json:"course_institution_id"`

	CourseSubjectID    uuid.UUID  `gorm:"column:course_subject_id;type:uuid;not null;index" json:"course_subject_id"`
	CourseTeacherID    uuid.UUID  `gorm:"column:course_teacher_id;type:uuid;not null;index" json:"course_teacher_id"`
	CourseSemesterID   uuid.UUID  `gorm:"column:course_semester_id;type:uuid;not null;index" json:"course_semester_id"`
	CourseGradeLevelID *uuid.UUID `gorm:"column:course_grade_level_id;type:uuid" json:"course_grade_level_id,omitempty"`

	CourseName string `gorm:"column:course_name;type:varchar(160);not null" json:"course_name"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

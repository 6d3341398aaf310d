package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarkType string

const (
	MarkTypeTest       MarkType = "test"
	MarkTypeAssignment MarkType = "assignment"
	MarkTypeQuiz       MarkType = "quiz"
	MarkTypeExam       MarkType = "exam"
	MarkTypeHomework   MarkType = "homework"
)

func (t MarkType) Valid() bool {
	switch t {
	case MarkTypeTest, MarkTypeAssignment, MarkTypeQuiz, MarkTypeExam, MarkTypeHomework:
		return true
	}
	return false
}

// MarkModel stores the canonical 0..100 value only. Grade label, GPA and
// pass/fail are derived at read time through the institution's default
// grading system — never persisted.
type MarkModel struct {
	MarkID            uuid.UUID `gorm:"column:mark_id;type:uuid;default:gen_random_uuid();primaryKey" json:"mark_id"`
	MarkInstitutionID uuid.UUID `gorm:"column:mark_institution_id;type:uuid;not null;index" json:"mark_institution_id"`

	MarkStudentID  uuid.UUID  `gorm:"column:mark_student_id;type:uuid;not null;index" json:"mark_student_id"`
	MarkSubjectID  uuid.UUID  `gorm:"column:mark_subject_id;type:uuid;not null;index" json:"mark_subject_id"`
	MarkTeacherID  uuid.UUID  `gorm:"column:mark_teacher_id;type:uuid;not null;index" json:"mark_teacher_id"`
	MarkSemesterID *uuid.UUID `gorm:"column:mark_semester_id;type:uuid;index" json:"mark_semester_id,omitempty"`

	MarkValue       float64  `gorm:"column:mark_value;type:numeric(5,2);not null" json:"mark_value"`
	MarkTopic       string   `gorm:"column:mark_topic;type:varchar(160);not null" json:"mark_topic"`
	MarkType        MarkType `gorm:"column:mark_type;type:varchar(20);not null" json:"mark_type"`
	MarkDescription *string  `gorm:"column:mark_description;type:text" json:"mark_description,omitempty"`

	MarkCreatedAt time.Time      `gorm:"column:mark_created_at;not null;autoCreateTime" json:"mark_created_at"`
	MarkUpdatedAt time.Time      `gorm:"column:mark_updated_at;not null;autoUpdateTime" json:"mark_updated_at"`
	MarkDeletedAt gorm.DeletedAt `gorm:"column:mark_deleted_at;index" json:"mark_deleted_at,omitempty"`
}

func (MarkModel) TableName() string { return "marks" }

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

type AttendanceModel struct {
	AttendanceID            uuid.UUID `gorm:"column:attendance_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_id"`
	AttendanceInstitutionID uuid.UUID `gorm:"column:attendance_institution_id;type:uuid;not null;index" json:"attendance_institution_id"`

	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;index" json:"attendance_student_id"`
	AttendanceCourseID  uuid.UUID `gorm:"column:attendance_course_id;type:uuid;not null;index" json:"attendance_course_id"`
	AttendanceTeacherID uuid.UUID `gorm:"column:attendance_teacher_id;type:uuid;not null" json:"attendance_teacher_id"`

	AttendanceDate   time.Time        `gorm:"column:attendance_date;type:date;not null;index" json:"attendance_date"`
	AttendanceStatus AttendanceStatus `gorm:"column:attendance_status;type:varchar(10);not null" json:"attendance_status"`
	AttendanceNote   *string          `gorm:"column:attendance_note;type:text" json:"attendance_note,omitempty"`

	AttendanceCreatedAt time.Time      `gorm:"column:attendance_created_at;not null;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time      `gorm:"column:attendance_updated_at;not null;autoUpdateTime" json:"attendance_updated_at"`
	AttendanceDeletedAt gorm.DeletedAt `gorm:"column:attendance_deleted_at;index" json:"attendance_deleted_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }

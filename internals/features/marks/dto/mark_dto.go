package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	gradingService "unitrack_backend/internals/features/grading/service"
	m "unitrack_backend/internals/features/marks/model"
)

type CreateMarkRequest struct {
	StudentID  uuid.UUID  `json:"mark_student_id" validate:"required"`
	SubjectID  uuid.UUID  `json:"mark_subject_id" validate:"required"`
	SemesterID *uuid.UUID `json:"mark_semester_id"`

	// Raw input: an exact score, a letter grade, or both (score wins).
	Score *float64 `json:"mark_score" validate:"omitempty,min=0,max=100"`
	Grade *string  `json:"mark_grade" validate:"omitempty,min=1,max=10"`

	Topic       string  `json:"mark_topic" validate:"required,min=1,max=160"`
	Type        string  `json:"mark_type" validate:"required,oneof=test assignment quiz exam homework"`
	Description *string `json:"mark_description"`
}

func (r *CreateMarkRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Grade != nil {
		g := strings.TrimSpace(*r.Grade)
		if g == "" {
			r.Grade = nil
		} else {
			r.Grade = &g
		}
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
}

type UpdateMarkRequest struct {
	Score       *float64 `json:"mark_score" validate:"omitempty,min=0,max=100"`
	Topic       *string  `json:"mark_topic" validate:"omitempty,min=1,max=160"`
	Description *string  `json:"mark_description"`
}

// MarkResponse carries the stored row plus the derived grade view.
type MarkResponse struct {
	MarkID        uuid.UUID  `json:"mark_id"`
	InstitutionID uuid.UUID  `json:"mark_institution_id"`
	StudentID     uuid.UUID  `json:"mark_student_id"`
	SubjectID     uuid.UUID  `json:"mark_subject_id"`
	TeacherID     uuid.UUID  `json:"mark_teacher_id"`
	SemesterID    *uuid.UUID `json:"mark_semester_id,omitempty"`

	Value       float64 `json:"mark_value"`
	Topic       string  `json:"mark_topic"`
	Type        string  `json:"mark_type"`
	Description *string `json:"mark_description,omitempty"`

	GradeLabel *string  `json:"mark_grade_label"`
	GpaValue   *float64 `json:"mark_gpa_value"`
	Passed     *bool    `json:"mark_passed"`

	CreatedAt time.Time `json:"mark_created_at"`
}

// FromMarkModel builds the response; derived is nil when the institution
// has no default grading system configured.
func FromMarkModel(mm m.MarkModel, derived *gradingService.DerivedGrade) MarkResponse {
	out := MarkResponse{
		MarkID:        mm.MarkID,
		InstitutionID: mm.MarkInstitutionID,
		StudentID:     mm.MarkStudentID,
		SubjectID:     mm.MarkSubjectID,
		TeacherID:     mm.MarkTeacherID,
		SemesterID:    mm.MarkSemesterID,
		Value:         mm.MarkValue,
		Topic:         mm.MarkTopic,
		Type:          string(mm.MarkType),
		Description:   mm.MarkDescription,
		CreatedAt:     mm.MarkCreatedAt,
	}
	if derived != nil {
		out.GradeLabel = derived.Label
		out.GpaValue = derived.Gpa
		passed := derived.Passed
		out.Passed = &passed
	}
	return out
}

type CreateAttendanceRequest struct {
	StudentID uuid.UUID `json:"attendance_student_id" validate:"required"`
	CourseID  uuid.UUID `json:"attendance_course_id" validate:"required"`
	Date      time.Time `json:"attendance_date" validate:"required"`
	Status    string    `json:"attendance_status" validate:"required,oneof=present absent late excused"`
	Note      *string   `json:"attendance_note"`
}

func (r *CreateAttendanceRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Note != nil {
		n := strings.TrimSpace(*r.Note)
		if n == "" {
			r.Note = nil
		} else {
			r.Note = &n
		}
	}
}

package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateFacultyRequest struct {
	Code string `json:"faculty_code" validate:"required,min=1,max=40"`
	Name string `json:"faculty_name" validate:"required,min=1,max=120"`
}

func (r *CreateFacultyRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
}

type CreateMajorRequest struct {
	FacultyID uuid.UUID `json:"major_faculty_id" validate:"required"`
	Code      string    `json:"major_code" validate:"required,min=1,max=40"`
	Name      string    `json:"major_name" validate:"required,min=1,max=120"`
}

func (r *CreateMajorRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
}

type CreateGradeLevelRequest struct {
	Number int    `json:"grade_level_number" validate:"required,min=1,max=20"`
	Name   string `json:"grade_level_name" validate:"required,min=1,max=80"`
}

func (r *CreateGradeLevelRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type CreateSubjectRequest struct {
	Code string  `json:"subject_code" validate:"required,min=1,max=40"`
	Name string  `json:"subject_name" validate:"required,min=1,max=120"`
	Desc *string `json:"subject_desc"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	if r.Desc != nil {
		d := strings.TrimSpace(*r.Desc)
		if d == "" {
			r.Desc = nil
		} else {
			r.Desc = &d
		}
	}
}

type CreateSemesterRequest struct {
	Name      string    `json:"semester_name" validate:"required,min=1,max=80"`
	StartDate time.Time `json:"semester_start_date" validate:"required"`
	EndDate   time.Time `json:"semester_end_date" validate:"required"`
	IsCurrent bool      `json:"semester_is_current"`
}

func (r *CreateSemesterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type CreateCourseRequest struct {
	SubjectID    uuid.UUID  `json:"course_subject_id" validate:"required"`
	TeacherID    uuid.UUID  `json:"course_teacher_id" validate:"required"`
	SemesterID   uuid.UUID  `json:"course_semester_id" validate:"required"`
	GradeLevelID *uuid.UUID `json:"course_grade_level_id"`
	Name         string     `json:"course_name" validate:"required,min=1,max=160"`
}

func (r *CreateCourseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

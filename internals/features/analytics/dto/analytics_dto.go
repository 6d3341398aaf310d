package dto

import "github.com/google/uuid"

type DashboardResponse struct {
	UserCount    int64 `json:"user_count"`
	StudentCount int64 `json:"student_count"`
	TeacherCount int64 `json:"teacher_count"`
	ParentCount  int64 `json:"parent_count"`
	MarkCount    int64 `json:"mark_count"`
	MessageCount int64 `json:"message_count"`
}

type AttendanceRateResponse struct {
	TotalRecords int64   `json:"total_records"`
	PresentCount int64   `json:"present_count"`
	LateCount    int64   `json:"late_count"`
	AbsentCount  int64   `json:"absent_count"`
	ExcusedCount int64   `json:"excused_count"`
	Rate         float64 `json:"rate"`
}

type SubjectAverageResponse struct {
	SubjectID  uuid.UUID `json:"subject_id"`
	MarkCount  int64     `json:"mark_count"`
	Average    float64   `json:"average"`
	GradeLabel *string   `json:"grade_label"`
	GpaValue   *float64  `json:"gpa_value"`
	PassRate   float64   `json:"pass_rate"`
}

type GradeDistributionEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type GradeDistributionResponse struct {
	TotalMarks int64                    `json:"total_marks"`
	Unmatched  int                      `json:"unmatched"`
	Entries    []GradeDistributionEntry `json:"entries"`
}

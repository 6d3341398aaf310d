package controller

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	analyticsDTO "unitrack_backend/internals/features/analytics/dto"
	chatModel "unitrack_backend/internals/features/chat/model"
	gradingController "unitrack_backend/internals/features/grading/controller"
	gradingService "unitrack_backend/internals/features/grading/service"
	markModel "unitrack_backend/internals/features/marks/model"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

type AnalyticsController struct {
	DB *gorm.DB
}

// GET /admin/analytics/dashboard
func (h *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var out analyticsDTO.DashboardResponse
	counts := []struct {
		model any
		where string
		dst   *int64
	}{
		{&userModel.UserModel{}, "user_institution_id = ?", &out.UserCount},
		{&userModel.StudentProfileModel{}, "student_institution_id = ?", &out.StudentCount},
		{&userModel.TeacherProfileModel{}, "teacher_institution_id = ?", &out.TeacherCount},
		{&userModel.ParentProfileModel{}, "parent_institution_id = ?", &out.ParentCount},
		{&markModel.MarkModel{}, "mark_institution_id = ?", &out.MarkCount},
		{&chatModel.ChatMessageModel{}, "chat_message_institution_id = ?", &out.MessageCount},
	}
	for _, q := range counts {
		if err := h.DB.Model(q.model).Where(q.where, institutionID).Count(q.dst).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute dashboard")
		}
	}

	return helper.JsonOK(c, "Dashboard loaded", out)
}

// GET /admin/analytics/attendance-rate?from=&to=
// Rate counts present and late as attended.
func (h *AnalyticsController) AttendanceRate(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	q := h.DB.Model(&markModel.AttendanceModel{}).
		Where("attendance_institution_id = ?", institutionID)
	if v := strings.TrimSpace(c.Query("from")); v != "" {
		if t, perr := time.Parse("2006-01-02", v); perr == nil {
			q = q.Where("attendance_date >= ?", t)
		}
	}
	if v := strings.TrimSpace(c.Query("to")); v != "" {
		if t, perr := time.Parse("2006-01-02", v); perr == nil {
			q = q.Where("attendance_date <= ?", t)
		}
	}

	var rows []struct {
		Status markModel.AttendanceStatus `gorm:"column:attendance_status"`
		N      int64                      `gorm:"column:n"`
	}
	if err := q.Select("attendance_status, COUNT(*) AS n").
		Group("attendance_status").
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute attendance rate")
	}

	var out analyticsDTO.AttendanceRateResponse
	for _, r := range rows {
		out.TotalRecords += r.N
		switch r.Status {
		case markModel.AttendancePresent:
			out.PresentCount = r.N
		case markModel.AttendanceLate:
			out.LateCount = r.N
		case markModel.AttendanceAbsent:
			out.AbsentCount = r.N
		case markModel.AttendanceExcused:
			out.ExcusedCount = r.N
		}
	}
	if out.TotalRecords > 0 {
		out.Rate = float64(out.PresentCount+out.LateCount) / float64(out.TotalRecords)
	}

	return helper.JsonOK(c, "Attendance rate computed", out)
}

// GET /admin/analytics/subject-averages?semester_id=
// Average mark per subject, plus the grade the average maps to.
func (h *AnalyticsController) SubjectAverages(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	q := h.DB.Model(&markModel.MarkModel{}).
		Where("mark_institution_id = ?", institutionID)
	if v := strings.TrimSpace(c.Query("semester_id")); v != "" {
		q = q.Where("mark_semester_id = ?", v)
	}

	var rows []struct {
		SubjectID uuid.UUID `gorm:"column:subject_id"`
		N         int64     `gorm:"column:n"`
		Avg       float64   `gorm:"column:avg"`
	}
	if err := q.Select("mark_subject_id AS subject_id, COUNT(*) AS n, AVG(mark_value) AS avg").
		Group("mark_subject_id").
		Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute averages")
	}

	sys, sysErr := gradingController.DefaultSystemFor(h.DB, institutionID)

	out := make([]analyticsDTO.SubjectAverageResponse, 0, len(rows))
	for _, r := range rows {
		entry := analyticsDTO.SubjectAverageResponse{
			SubjectID: r.SubjectID,
			MarkCount: r.N,
			Average:   r.Avg,
		}
		if sysErr == nil {
			derived := gradingService.DeriveGrade(r.Avg, sys)
			entry.GradeLabel = derived.Label
			entry.GpaValue = derived.Gpa

			var passed int64
			if err := h.DB.Model(&markModel.MarkModel{}).
				Where("mark_institution_id = ? AND mark_subject_id = ? AND mark_value >= ?",
					institutionID, r.SubjectID, sys.GradingSystemMinimumPassingScore).
				Count(&passed).Error; err == nil && r.N > 0 {
				entry.PassRate = float64(passed) / float64(r.N)
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].SubjectID.String(), out[j].SubjectID.String()) < 0
	})

	return helper.JsonOK(c, "Subject averages computed", out)
}

// GET /admin/analytics/grade-distribution
// Runs every stored mark value through the default grading system and
// tallies the resulting labels. Values outside every band land in the
// unmatched bucket rather than failing the report.
func (h *AnalyticsController) GradeDistribution(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	sys, err := gradingController.DefaultSystemFor(h.DB, institutionID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "No default grading system configured")
	}

	var values []float64
	if err := h.DB.Model(&markModel.MarkModel{}).
		Where("mark_institution_id = ?", institutionID).
		Pluck("mark_value", &values).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load marks")
	}

	tally := map[string]int{}
	unmatched := 0
	for _, v := range values {
		derived := gradingService.DeriveGrade(v, sys)
		if derived.Label == nil {
			unmatched++
			continue
		}
		tally[*derived.Label]++
	}

	entries := make([]analyticsDTO.GradeDistributionEntry, 0, len(tally))
	for label, n := range tally {
		entries = append(entries, analyticsDTO.GradeDistributionEntry{Label: label, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})

	return helper.JsonOK(c, "Grade distribution computed", analyticsDTO.GradeDistributionResponse{
		TotalMarks: int64(len(values)),
		Unmatched:  unmatched,
		Entries:    entries,
	})
}

package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	markDTO "unitrack_backend/internals/features/marks/dto"
	markModel "unitrack_backend/internals/features/marks/model"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

// POST /teacher/attendance
func (h *AttendanceController) CreateAttendance(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req markDTO.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var teacher userModel.TeacherProfileModel
	if err := h.DB.Where("teacher_user_id = ? AND teacher_institution_id = ?", userID, institutionID).
		First(&teacher).Error; err != nil {
		return fiber.NewError(fiber.StatusForbidden, "Caller has no teacher profile")
	}

	row := markModel.AttendanceModel{
		AttendanceInstitutionID: institutionID,
		AttendanceStudentID:     req.StudentID,
		AttendanceCourseID:      req.CourseID,
		AttendanceTeacherID:     teacher.TeacherID,
		AttendanceDate:          req.Date,
		AttendanceStatus:        markModel.AttendanceStatus(req.Status),
		AttendanceNote:          req.Note,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&markModel.AttendanceModel{}).
			Where("attendance_student_id = ? AND attendance_course_id = ? AND attendance_date = ?",
				req.StudentID, req.CourseID, req.Date).
			Count(&dup).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check attendance")
		}
		if dup > 0 {
			return fiber.NewError(fiber.StatusConflict, "Attendance already recorded for this date")
		}
		if err := tx.Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record attendance")
		}
		return nil
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Attendance recorded", row)
}

// GET /api/attendance?student_id=&course_id=&from=&to=
func (h *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.Model(&markModel.AttendanceModel{}).
		Where("attendance_institution_id = ?", institutionID)
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		tx = tx.Where("attendance_student_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("course_id")); v != "" {
		tx = tx.Where("attendance_course_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("from")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			tx = tx.Where("attendance_date >= ?", t)
		}
	}
	if v := strings.TrimSpace(c.Query("to")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			tx = tx.Where("attendance_date <= ?", t)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count attendance")
	}

	var rows []markModel.AttendanceModel
	if err := tx.Order("attendance_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list attendance")
	}

	return helper.JsonList(c, "Attendance loaded", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

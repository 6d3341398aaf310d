package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"unitrack_backend/internals/constants"
	userDTO "unitrack_backend/internals/features/users/user/dto"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

// ProfileController creates role profiles. A profile never creates its
// identity row: the user must already exist, and the profile plus role
// assignment are committed in one transaction so identity and domain state
// cannot drift.
type ProfileController struct {
	DB *gorm.DB
}

// POST /admin/profiles/students
func (h *ProfileController) CreateStudentProfile(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.CreateStudentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var out userModel.StudentProfileModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, req.UserID, institutionID); err != nil {
			return err
		}

		var cnt int64
		if err := tx.Model(&userModel.StudentProfileModel{}).
			Where("student_user_id = ?", req.UserID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check profile")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "User already has a student profile")
		}

		out = userModel.StudentProfileModel{
			StudentUserID:        req.UserID,
			StudentInstitutionID: institutionID,
			StudentNumber:        req.Number,
			StudentGradeLevelID:  req.GradeLevelID,
			StudentMajorID:       req.MajorID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student profile")
		}
		return assignRole(tx, req.UserID, constants.RoleStudent)
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Student profile created", userDTO.FromStudentProfileModel(out))
}

// POST /admin/profiles/teachers
func (h *ProfileController) CreateTeacherProfile(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.CreateTeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var out userModel.TeacherProfileModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, req.UserID, institutionID); err != nil {
			return err
		}

		var cnt int64
		if err := tx.Model(&userModel.TeacherProfileModel{}).
			Where("teacher_user_id = ?", req.UserID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check profile")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "User already has a teacher profile")
		}

		out = userModel.TeacherProfileModel{
			TeacherUserID:        req.UserID,
			TeacherInstitutionID: institutionID,
			TeacherTitle:         req.Title,
			TeacherHireDate:      req.HireDate,
		}
		if err := tx.Create(&out).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create teacher profile")
		}
		return assignRole(tx, req.UserID, constants.RoleTeacher)
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Teacher profile created", out)
}

// POST /admin/profiles/parents
func (h *ProfileController) CreateParentProfile(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.CreateParentProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var out userModel.ParentProfileModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, req.UserID, institutionID); err != nil {
			return err
		}

		var cnt int64
		if err := tx.Model(&userModel.ParentProfileModel{}).
			Where("parent_user_id = ?", req.UserID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check profile")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "User already has a parent profile")
		}

		out = userModel.ParentProfileModel{
			ParentUserID:        req.UserID,
			ParentInstitutionID: institutionID,
		}
		if err := tx.Create(&out).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create parent profile")
		}

		// linked students must belong to the same institution
		for _, sid := range req.StudentIDs {
			var scnt int64
			if err := tx.Model(&userModel.StudentProfileModel{}).
				Where("student_id = ? AND student_institution_id = ?", sid, institutionID).
				Count(&scnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student")
			}
			if scnt == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Linked student not found")
			}
			link := userModel.ParentStudentModel{
				ParentStudentParentID:  out.ParentID,
				ParentStudentStudentID: sid,
			}
			if err := tx.Create(&link).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to link student")
			}
		}
		return assignRole(tx, req.UserID, constants.RoleParent)
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Parent profile created", out)
}

// POST /admin/profiles/admins
func (h *ProfileController) CreateAdminProfile(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.CreateAdminProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var out userModel.AdminProfileModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, req.UserID, institutionID); err != nil {
			return err
		}

		var cnt int64
		if err := tx.Model(&userModel.AdminProfileModel{}).
			Where("admin_user_id = ?", req.UserID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check profile")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "User already has an admin profile")
		}

		out = userModel.AdminProfileModel{
			AdminUserID:        req.UserID,
			AdminInstitutionID: institutionID,
			AdminPosition:      req.Position,
		}
		if err := tx.Create(&out).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create admin profile")
		}
		return assignRole(tx, req.UserID, constants.RoleAdmin)
	}); err != nil {
		return err
	}

	return helper.JsonCreated(c, "Admin profile created", out)
}

// requireUser loads the identity row and claims it for the institution when
// it is not attached yet.
func requireUser(tx *gorm.DB, userID, institutionID uuid.UUID) error {
	var u userModel.UserModel
	if err := tx.Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found; create the account first")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	}
	if u.UserInstitutionID == nil {
		if err := tx.Model(&u).Update("user_institution_id", institutionID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to attach user to institution")
		}
	} else if *u.UserInstitutionID != institutionID {
		return fiber.NewError(fiber.StatusForbidden, "User belongs to a different institution")
	}
	return nil
}

// assignRole inserts the user_role row when missing; duplicates are a no-op.
func assignRole(tx *gorm.DB, userID uuid.UUID, roleName string) error {
	var role userModel.RoleModel
	if err := tx.Where("role_name = ?", roleName).First(&role).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Role is not seeded: "+roleName)
	}

	var cnt int64
	if err := tx.Model(&userModel.UserRoleModel{}).
		Where("user_role_user_id = ? AND user_role_role_id = ?", userID, role.RoleID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check role assignment")
	}
	if cnt > 0 {
		return nil
	}

	link := userModel.UserRoleModel{
		UserRoleUserID: userID,
		UserRoleRoleID: role.RoleID,
	}
	if err := tx.Create(&link).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign role")
	}
	return nil
}

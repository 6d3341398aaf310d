package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chatDTO "unitrack_backend/internals/features/chat/dto"
	chatModel "unitrack_backend/internals/features/chat/model"
	helper "unitrack_backend/internals/helpers"
)

// POST /chat/groups — creator becomes a member automatically.
func (h *ChatController) CreateGroup(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req chatDTO.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	group := chatModel.ChatGroupModel{
		ChatGroupInstitutionID: institutionID,
		ChatGroupName:          req.Name,
		ChatGroupCreatedBy:     userID,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		members := append([]uuid.UUID{userID}, req.MemberIDs...)
		for _, memberID := range members {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&chatModel.ChatGroupMemberModel{
					ChatGroupMemberGroupID: group.ChatGroupID,
					ChatGroupMemberUserID:  memberID,
				})
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create group")
	}

	return helper.JsonCreated(c, "Group created", group)
}

// GET /chat/groups — groups the caller belongs to.
func (h *ChatController) ListGroups(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	groupIDs, err := h.memberGroupIDs(userID)
	if err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return helper.JsonOK(c, "Groups loaded", []chatModel.ChatGroupModel{})
	}

	var rows []chatModel.ChatGroupModel
	if err := h.DB.Where("chat_group_id IN ? AND chat_group_institution_id = ?", groupIDs, institutionID).
		Order("chat_group_created_at DESC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list groups")
	}
	return helper.JsonOK(c, "Groups loaded", rows)
}

// POST /chat/groups/:id/members — any existing member may add users.
func (h *ChatController) AddGroupMember(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	groupID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}

	var req chatDTO.AddGroupMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var group chatModel.ChatGroupModel
	if err := h.DB.Where("chat_group_id = ? AND chat_group_institution_id = ?", groupID, institutionID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Group not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load group")
	}
	if err := h.requireMembership(groupID, userID); err != nil {
		return err
	}

	res := h.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&chatModel.ChatGroupMemberModel{
			ChatGroupMemberGroupID: groupID,
			ChatGroupMemberUserID:  req.UserID,
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add member")
	}

	return helper.JsonCreated(c, "Member added", fiber.Map{
		"chat_group_id": groupID,
		"user_id":       req.UserID,
		"already_member": res.RowsAffected == 0,
	})
}

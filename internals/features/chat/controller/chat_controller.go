package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"unitrack_backend/internals/constants"
	chatDTO "unitrack_backend/internals/features/chat/dto"
	chatModel "unitrack_backend/internals/features/chat/model"
	chatService "unitrack_backend/internals/features/chat/service"
	userModel "unitrack_backend/internals/features/users/user/model"
	helper "unitrack_backend/internals/helpers"
)

type ChatController struct {
	DB       *gorm.DB
	Emitter  *chatService.EventEmitter
	Presence *chatService.PresenceService
}

func NewChatController(db *gorm.DB, rdb *redis.Client) *ChatController {
	return &ChatController{
		DB:       db,
		Emitter:  &chatService.EventEmitter{RDB: rdb},
		Presence: &chatService.PresenceService{RDB: rdb},
	}
}

var validate = validator.New()

// POST /chat/messages
func (h *ChatController) SendMessage(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	senderID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req chatDTO.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Exactly one of recipient or group must be set")
	}

	if req.RecipientID != nil {
		var cnt int64
		if err := h.DB.Model(&userModel.UserModel{}).
			Where("user_id = ? AND user_institution_id = ?", req.RecipientID, institutionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check recipient")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Recipient not found")
		}
	} else {
		if err := h.requireMembership(*req.GroupID, senderID); err != nil {
			return err
		}
	}

	if req.ParentMessageID != nil {
		var parent chatModel.ChatMessageModel
		if err := h.DB.Where("chat_message_id = ? AND chat_message_institution_id = ?",
			req.ParentMessageID, institutionID).First(&parent).Error; err != nil || parent.ChatMessageIsDeleted {
			return fiber.NewError(fiber.StatusNotFound, "Parent message not found")
		}
	}

	m := chatModel.ChatMessageModel{
		ChatMessageInstitutionID:   institutionID,
		ChatMessageSenderID:        senderID,
		ChatMessageRecipientID:     req.RecipientID,
		ChatMessageGroupID:         req.GroupID,
		ChatMessageParentMessageID: req.ParentMessageID,
		ChatMessageContent:         req.Content,
		ChatMessageAttachmentURL:   req.AttachmentURL,
		ChatMessageStatus:          chatModel.MessageStatusSent,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to send message")
		}
		content := m.ChatMessageContent
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventMessageSent,
			chatService.MessageEventPayload{
				MessageID:   m.ChatMessageID,
				SenderID:    senderID,
				RecipientID: m.ChatMessageRecipientID,
				GroupID:     m.ChatMessageGroupID,
				Content:     &content,
			})
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send message")
	}

	return helper.JsonCreated(c, "Message sent", chatDTO.FromChatMessageModel(m, 0, 0, nil))
}

// POST /chat/messages/:id/delivered
// Delivery acknowledgement from the recipient's client. Direct messages
// only; group read state is tracked per member.
func (h *ChatController) MarkDelivered(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	m, err := h.loadMessage(c, institutionID)
	if err != nil {
		return err
	}
	if !m.IsDirect() {
		return fiber.NewError(fiber.StatusBadRequest, "Delivery tracking applies to direct messages only")
	}
	if *m.ChatMessageRecipientID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Only the recipient may acknowledge delivery")
	}

	if !chatService.ApplyStatus(&m, chatModel.MessageStatusDelivered, time.Now()) {
		// monotonic no-op: already delivered or read
		return helper.JsonOK(c, "Message already delivered", chatDTO.FromChatMessageModel(m, 0, 0, nil))
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventMessageDelivered,
			chatService.MessageEventPayload{
				MessageID:   m.ChatMessageID,
				SenderID:    m.ChatMessageSenderID,
				RecipientID: m.ChatMessageRecipientID,
			})
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark delivered")
	}

	return helper.JsonUpdated(c, "Message delivered", chatDTO.FromChatMessageModel(m, 0, 0, nil))
}

// POST /chat/messages/read — batch read acknowledgement.
func (h *ChatController) MarkRead(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req chatDTO.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var msgs []chatModel.ChatMessageModel
	if err := h.DB.Where("chat_message_id IN ? AND chat_message_institution_id = ?",
		req.MessageIDs, institutionID).Find(&msgs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load messages")
	}

	now := time.Now()
	readIDs := make([]uuid.UUID, 0, len(msgs))
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		for i := range msgs {
			m := &msgs[i]
			if m.ChatMessageIsDeleted {
				continue
			}
			switch {
			case m.IsDirect() && *m.ChatMessageRecipientID == userID:
				if chatService.ApplyStatus(m, chatModel.MessageStatusRead, now) {
					if err := tx.Save(m).Error; err != nil {
						return err
					}
					readIDs = append(readIDs, m.ChatMessageID)
				}
			case m.IsGroup() && m.ChatMessageSenderID != userID:
				res := tx.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&chatModel.ChatMessageReadModel{
						ChatMessageReadMessageID: m.ChatMessageID,
						ChatMessageReadUserID:    userID,
						ChatMessageReadAt:        now,
					})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected > 0 {
					readIDs = append(readIDs, m.ChatMessageID)
				}
			}
		}
		if len(readIDs) == 0 {
			return nil
		}
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventMessageRead,
			chatService.MessageReadPayload{MessageIDs: readIDs, ReaderID: userID})
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to mark read")
	}

	return helper.JsonUpdated(c, "Messages read", fiber.Map{"read_message_ids": readIDs})
}

// PATCH /chat/messages/:id
func (h *ChatController) EditMessage(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req chatDTO.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.loadMessage(c, institutionID)
	if err != nil {
		return err
	}

	history, editErr := chatService.ApplyEdit(&m, userID, req.Content, req.Reason, time.Now())
	if editErr != nil {
		switch {
		case errors.Is(editErr, chatService.ErrNotSender):
			return fiber.NewError(fiber.StatusForbidden, editErr.Error())
		case errors.Is(editErr, chatService.ErrMessageDeleted):
			return fiber.NewError(fiber.StatusNotFound, "Message not found")
		default:
			return fiber.NewError(fiber.StatusBadRequest, editErr.Error())
		}
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		content := m.ChatMessageContent
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventMessageEdited,
			chatService.MessageEventPayload{
				MessageID:   m.ChatMessageID,
				SenderID:    m.ChatMessageSenderID,
				RecipientID: m.ChatMessageRecipientID,
				GroupID:     m.ChatMessageGroupID,
				Content:     &content,
			})
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to edit message")
	}

	editCount, _ := h.editCount(m.ChatMessageID)
	return helper.JsonUpdated(c, "Message edited", chatDTO.FromChatMessageModel(m, editCount, 0, nil))
}

// DELETE /chat/messages/:id?hard=true
// Soft delete tombstones the row. Hard delete removes it and is reserved
// for admins; the event carries the is_hard_delete flag either way.
func (h *ChatController) DeleteMessage(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	m, err := h.loadMessage(c, institutionID)
	if err != nil {
		return err
	}

	isModerator := helper.HasRole(c, constants.AdminAndAbove...)
	if m.ChatMessageSenderID != userID && !isModerator {
		return fiber.NewError(fiber.StatusForbidden, "Only the sender or a moderator may delete this message")
	}

	hard := c.Query("hard") == "true"
	if hard && !isModerator {
		return fiber.NewError(fiber.StatusForbidden, "Hard deletion requires moderator access")
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if hard {
			if err := tx.Where("message_reaction_message_id = ?", m.ChatMessageID).
				Delete(&chatModel.MessageReactionModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("chat_message_read_message_id = ?", m.ChatMessageID).
				Delete(&chatModel.ChatMessageReadModel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&m).Error; err != nil {
				return err
			}
		} else {
			if !chatService.ApplySoftDelete(&m, userID, time.Now()) {
				return fiber.NewError(fiber.StatusNotFound, "Message not found")
			}
			if err := tx.Save(&m).Error; err != nil {
				return err
			}
		}
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventMessageDeleted,
			chatService.MessageDeletedPayload{
				MessageID:    m.ChatMessageID,
				DeletedBy:    userID,
				IsHardDelete: hard,
			})
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete message")
	}

	return helper.JsonDeleted(c, "Message deleted", fiber.Map{
		"chat_message_id": m.ChatMessageID,
		"is_hard_delete":  hard,
	})
}

// POST /chat/messages/:id/reactions
// Idempotent: re-adding the same (message, user, type) triple is a no-op.
func (h *ChatController) AddReaction(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req chatDTO.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.loadMessage(c, institutionID)
	if err != nil {
		return err
	}
	if m.ChatMessageIsDeleted {
		return fiber.NewError(fiber.StatusNotFound, "Message not found")
	}

	var counts map[string]int
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&chatModel.MessageReactionModel{
				MessageReactionMessageID: m.ChatMessageID,
				MessageReactionUserID:    userID,
				MessageReactionType:      req.Type,
			})
		if res.Error != nil {
			return res.Error
		}

		var err error
		counts, err = h.reactionCounts(tx, m.ChatMessageID)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventReactionAdded,
			chatService.ReactionEventPayload{
				MessageID: m.ChatMessageID,
				UserID:    userID,
				Type:      req.Type,
				Counts:    counts,
			})
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add reaction")
	}

	return helper.JsonOK(c, "Reaction added", fiber.Map{
		"chat_message_id": m.ChatMessageID,
		"reaction_counts": counts,
	})
}

// DELETE /chat/messages/:id/reactions/:type
func (h *ChatController) RemoveReaction(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	m, err := h.loadMessage(c, institutionID)
	if err != nil {
		return err
	}
	typ := strings.ToLower(strings.TrimSpace(c.Params("type")))
	if typ == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Reaction type is required")
	}

	var counts map[string]int
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(
			"message_reaction_message_id = ? AND message_reaction_user_id = ? AND message_reaction_type = ?",
			m.ChatMessageID, userID, typ,
		).Delete(&chatModel.MessageReactionModel{})
		if res.Error != nil {
			return res.Error
		}

		var err error
		counts, err = h.reactionCounts(tx, m.ChatMessageID)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			// absent triple: no-op
			return nil
		}
		return h.Emitter.Emit(c.Context(), tx, institutionID, chatService.EventReactionRemoved,
			chatService.ReactionEventPayload{
				MessageID: m.ChatMessageID,
				UserID:    userID,
				Type:      typ,
				Counts:    counts,
			})
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove reaction")
	}

	return helper.JsonOK(c, "Reaction removed", fiber.Map{
		"chat_message_id": m.ChatMessageID,
		"reaction_counts": counts,
	})
}

// GET /chat/messages/:id/history — chronological edit audit trail.
func (h *ChatController) GetMessageEditHistory(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	m, err := h.loadMessage(c, institutionID)
	if err != nil {
		return err
	}
	if ok, err := h.canView(userID, m); err != nil {
		return err
	} else if !ok {
		return fiber.NewError(fiber.StatusForbidden, "Not a participant of this conversation")
	}

	var rows []chatModel.MessageEditHistoryModel
	if err := h.DB.Where("message_edit_history_message_id = ?", m.ChatMessageID).
		Order("message_edit_history_edited_at ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load edit history")
	}

	out := make([]chatDTO.EditHistoryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, chatDTO.FromEditHistoryModel(row))
	}
	return helper.JsonOK(c, "Edit history loaded", out)
}

/* =========================
   Shared lookups
   ========================= */

func (h *ChatController) loadMessage(c *fiber.Ctx, institutionID uuid.UUID) (chatModel.ChatMessageModel, error) {
	var m chatModel.ChatMessageModel
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return m, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	if err := h.DB.Where("chat_message_id = ? AND chat_message_institution_id = ?", id, institutionID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m, fiber.NewError(fiber.StatusNotFound, "Message not found")
		}
		return m, fiber.NewError(fiber.StatusInternalServerError, "Failed to load message")
	}
	return m, nil
}

func (h *ChatController) requireMembership(groupID, userID uuid.UUID) error {
	var cnt int64
	if err := h.DB.Model(&chatModel.ChatGroupMemberModel{}).
		Where("chat_group_member_group_id = ? AND chat_group_member_user_id = ?", groupID, userID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check membership")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusForbidden, "Not a member of this group")
	}
	return nil
}

func (h *ChatController) canView(userID uuid.UUID, m chatModel.ChatMessageModel) (bool, error) {
	if m.ChatMessageSenderID == userID {
		return true, nil
	}
	if m.IsDirect() {
		return *m.ChatMessageRecipientID == userID, nil
	}
	if m.IsGroup() {
		var cnt int64
		if err := h.DB.Model(&chatModel.ChatGroupMemberModel{}).
			Where("chat_group_member_group_id = ? AND chat_group_member_user_id = ?", m.ChatMessageGroupID, userID).
			Count(&cnt).Error; err != nil {
			return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to check membership")
		}
		return cnt > 0, nil
	}
	return false, nil
}

func (h *ChatController) editCount(messageID uuid.UUID) (int, error) {
	var n int64
	err := h.DB.Model(&chatModel.MessageEditHistoryModel{}).
		Where("message_edit_history_message_id = ?", messageID).
		Count(&n).Error
	return int(n), err
}

func (h *ChatController) reactionCounts(tx *gorm.DB, messageID uuid.UUID) (map[string]int, error) {
	var reactions []chatModel.MessageReactionModel
	if err := tx.Where("message_reaction_message_id = ?", messageID).
		Find(&reactions).Error; err != nil {
		return nil, err
	}
	return chatService.ReactionCounts(reactions), nil
}

package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	chatDTO "unitrack_backend/internals/features/chat/dto"
	chatModel "unitrack_backend/internals/features/chat/model"
	chatService "unitrack_backend/internals/features/chat/service"
	helper "unitrack_backend/internals/helpers"
)

// GET /chat/conversations
// Materializes the conversation list from message rows: last non-deleted
// message, unread count, counterpart presence.
func (h *ChatController) GetConversations(c *fiber.Ctx) error {
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

	var msgs []chatModel.ChatMessageModel
	q := h.DB.Where("chat_message_institution_id = ?", institutionID)
	if len(groupIDs) > 0 {
		q = q.Where(
			"chat_message_sender_id = ? OR chat_message_recipient_id = ? OR chat_message_group_id IN ?",
			userID, userID, groupIDs,
		)
	} else {
		q = q.Where("chat_message_sender_id = ? OR chat_message_recipient_id = ?", userID, userID)
	}
	if err := q.Find(&msgs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load messages")
	}

	readByViewer, err := h.viewerReadSet(userID, msgs)
	if err != nil {
		return err
	}

	online, err := h.Presence.OnlineUsers(c.Context(), institutionID)
	if err != nil {
		// presence is advisory; the listing must still work
		online = map[uuid.UUID]bool{}
	}

	summaries := chatService.Summarize(userID, msgs, readByViewer,
		func(id uuid.UUID) bool { return online[id] })

	out := make([]chatDTO.ConversationResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, chatDTO.FromConversationSummary(s))
	}
	return helper.JsonOK(c, "Conversations loaded", out)
}

// GET /chat/messages?recipient_id=|group_id=&page=&per_page=&before=
// Reverse-chronological window; before restricts to strictly earlier
// messages so pages stay stable under concurrent inserts.
func (h *ChatController) GetMessages(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 50, 200)

	q, err := h.conversationQuery(c, institutionID, userID)
	if err != nil {
		return err
	}

	if v := strings.TrimSpace(c.Query("before")); v != "" {
		before, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid before cursor")
		}
		q = q.Where("chat_message_created_at < ?", before)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count messages")
	}

	var rows []chatModel.ChatMessageModel
	if err := q.Order("chat_message_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load messages")
	}

	out, err := h.renderMessages(rows)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Messages loaded", chatDTO.MessagePageResponse{
		Messages:   out,
		TotalCount: total,
		HasMore:    total > int64(paging.Page*paging.PerPage),
	})
}

// GET /chat/messages/search?q=&recipient_id=|group_id=
// Case-insensitive substring over non-deleted content, recency ordered.
func (h *ChatController) SearchMessages(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Search term is required")
	}
	paging := helper.ResolvePaging(c, 50, 200)

	var q *gorm.DB
	if c.Query("recipient_id") != "" || c.Query("group_id") != "" {
		q, err = h.conversationQuery(c, institutionID, userID)
		if err != nil {
			return err
		}
	} else {
		groupIDs, gerr := h.memberGroupIDs(userID)
		if gerr != nil {
			return gerr
		}
		q = h.DB.Model(&chatModel.ChatMessageModel{}).
			Where("chat_message_institution_id = ?", institutionID)
		if len(groupIDs) > 0 {
			q = q.Where(
				"chat_message_sender_id = ? OR chat_message_recipient_id = ? OR chat_message_group_id IN ?",
				userID, userID, groupIDs,
			)
		} else {
			q = q.Where("chat_message_sender_id = ? OR chat_message_recipient_id = ?", userID, userID)
		}
	}

	var rows []chatModel.ChatMessageModel
	if err := q.Where("chat_message_is_deleted = false").
		Where("chat_message_content ILIKE ?", "%"+term+"%").
		Order("chat_message_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Search failed")
	}

	out, err := h.renderMessages(rows)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Search results", out)
}

// POST /chat/typing
func (h *ChatController) Typing(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req chatDTO.TypingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if !req.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Exactly one of recipient or group must be set")
	}

	eventType := chatService.EventUserTyping
	if !req.Typing {
		eventType = chatService.EventUserStoppedTyping
	}
	if err := h.Emitter.Emit(c.Context(), h.DB, institutionID, eventType,
		chatService.TypingPayload{
			UserID:      userID,
			RecipientID: req.RecipientID,
			GroupID:     req.GroupID,
		}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to emit typing event")
	}
	return helper.JsonOK(c, "Typing state published", fiber.Map{"typing": req.Typing})
}

// POST /chat/connect
func (h *ChatController) Connect(c *fiber.Ctx) error {
	return h.presenceChange(c, true)
}

// POST /chat/disconnect
func (h *ChatController) Disconnect(c *fiber.Ctx) error {
	return h.presenceChange(c, false)
}

func (h *ChatController) presenceChange(c *fiber.Ctx, online bool) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	eventType := chatService.EventUserConnected
	if online {
		err = h.Presence.Connect(c.Context(), institutionID, userID)
	} else {
		err = h.Presence.Disconnect(c.Context(), institutionID, userID)
		eventType = chatService.EventUserDisconnected
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update presence")
	}

	if err := h.Emitter.Emit(c.Context(), h.DB, institutionID, eventType,
		chatService.PresencePayload{UserID: userID}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to emit presence event")
	}
	return helper.JsonOK(c, "Presence updated", fiber.Map{"online": online})
}

/* =========================
   Read-path plumbing
   ========================= */

// conversationQuery scopes a message query to one conversation selector
// and verifies the caller may see it.
func (h *ChatController) conversationQuery(c *fiber.Ctx, institutionID, userID uuid.UUID) (*gorm.DB, error) {
	recipientRaw := strings.TrimSpace(c.Query("recipient_id"))
	groupRaw := strings.TrimSpace(c.Query("group_id"))
	if (recipientRaw == "") == (groupRaw == "") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Exactly one of recipient_id or group_id must be set")
	}

	base := h.DB.Model(&chatModel.ChatMessageModel{}).
		Where("chat_message_institution_id = ?", institutionID)

	if recipientRaw != "" {
		counterpart, err := uuid.Parse(recipientRaw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid recipient_id")
		}
		return base.Where(
			"(chat_message_sender_id = ? AND chat_message_recipient_id = ?) OR (chat_message_sender_id = ? AND chat_message_recipient_id = ?)",
			userID, counterpart, counterpart, userID,
		), nil
	}

	groupID, err := uuid.Parse(groupRaw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid group_id")
	}
	if err := h.requireMembership(groupID, userID); err != nil {
		return nil, err
	}
	return base.Where("chat_message_group_id = ?", groupID), nil
}

func (h *ChatController) memberGroupIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := h.DB.Model(&chatModel.ChatGroupMemberModel{}).
		Where("chat_group_member_user_id = ?", userID).
		Pluck("chat_group_member_group_id", &ids).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load group memberships")
	}
	return ids, nil
}

func (h *ChatController) viewerReadSet(userID uuid.UUID, msgs []chatModel.ChatMessageModel) (map[uuid.UUID]bool, error) {
	groupMsgIDs := make([]uuid.UUID, 0, len(msgs))
	for _, m := range msgs {
		if m.IsGroup() {
			groupMsgIDs = append(groupMsgIDs, m.ChatMessageID)
		}
	}
	if len(groupMsgIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}

	var readIDs []uuid.UUID
	if err := h.DB.Model(&chatModel.ChatMessageReadModel{}).
		Where("chat_message_read_user_id = ? AND chat_message_read_message_id IN ?", userID, groupMsgIDs).
		Pluck("chat_message_read_message_id", &readIDs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load read state")
	}

	out := make(map[uuid.UUID]bool, len(readIDs))
	for _, id := range readIDs {
		out[id] = true
	}
	return out, nil
}

type countRow struct {
	ID uuid.UUID `gorm:"column:id"`
	N  int       `gorm:"column:n"`
}

// renderMessages decorates rows with derived edit, reply, and reaction
// counts in three grouped queries.
func (h *ChatController) renderMessages(rows []chatModel.ChatMessageModel) ([]chatDTO.ChatMessageResponse, error) {
	if len(rows) == 0 {
		return []chatDTO.ChatMessageResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ChatMessageID)
	}

	editCounts := map[uuid.UUID]int{}
	var edits []countRow
	if err := h.DB.Model(&chatModel.MessageEditHistoryModel{}).
		Select("message_edit_history_message_id AS id, COUNT(*) AS n").
		Where("message_edit_history_message_id IN ?", ids).
		Group("message_edit_history_message_id").
		Scan(&edits).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load edit counts")
	}
	for _, r := range edits {
		editCounts[r.ID] = r.N
	}

	replyCounts := map[uuid.UUID]int{}
	var replies []countRow
	if err := h.DB.Model(&chatModel.ChatMessageModel{}).
		Select("chat_message_parent_message_id AS id, COUNT(*) AS n").
		Where("chat_message_parent_message_id IN ? AND chat_message_is_deleted = false", ids).
		Group("chat_message_parent_message_id").
		Scan(&replies).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load reply counts")
	}
	for _, r := range replies {
		replyCounts[r.ID] = r.N
	}

	var reactions []chatModel.MessageReactionModel
	if err := h.DB.Where("message_reaction_message_id IN ?", ids).
		Find(&reactions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load reactions")
	}
	reactionsByMsg := map[uuid.UUID][]chatModel.MessageReactionModel{}
	for _, r := range reactions {
		reactionsByMsg[r.MessageReactionMessageID] = append(reactionsByMsg[r.MessageReactionMessageID], r)
	}

	out := make([]chatDTO.ChatMessageResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, chatDTO.FromChatMessageModel(
			m,
			editCounts[m.ChatMessageID],
			replyCounts[m.ChatMessageID],
			chatService.ReactionCounts(reactionsByMsg[m.ChatMessageID]),
		))
	}
	return out, nil
}

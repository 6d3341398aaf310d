package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	chatModel "unitrack_backend/internals/features/chat/model"
	chatService "unitrack_backend/internals/features/chat/service"
)

// TombstoneMarker replaces the visible content of soft-deleted messages.
const TombstoneMarker = "[message deleted]"

type SendMessageRequest struct {
	RecipientID     *uuid.UUID `json:"chat_message_recipient_id"`
	GroupID         *uuid.UUID `json:"chat_message_group_id"`
	ParentMessageID *uuid.UUID `json:"chat_message_parent_message_id"`
	Content         string     `json:"chat_message_content" validate:"required,min=1,max=4000"`
	AttachmentURL   *string    `json:"chat_message_attachment_url" validate:"omitempty,max=1000"`
}

func (r *SendMessageRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	if r.AttachmentURL != nil {
		u := strings.TrimSpace(*r.AttachmentURL)
		if u == "" {
			r.AttachmentURL = nil
		} else {
			r.AttachmentURL = &u
		}
	}
}

// Valid enforces the direct-or-group discriminator: exactly one target.
func (r *SendMessageRequest) Valid() bool {
	return (r.RecipientID != nil) != (r.GroupID != nil)
}

type MarkReadRequest struct {
	MessageIDs []uuid.UUID `json:"message_ids" validate:"required,min=1,max=200"`
}

type EditMessageRequest struct {
	Content string  `json:"chat_message_content" validate:"required,min=1,max=4000"`
	Reason  *string `json:"reason" validate:"omitempty,max=200"`
}

func (r *EditMessageRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}

type ReactionRequest struct {
	Type string `json:"message_reaction_type" validate:"required,min=1,max=20"`
}

func (r *ReactionRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
}

type TypingRequest struct {
	RecipientID *uuid.UUID `json:"recipient_id"`
	GroupID     *uuid.UUID `json:"group_id"`
	Typing      bool       `json:"typing"`
}

func (r *TypingRequest) Valid() bool {
	return (r.RecipientID != nil) != (r.GroupID != nil)
}

type CreateGroupRequest struct {
	Name      string      `json:"chat_group_name" validate:"required,min=1,max=120"`
	MemberIDs []uuid.UUID `json:"member_ids" validate:"required,min=1,max=500"`
}

func (r *CreateGroupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type AddGroupMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type ChatMessageResponse struct {
	ChatMessageID   uuid.UUID  `json:"chat_message_id"`
	SenderID        uuid.UUID  `json:"chat_message_sender_id"`
	RecipientID     *uuid.UUID `json:"chat_message_recipient_id,omitempty"`
	GroupID         *uuid.UUID `json:"chat_message_group_id,omitempty"`
	ParentMessageID *uuid.UUID `json:"chat_message_parent_message_id,omitempty"`

	Content       string  `json:"chat_message_content"`
	AttachmentURL *string `json:"chat_message_attachment_url,omitempty"`

	Status      chatModel.MessageStatus `json:"chat_message_status"`
	DeliveredAt *time.Time              `json:"chat_message_delivered_at,omitempty"`
	ReadAt      *time.Time              `json:"chat_message_read_at,omitempty"`

	IsDeleted bool       `json:"chat_message_is_deleted"`
	EditedAt  *time.Time `json:"chat_message_edited_at,omitempty"`

	EditCount      int            `json:"chat_message_edit_count"`
	ReplyCount     int            `json:"chat_message_reply_count"`
	ReactionCounts map[string]int `json:"chat_message_reaction_counts"`

	CreatedAt time.Time `json:"chat_message_created_at"`
}

// FromChatMessageModel renders a message for clients. Deleted messages are
// tombstoned: content is masked, OriginalContent stays server-side.
func FromChatMessageModel(m chatModel.ChatMessageModel, editCount, replyCount int, reactions map[string]int) ChatMessageResponse {
	content := m.ChatMessageContent
	if m.ChatMessageIsDeleted {
		content = TombstoneMarker
	}
	if reactions == nil {
		reactions = map[string]int{}
	}
	return ChatMessageResponse{
		ChatMessageID:   m.ChatMessageID,
		SenderID:        m.ChatMessageSenderID,
		RecipientID:     m.ChatMessageRecipientID,
		GroupID:         m.ChatMessageGroupID,
		ParentMessageID: m.ChatMessageParentMessageID,
		Content:         content,
		AttachmentURL:   m.ChatMessageAttachmentURL,
		Status:          m.ChatMessageStatus,
		DeliveredAt:     m.ChatMessageDeliveredAt,
		ReadAt:          m.ChatMessageReadAt,
		IsDeleted:       m.ChatMessageIsDeleted,
		EditedAt:        m.ChatMessageEditedAt,
		EditCount:       editCount,
		ReplyCount:      replyCount,
		ReactionCounts:  reactions,
		CreatedAt:       m.ChatMessageCreatedAt,
	}
}

type EditHistoryResponse struct {
	PreviousContent string    `json:"previous_content"`
	NewContent      string    `json:"new_content"`
	Reason          *string   `json:"reason,omitempty"`
	EditedBy        uuid.UUID `json:"edited_by"`
	EditedAt        time.Time `json:"edited_at"`
}

func FromEditHistoryModel(h chatModel.MessageEditHistoryModel) EditHistoryResponse {
	return EditHistoryResponse{
		PreviousContent: h.MessageEditHistoryPreviousContent,
		NewContent:      h.MessageEditHistoryNewContent,
		Reason:          h.MessageEditHistoryReason,
		EditedBy:        h.MessageEditHistoryEditedBy,
		EditedAt:        h.MessageEditHistoryEditedAt,
	}
}

type ConversationResponse struct {
	Type          chatService.ConversationType `json:"conversation_type"`
	CounterpartID uuid.UUID                    `json:"conversation_counterpart_id"`
	LastMessage   *ChatMessageResponse         `json:"conversation_last_message,omitempty"`
	UnreadCount   int                          `json:"conversation_unread_count"`
	Online        bool                         `json:"conversation_online"`
	LastActivity  time.Time                    `json:"conversation_last_activity"`
}

func FromConversationSummary(s chatService.ConversationSummary) ConversationResponse {
	out := ConversationResponse{
		Type:          s.Type,
		CounterpartID: s.CounterpartID,
		UnreadCount:   s.UnreadCount,
		Online:        s.Online,
		LastActivity:  s.LastActivity,
	}
	if s.LastMessage != nil {
		resp := FromChatMessageModel(*s.LastMessage, 0, 0, nil)
		out.LastMessage = &resp
	}
	return out
}

type MessagePageResponse struct {
	Messages   []ChatMessageResponse `json:"messages"`
	TotalCount int64                 `json:"total_count"`
	HasMore    bool                  `json:"has_more"`
}

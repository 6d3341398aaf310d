package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// Rank orders the lifecycle for monotonicity checks. Unknown statuses rank
// below sent so they never win a transition.
func (s MessageStatus) Rank() int {
	switch s {
	case MessageStatusSent:
		return 1
	case MessageStatusDelivered:
		return 2
	case MessageStatusRead:
		return 3
	}
	return 0
}

// ChatMessageModel targets exactly one of recipient (direct) or group.
// The scalar status only tracks direct conversations; group read state
// lives in chat_message_reads. Soft deletion keeps the row queryable as a
// tombstone, so it is a plain flag rather than a gorm soft-delete column.
// Hard deletion removes the row.
type ChatMessageModel struct {
	ChatMessageID            uuid.UUID `gorm:"column:chat_message_id;type:uuid;default:gen_random_uuid();primaryKey" json:"chat_message_id"`
	ChatMessageInstitutionID uuid.UUID `gorm:"column:chat_message_institution_id;type:uuid;not null;index" json:"chat_message_institution_id"`

	ChatMessageSenderID    uuid.UUID  `gorm:"column:chat_message_sender_id;type:uuid;not null;index" json:"chat_message_sender_id"`
	ChatMessageRecipientID *uuid.UUID `gorm:"column:chat_message_recipient_id;type:uuid;index" json:"chat_message_recipient_id,omitempty"`
	ChatMessageGroupID     *uuid.UUID `gorm:"column:chat_message_group_id;type:uuid;index" json:"chat_message_group_id,omitempty"`

	ChatMessageParentMessageID *uuid.UUID `gorm:"column:chat_message_parent_message_id;type:uuid;index" json:"chat_message_parent_message_id,omitempty"`

	ChatMessageContent         string  `gorm:"column:chat_message_content;type:text;not null" json:"chat_message_content"`
	ChatMessageOriginalContent *string `gorm:"column:chat_message_original_content;type:text" json:"chat_message_original_content,omitempty"`
	ChatMessageAttachmentURL   *string `gorm:"column:chat_message_attachment_url;type:text" json:"chat_message_attachment_url,omitempty"`

	ChatMessageStatus      MessageStatus `gorm:"column:chat_message_status;type:varchar(10);not null;default:sent" json:"chat_message_status"`
	ChatMessageDeliveredAt *time.Time    `gorm:"column:chat_message_delivered_at" json:"chat_message_delivered_at,omitempty"`
	ChatMessageReadAt      *time.Time    `gorm:"column:chat_message_read_at" json:"chat_message_read_at,omitempty"`

	ChatMessageEditedAt *time.Time `gorm:"column:chat_message_edited_at" json:"chat_message_edited_at,omitempty"`

	ChatMessageIsDeleted bool       `gorm:"column:chat_message_is_deleted;not null;default:false;index" json:"chat_message_is_deleted"`
	ChatMessageDeletedAt *time.Time `gorm:"column:chat_message_deleted_at" json:"chat_message_deleted_at,omitempty"`
	ChatMessageDeletedBy *uuid.UUID `gorm:"column:chat_message_deleted_by;type:uuid" json:"chat_message_deleted_by,omitempty"`

	ChatMessageCreatedAt time.Time `gorm:"column:chat_message_created_at;not null;autoCreateTime;index" json:"chat_message_created_at"`
	ChatMessageUpdatedAt time.Time `gorm:"column:chat_message_updated_at;not null;autoUpdateTime" json:"chat_message_updated_at"`
}

func (ChatMessageModel) TableName() string { return "chat_messages" }

func (m ChatMessageModel) IsDirect() bool { return m.ChatMessageRecipientID != nil }
func (m ChatMessageModel) IsGroup() bool  { return m.ChatMessageGroupID != nil }

// MessageReactionModel holds one reaction per (message, user, type).
type MessageReactionModel struct {
	MessageReactionID        uuid.UUID `gorm:"column:message_reaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"message_reaction_id"`
	MessageReactionMessageID uuid.UUID `gorm:"column:message_reaction_message_id;type:uuid;not null;uniqueIndex:uq_reaction_message_user_type" json:"message_reaction_message_id"`
	MessageReactionUserID    uuid.UUID `gorm:"column:message_reaction_user_id;type:uuid;not null;uniqueIndex:uq_reaction_message_user_type" json:"message_reaction_user_id"`
	MessageReactionType      string    `gorm:"column:message_reaction_type;type:varchar(20);not null;uniqueIndex:uq_reaction_message_user_type" json:"message_reaction_type"`

	MessageReactionCreatedAt time.Time `gorm:"column:message_reaction_created_at;not null;autoCreateTime" json:"message_reaction_created_at"`
}

func (MessageReactionModel) TableName() string { return "message_reactions" }

// MessageEditHistoryModel is the append-only edit audit log.
type MessageEditHistoryModel struct {
	MessageEditHistoryID        uuid.UUID `gorm:"column:message_edit_history_id;type:uuid;default:gen_random_uuid();primaryKey" json:"message_edit_history_id"`
	MessageEditHistoryMessageID uuid.UUID `gorm:"column:message_edit_history_message_id;type:uuid;not null;index" json:"message_edit_history_message_id"`

	MessageEditHistoryPreviousContent string  `gorm:"column:message_edit_history_previous_content;type:text;not null" json:"message_edit_history_previous_content"`
	MessageEditHistoryNewContent      string  `gorm:"column:message_edit_history_new_content;type:text;not null" json:"message_edit_history_new_content"`
	MessageEditHistoryReason          *string `gorm:"column:message_edit_history_reason;type:varchar(200)" json:"message_edit_history_reason,omitempty"`

	MessageEditHistoryEditedBy uuid.UUID `gorm:"column:message_edit_history_edited_by;type:uuid;not null" json:"message_edit_history_edited_by"`
	MessageEditHistoryEditedAt time.Time `gorm:"column:message_edit_history_edited_at;not null" json:"message_edit_history_edited_at"`
}

func (MessageEditHistoryModel) TableName() string { return "message_edit_histories" }

// ChatMessageReadModel records per-member reads for group messages.
type ChatMessageReadModel struct {
	ChatMessageReadID        uuid.UUID `gorm:"column:chat_message_read_id;type:uuid;default:gen_random_uuid();primaryKey" json:"chat_message_read_id"`
	ChatMessageReadMessageID uuid.UUID `gorm:"column:chat_message_read_message_id;type:uuid;not null;uniqueIndex:uq_message_read_user" json:"chat_message_read_message_id"`
	ChatMessageReadUserID    uuid.UUID `gorm:"column:chat_message_read_user_id;type:uuid;not null;uniqueIndex:uq_message_read_user" json:"chat_message_read_user_id"`
	ChatMessageReadAt        time.Time `gorm:"column:chat_message_read_at;not null" json:"chat_message_read_at"`
}

func (ChatMessageReadModel) TableName() string { return "chat_message_reads" }

package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	chatModel "unitrack_backend/internals/features/chat/model"
)

const (
	EventMessageSent       = "message_sent"
	EventMessageDelivered  = "message_delivered"
	EventMessageRead       = "message_read"
	EventMessageEdited     = "message_edited"
	EventMessageDeleted    = "message_deleted"
	EventReactionAdded     = "reaction_added"
	EventReactionRemoved   = "reaction_removed"
	EventUserTyping        = "user_typing"
	EventUserStoppedTyping = "user_stopped_typing"
	EventUserConnected     = "user_connected"
	EventUserDisconnected  = "user_disconnected"
)

// Event payload records. Plain data for the push transport; this service
// never opens a socket itself.

type MessageEventPayload struct {
	MessageID   uuid.UUID  `json:"message_id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	GroupID     *uuid.UUID `json:"group_id,omitempty"`
	Content     *string    `json:"content,omitempty"`
}

type MessageReadPayload struct {
	MessageIDs []uuid.UUID `json:"message_ids"`
	ReaderID   uuid.UUID   `json:"reader_id"`
}

type MessageDeletedPayload struct {
	MessageID    uuid.UUID `json:"message_id"`
	DeletedBy    uuid.UUID `json:"deleted_by"`
	IsHardDelete bool      `json:"is_hard_delete"`
}

type ReactionEventPayload struct {
	MessageID uuid.UUID      `json:"message_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Type      string         `json:"type"`
	Counts    map[string]int `json:"counts"`
}

type TypingPayload struct {
	UserID      uuid.UUID  `json:"user_id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	GroupID     *uuid.UUID `json:"group_id,omitempty"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// EventEmitter persists events to the outbox and publishes them on the
// institution's Redis channel. The outbox write shares the caller's
// transaction; the publish is best effort and never fails the mutation.
type EventEmitter struct {
	RDB *redis.Client
}

func EventChannel(institutionID uuid.UUID) string {
	return "chat:events:" + institutionID.String()
}

func (e *EventEmitter) Emit(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID, eventType string, payload any) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}

	row := chatModel.ChatEventModel{
		ChatEventInstitutionID: institutionID,
		ChatEventType:          eventType,
		ChatEventPayload:       datatypes.JSON(raw),
	}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}

	if e.RDB != nil {
		envelope, err := sonic.Marshal(map[string]any{
			"type":    eventType,
			"payload": json.RawMessage(raw),
		})
		if err == nil {
			if perr := e.RDB.Publish(ctx, EventChannel(institutionID), envelope).Err(); perr != nil {
				log.Printf("[CHAT] publish %s failed: %v", eventType, perr)
			}
		}
	}
	return nil
}

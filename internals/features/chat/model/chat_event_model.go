package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatEventModel is the outbox row behind the realtime channel. Rows are
// written in the same transaction as the mutation they describe so the
// event log never disagrees with message state.
type ChatEventModel struct {
	ChatEventID            uuid.UUID `gorm:"column:chat_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"chat_event_id"`
	ChatEventInstitutionID uuid.UUID `gorm:"column:chat_event_institution_id;type:uuid;not null;index" json:"chat_event_institution_id"`

	ChatEventType    string         `gorm:"column:chat_event_type;type:varchar(40);not null;index" json:"chat_event_type"`
	ChatEventPayload datatypes.JSON `gorm:"column:chat_event_payload;type:jsonb;not null" json:"chat_event_payload"`

	ChatEventCreatedAt time.Time `gorm:"column:chat_event_created_at;not null;autoCreateTime;index" json:"chat_event_created_at"`
}

func (ChatEventModel) TableName() string { return "chat_events" }

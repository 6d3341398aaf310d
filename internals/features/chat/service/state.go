package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	chatModel "unitrack_backend/internals/features/chat/model"
)

var (
	// ErrNotSender is returned when someone other than the original sender
	// tries to edit a message.
	ErrNotSender = errors.New("only the sender may edit this message")

	// ErrMessageDeleted is returned when a mutation targets a soft-deleted
	// message.
	ErrMessageDeleted = errors.New("message is deleted")

	// ErrEmptyContent rejects blank edits and sends.
	ErrEmptyContent = errors.New("message content must not be empty")
)

// ApplyStatus advances the message lifecycle. Transitions are monotonic:
// moving to an earlier or equal state is a no-op, never an error. The
// delivered and read timestamps are set exactly once, on the first
// transition into each state. Sent to Read directly is legal when delivery
// tracking was skipped; DeliveredAt stays nil in that case.
//
// Returns true when the row actually changed.
func ApplyStatus(m *chatModel.ChatMessageModel, target chatModel.MessageStatus, now time.Time) bool {
	if target.Rank() <= m.ChatMessageStatus.Rank() {
		return false
	}

	m.ChatMessageStatus = target
	switch target {
	case chatModel.MessageStatusDelivered:
		if m.ChatMessageDeliveredAt == nil {
			t := now
			m.ChatMessageDeliveredAt = &t
		}
	case chatModel.MessageStatusRead:
		if m.ChatMessageReadAt == nil {
			t := now
			m.ChatMessageReadAt = &t
		}
	}
	return true
}

// ApplyEdit mutates the message in place and returns the history row the
// caller must append. OriginalContent is captured on the first edit only,
// so it always holds the pristine text as sent.
func ApplyEdit(m *chatModel.ChatMessageModel, editorID uuid.UUID, newContent string, reason *string, now time.Time) (chatModel.MessageEditHistoryModel, error) {
	if m.ChatMessageIsDeleted {
		return chatModel.MessageEditHistoryModel{}, ErrMessageDeleted
	}
	if m.ChatMessageSenderID != editorID {
		return chatModel.MessageEditHistoryModel{}, ErrNotSender
	}
	newContent = strings.TrimSpace(newContent)
	if newContent == "" {
		return chatModel.MessageEditHistoryModel{}, ErrEmptyContent
	}

	row := chatModel.MessageEditHistoryModel{
		MessageEditHistoryMessageID:       m.ChatMessageID,
		MessageEditHistoryPreviousContent: m.ChatMessageContent,
		MessageEditHistoryNewContent:      newContent,
		MessageEditHistoryReason:          reason,
		MessageEditHistoryEditedBy:        editorID,
		MessageEditHistoryEditedAt:        now,
	}

	if m.ChatMessageOriginalContent == nil {
		original := m.ChatMessageContent
		m.ChatMessageOriginalContent = &original
	}
	m.ChatMessageContent = newContent
	t := now
	m.ChatMessageEditedAt = &t
	return row, nil
}

// ApplySoftDelete tombstones the message. Content moves into
// OriginalContent for the moderation audit trail if an edit has not
// already captured it. Deleting twice is a no-op.
func ApplySoftDelete(m *chatModel.ChatMessageModel, deleterID uuid.UUID, now time.Time) bool {
	if m.ChatMessageIsDeleted {
		return false
	}
	if m.ChatMessageOriginalContent == nil {
		original := m.ChatMessageContent
		m.ChatMessageOriginalContent = &original
	}
	m.ChatMessageIsDeleted = true
	t := now
	m.ChatMessageDeletedAt = &t
	id := deleterID
	m.ChatMessageDeletedBy = &id
	return true
}

// ReactionCounts groups a reaction set by type.
func ReactionCounts(reactions []chatModel.MessageReactionModel) map[string]int {
	out := make(map[string]int, len(reactions))
	for _, r := range reactions {
		out[r.MessageReactionType]++
	}
	return out
}

// HasReaction reports whether the (message, user, type) triple is already
// present, which makes AddReaction idempotent at the call site.
func HasReaction(reactions []chatModel.MessageReactionModel, messageID, userID uuid.UUID, typ string) bool {
	for _, r := range reactions {
		if r.MessageReactionMessageID == messageID &&
			r.MessageReactionUserID == userID &&
			r.MessageReactionType == typ {
			return true
		}
	}
	return false
}

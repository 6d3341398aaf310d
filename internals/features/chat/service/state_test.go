package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatModel "unitrack_backend/internals/features/chat/model"
)

func directMessage(sender, recipient uuid.UUID, content string) chatModel.ChatMessageModel {
	rid := recipient
	return chatModel.ChatMessageModel{
		ChatMessageID:          uuid.New(),
		ChatMessageSenderID:    sender,
		ChatMessageRecipientID: &rid,
		ChatMessageContent:     content,
		ChatMessageStatus:      chatModel.MessageStatusSent,
		ChatMessageCreatedAt:   time.Now(),
	}
}

func TestApplyStatusMonotonic(t *testing.T) {
	sender, recipient := uuid.New(), uuid.New()
	m := directMessage(sender, recipient, "hi")
	now := time.Now()

	assert.True(t, ApplyStatus(&m, chatModel.MessageStatusDelivered, now))
	require.NotNil(t, m.ChatMessageDeliveredAt)
	deliveredAt := *m.ChatMessageDeliveredAt

	assert.True(t, ApplyStatus(&m, chatModel.MessageStatusRead, now.Add(time.Minute)))
	require.NotNil(t, m.ChatMessageReadAt)
	readAt := *m.ChatMessageReadAt

	// going backwards is a no-op, not an error, and never clears timestamps
	assert.False(t, ApplyStatus(&m, chatModel.MessageStatusSent, now.Add(2*time.Minute)))
	assert.False(t, ApplyStatus(&m, chatModel.MessageStatusDelivered, now.Add(2*time.Minute)))
	assert.Equal(t, chatModel.MessageStatusRead, m.ChatMessageStatus)
	assert.Equal(t, deliveredAt, *m.ChatMessageDeliveredAt)
	assert.Equal(t, readAt, *m.ChatMessageReadAt)
}

func TestApplyStatusSentToReadSkipsDelivery(t *testing.T) {
	m := directMessage(uuid.New(), uuid.New(), "hi")

	assert.True(t, ApplyStatus(&m, chatModel.MessageStatusRead, time.Now()))
	assert.Equal(t, chatModel.MessageStatusRead, m.ChatMessageStatus)
	assert.Nil(t, m.ChatMessageDeliveredAt)
	assert.NotNil(t, m.ChatMessageReadAt)
}

func TestApplyStatusTimestampsSetOnce(t *testing.T) {
	m := directMessage(uuid.New(), uuid.New(), "hi")
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	ApplyStatus(&m, chatModel.MessageStatusDelivered, first)
	ApplyStatus(&m, chatModel.MessageStatusDelivered, first.Add(time.Hour))
	assert.Equal(t, first, *m.ChatMessageDeliveredAt)
}

func TestApplyEditHistoryAndOriginalContent(t *testing.T) {
	sender := uuid.New()
	m := directMessage(sender, uuid.New(), "helo wrld")

	reason1, reason2 := "typo", "clarify"
	h1, err := ApplyEdit(&m, sender, "hello world", &reason1, time.Now())
	require.NoError(t, err)
	h2, err := ApplyEdit(&m, sender, "hello world, everyone", &reason2, time.Now())
	require.NoError(t, err)

	// original content is the text as of the first edit's prior state
	require.NotNil(t, m.ChatMessageOriginalContent)
	assert.Equal(t, "helo wrld", *m.ChatMessageOriginalContent)
	assert.Equal(t, "hello world, everyone", m.ChatMessageContent)
	assert.NotNil(t, m.ChatMessageEditedAt)

	assert.Equal(t, "helo wrld", h1.MessageEditHistoryPreviousContent)
	assert.Equal(t, "hello world", h1.MessageEditHistoryNewContent)
	assert.Equal(t, "hello world", h2.MessageEditHistoryPreviousContent)
	assert.Equal(t, "hello world, everyone", h2.MessageEditHistoryNewContent)
}

func TestApplyEditRejections(t *testing.T) {
	sender, stranger := uuid.New(), uuid.New()

	t.Run("non-sender is forbidden", func(t *testing.T) {
		m := directMessage(sender, uuid.New(), "hi")
		_, err := ApplyEdit(&m, stranger, "hijacked", nil, time.Now())
		assert.ErrorIs(t, err, ErrNotSender)
		assert.Equal(t, "hi", m.ChatMessageContent)
	})

	t.Run("deleted message is not editable", func(t *testing.T) {
		m := directMessage(sender, uuid.New(), "hi")
		ApplySoftDelete(&m, sender, time.Now())
		_, err := ApplyEdit(&m, sender, "too late", nil, time.Now())
		assert.ErrorIs(t, err, ErrMessageDeleted)
	})

	t.Run("blank content", func(t *testing.T) {
		m := directMessage(sender, uuid.New(), "hi")
		_, err := ApplyEdit(&m, sender, "   ", nil, time.Now())
		assert.ErrorIs(t, err, ErrEmptyContent)
	})
}

func TestApplySoftDelete(t *testing.T) {
	sender := uuid.New()
	m := directMessage(sender, uuid.New(), "remove me")

	assert.True(t, ApplySoftDelete(&m, sender, time.Now()))
	assert.True(t, m.ChatMessageIsDeleted)
	require.NotNil(t, m.ChatMessageOriginalContent)
	assert.Equal(t, "remove me", *m.ChatMessageOriginalContent)
	assert.Equal(t, sender, *m.ChatMessageDeletedBy)

	// second delete is a no-op
	assert.False(t, ApplySoftDelete(&m, sender, time.Now()))
}

func TestSoftDeleteKeepsFirstEditOriginal(t *testing.T) {
	sender := uuid.New()
	m := directMessage(sender, uuid.New(), "v1")
	_, err := ApplyEdit(&m, sender, "v2", nil, time.Now())
	require.NoError(t, err)

	ApplySoftDelete(&m, sender, time.Now())
	assert.Equal(t, "v1", *m.ChatMessageOriginalContent)
}

func TestReactionCountsAndIdempotence(t *testing.T) {
	msgID, user := uuid.New(), uuid.New()
	set := []chatModel.MessageReactionModel{
		{MessageReactionMessageID: msgID, MessageReactionUserID: user, MessageReactionType: "like"},
		{MessageReactionMessageID: msgID, MessageReactionUserID: user, MessageReactionType: "heart"},
	}

	// same user, two distinct types coexist
	counts := ReactionCounts(set)
	assert.Equal(t, map[string]int{"like": 1, "heart": 1}, counts)

	// re-adding the same triple is detected, leaving the set unchanged
	assert.True(t, HasReaction(set, msgID, user, "like"))
	assert.False(t, HasReaction(set, msgID, user, "laugh"))
	assert.False(t, HasReaction(set, uuid.New(), user, "like"))
}

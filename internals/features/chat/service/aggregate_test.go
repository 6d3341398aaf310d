package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatModel "unitrack_backend/internals/features/chat/model"
)

func TestSummarizeDirectUnreadCounts(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	m := directMessage(x, y, "hello")

	// before Y reads: Y sees 1 unread, X sees 0
	forY := Summarize(y, []chatModel.ChatMessageModel{m}, nil, nil)
	require.Len(t, forY, 1)
	assert.Equal(t, ConversationDirect, forY[0].Type)
	assert.Equal(t, x, forY[0].CounterpartID)
	assert.Equal(t, 1, forY[0].UnreadCount)

	forX := Summarize(x, []chatModel.ChatMessageModel{m}, nil, nil)
	require.Len(t, forX, 1)
	assert.Equal(t, y, forX[0].CounterpartID)
	assert.Equal(t, 0, forX[0].UnreadCount)

	// Y acknowledges delivery then reads
	ApplyStatus(&m, chatModel.MessageStatusDelivered, time.Now())
	ApplyStatus(&m, chatModel.MessageStatusRead, time.Now())

	forY = Summarize(y, []chatModel.ChatMessageModel{m}, nil, nil)
	assert.Equal(t, 0, forY[0].UnreadCount)
	forX = Summarize(x, []chatModel.ChatMessageModel{m}, nil, nil)
	assert.Equal(t, 0, forX[0].UnreadCount)
}

func TestSummarizeSkipsDeletedForLastMessage(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	older := directMessage(x, y, "first")
	older.ChatMessageCreatedAt = time.Now().Add(-time.Hour)
	newer := directMessage(x, y, "second")
	ApplySoftDelete(&newer, x, time.Now())

	out := Summarize(y, []chatModel.ChatMessageModel{older, newer}, nil, nil)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].LastMessage)
	assert.Equal(t, "first", out[0].LastMessage.ChatMessageContent)
	// activity still reflects the deleted newest row
	assert.Equal(t, newer.ChatMessageCreatedAt, out[0].LastActivity)
	// tombstoned messages never count as unread
	assert.Equal(t, 1, out[0].UnreadCount)
}

func TestSummarizeGroupUnreadUsesReadRows(t *testing.T) {
	groupID := uuid.New()
	sender, viewer := uuid.New(), uuid.New()

	gm := func(content string, at time.Time) chatModel.ChatMessageModel {
		gid := groupID
		return chatModel.ChatMessageModel{
			ChatMessageID:        uuid.New(),
			ChatMessageSenderID:  sender,
			ChatMessageGroupID:   &gid,
			ChatMessageContent:   content,
			ChatMessageStatus:    chatModel.MessageStatusSent,
			ChatMessageCreatedAt: at,
		}
	}
	m1 := gm("one", time.Now().Add(-2*time.Minute))
	m2 := gm("two", time.Now().Add(-time.Minute))

	out := Summarize(viewer, []chatModel.ChatMessageModel{m1, m2},
		map[uuid.UUID]bool{m1.ChatMessageID: true}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, ConversationGroup, out[0].Type)
	assert.Equal(t, groupID, out[0].CounterpartID)
	assert.Equal(t, 1, out[0].UnreadCount)

	// the sender's own view never counts their messages as unread
	outSender := Summarize(sender, []chatModel.ChatMessageModel{m1, m2}, nil, nil)
	assert.Equal(t, 0, outSender[0].UnreadCount)
}

func TestSummarizeOrderingAndPresence(t *testing.T) {
	viewer := uuid.New()
	a, b := uuid.New(), uuid.New()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	mA := directMessage(a, viewer, "from a")
	mA.ChatMessageCreatedAt = base.Add(time.Minute)
	mB := directMessage(b, viewer, "from b")
	mB.ChatMessageCreatedAt = base

	out := Summarize(viewer, []chatModel.ChatMessageModel{mB, mA}, nil,
		func(id uuid.UUID) bool { return id == a })
	require.Len(t, out, 2)
	assert.Equal(t, a, out[0].CounterpartID)
	assert.Equal(t, b, out[1].CounterpartID)
	assert.True(t, out[0].Online)
	assert.False(t, out[1].Online)
}

func TestSummarizeTieBreaksByCounterpartID(t *testing.T) {
	viewer := uuid.New()
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	mA := directMessage(a, viewer, "a")
	mA.ChatMessageCreatedAt = at
	mB := directMessage(b, viewer, "b")
	mB.ChatMessageCreatedAt = at

	out := Summarize(viewer, []chatModel.ChatMessageModel{mB, mA}, nil, nil)
	require.Len(t, out, 2)
	assert.Equal(t, a, out[0].CounterpartID)
	assert.Equal(t, b, out[1].CounterpartID)
}

func TestReplyCounts(t *testing.T) {
	parent := directMessage(uuid.New(), uuid.New(), "root")
	pid := parent.ChatMessageID

	reply := func() chatModel.ChatMessageModel {
		r := directMessage(uuid.New(), uuid.New(), "re")
		r.ChatMessageParentMessageID = &pid
		return r
	}
	r1, r2, r3 := reply(), reply(), reply()
	ApplySoftDelete(&r3, r3.ChatMessageSenderID, time.Now())

	counts := ReplyCounts([]chatModel.ChatMessageModel{parent, r1, r2, r3})
	assert.Equal(t, 2, counts[pid])
	assert.Zero(t, counts[r1.ChatMessageID])
}

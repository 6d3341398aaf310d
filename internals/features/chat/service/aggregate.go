package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	chatModel "unitrack_backend/internals/features/chat/model"
)

type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	ConversationGroup  ConversationType = "group"
)

// ConversationKey identifies one conversation from the viewer's side:
// the other user for direct chats, the group for group chats.
type ConversationKey struct {
	Type          ConversationType
	CounterpartID uuid.UUID
}

type ConversationSummary struct {
	Type          ConversationType           `json:"conversation_type"`
	CounterpartID uuid.UUID                  `json:"conversation_counterpart_id"`
	LastMessage   *chatModel.ChatMessageModel `json:"conversation_last_message"`
	UnreadCount   int                        `json:"conversation_unread_count"`
	Online        bool                       `json:"conversation_online"`
	LastActivity  time.Time                  `json:"conversation_last_activity"`
}

// Summarize materializes conversation views from raw message rows.
//
// For every conversation the viewer participates in it picks the most
// recent non-deleted message, counts unread messages addressed to the
// viewer, and asks the presence callback whether the counterpart is
// online. Group read state comes from readByViewer (message id set);
// direct read state from the scalar status. Output is ordered by
// LastActivity descending with the counterpart id breaking ties, so the
// listing is deterministic.
func Summarize(
	viewerID uuid.UUID,
	messages []chatModel.ChatMessageModel,
	readByViewer map[uuid.UUID]bool,
	online func(uuid.UUID) bool,
) []ConversationSummary {
	buckets := make(map[ConversationKey][]chatModel.ChatMessageModel)
	for _, m := range messages {
		key, ok := keyFor(viewerID, m)
		if !ok {
			continue
		}
		buckets[key] = append(buckets[key], m)
	}

	out := make([]ConversationSummary, 0, len(buckets))
	for key, msgs := range buckets {
		sort.Slice(msgs, func(i, j int) bool {
			return msgs[i].ChatMessageCreatedAt.After(msgs[j].ChatMessageCreatedAt)
		})

		summary := ConversationSummary{
			Type:          key.Type,
			CounterpartID: key.CounterpartID,
		}
		for i := range msgs {
			if !msgs[i].ChatMessageIsDeleted {
				last := msgs[i]
				summary.LastMessage = &last
				break
			}
		}
		// activity counts tombstones too, otherwise a deleted latest
		// message would reorder the listing
		summary.LastActivity = msgs[0].ChatMessageCreatedAt
		summary.UnreadCount = unreadCount(viewerID, key.Type, msgs, readByViewer)
		if online != nil {
			summary.Online = online(key.CounterpartID)
		}
		out = append(out, summary)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastActivity.Equal(out[j].LastActivity) {
			return out[i].LastActivity.After(out[j].LastActivity)
		}
		return strings.Compare(out[i].CounterpartID.String(), out[j].CounterpartID.String()) < 0
	})
	return out
}

func keyFor(viewerID uuid.UUID, m chatModel.ChatMessageModel) (ConversationKey, bool) {
	if m.IsGroup() {
		return ConversationKey{Type: ConversationGroup, CounterpartID: *m.ChatMessageGroupID}, true
	}
	if !m.IsDirect() {
		return ConversationKey{}, false
	}
	switch viewerID {
	case m.ChatMessageSenderID:
		return ConversationKey{Type: ConversationDirect, CounterpartID: *m.ChatMessageRecipientID}, true
	case *m.ChatMessageRecipientID:
		return ConversationKey{Type: ConversationDirect, CounterpartID: m.ChatMessageSenderID}, true
	}
	return ConversationKey{}, false
}

func unreadCount(viewerID uuid.UUID, typ ConversationType, msgs []chatModel.ChatMessageModel, readByViewer map[uuid.UUID]bool) int {
	n := 0
	for _, m := range msgs {
		if m.ChatMessageIsDeleted || m.ChatMessageSenderID == viewerID {
			continue
		}
		switch typ {
		case ConversationDirect:
			if m.ChatMessageRecipientID != nil && *m.ChatMessageRecipientID == viewerID &&
				m.ChatMessageStatus != chatModel.MessageStatusRead {
				n++
			}
		case ConversationGroup:
			if !readByViewer[m.ChatMessageID] {
				n++
			}
		}
	}
	return n
}

// ReplyCounts flattens reply chains into a per-parent tally. Deeper
// nesting is allowed in the rows but only the direct parent link counts.
func ReplyCounts(messages []chatModel.ChatMessageModel) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, m := range messages {
		if m.ChatMessageParentMessageID != nil && !m.ChatMessageIsDeleted {
			out[*m.ChatMessageParentMessageID]++
		}
	}
	return out
}

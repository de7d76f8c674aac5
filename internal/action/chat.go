package action

import (
	"strings"

	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

// Open selects the active conversation. An empty id closes it.
type Open struct {
	ConversationID string `json:"conversationId"`
}

// Send posts a message as the current user.
type Send struct {
	ConversationID string `json:"conversationId" validate:"required" label:"Conversation"`
	Content        string `json:"content" validate:"required" label:"Message"`
}

func (m *Send) Normalize() { m.Content = strings.TrimSpace(m.Content) }

// MessageRef addresses a message within its conversation.
type MessageRef struct {
	ConversationID string `json:"conversationId" validate:"required" label:"Conversation"`
	MessageID      string `json:"messageId" validate:"required" label:"Message"`
}

// React toggles an emoji reaction by the current user.
type React struct {
	ConversationID string `json:"conversationId" validate:"required" label:"Conversation"`
	MessageID      string `json:"messageId" validate:"required" label:"Message"`
	Emoji          string `json:"emoji" validate:"required" label:"Emoji"`
}

// Presence reports a user going on- or offline.
type Presence struct {
	UserID   string `json:"userId" validate:"required" label:"User"`
	IsOnline bool   `json:"isOnline"`
}

func chatExecutors() []Executor {
	return []Executor{
		Handle("chat.open", func(s *store.Store, o *Open) *Result {
			if !s.OpenConversation(o.ConversationID) {
				// The selection still changes; there was just nothing to mark read.
				return &Result{Applied: true, EntityID: o.ConversationID, Message: "no messages to mark read"}
			}
			return applied(o.ConversationID)
		}),
		Handle("chat.send", func(s *store.Store, m *Send) *Result {
			return applied(s.SendMessage(m.ConversationID, m.Content))
		}),
		Handle("chat.read", func(s *store.Store, r *MessageRef) *Result {
			return outcome(s.MarkMessageRead(r.ConversationID, r.MessageID), "message", r.MessageID)
		}),
		Handle("chat.react", func(s *store.Store, r *React) *Result {
			id, ok := s.ToggleReaction(r.ConversationID, r.MessageID, r.Emoji)
			if !ok {
				return notFound("message", r.MessageID)
			}
			if id == "" {
				return &Result{Applied: true, EntityID: r.MessageID, Message: "reaction removed"}
			}
			return applied(id)
		}),
		Handle("chat.presence", func(s *store.Store, p *Presence) *Result {
			return outcome(s.SetPresence(p.UserID, p.IsOnline), "user", p.UserID)
		}),
	}
}

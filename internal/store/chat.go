package store

import (
	"slices"
	"time"
)

// Conversation kinds.
const (
	ConversationDirect = "direct"
	ConversationGroup  = "group"
)

// Participant is a chat member.
type Participant struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Avatar   string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	IsOnline bool       `json:"isOnline" yaml:"isOnline"`
	LastSeen *time.Time `json:"lastSeen,omitempty" yaml:"lastSeen,omitempty"`
	Role     string     `json:"role,omitempty" yaml:"role,omitempty"`
}

// Reaction is an emoji attached to a message by one user.
type Reaction struct {
	ID       string `json:"id" yaml:"id"`
	UserID   string `json:"userId" yaml:"userId"`
	UserName string `json:"userName" yaml:"userName"`
	Emoji    string `json:"emoji" yaml:"emoji"`
}

// Message is one chat message.
type Message struct {
	ID           string     `json:"id" yaml:"id"`
	SenderID     string     `json:"senderId" yaml:"senderId"`
	SenderName   string     `json:"senderName" yaml:"senderName"`
	SenderAvatar string     `json:"senderAvatar,omitempty" yaml:"senderAvatar,omitempty"`
	Content      string     `json:"content" yaml:"content"`
	Timestamp    time.Time  `json:"timestamp" yaml:"timestamp"`
	Type         string     `json:"type" yaml:"type"`
	IsRead       bool       `json:"isRead" yaml:"isRead"`
	Reactions    []Reaction `json:"reactions,omitempty" yaml:"reactions,omitempty"`
}

// Conversation is a direct or group thread.
type Conversation struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Type         string        `json:"type" yaml:"type"`
	Participants []Participant `json:"participants" yaml:"participants"`
	LastMessage  *Message      `json:"lastMessage,omitempty" yaml:"lastMessage,omitempty"`
	UnreadCount  int           `json:"unreadCount" yaml:"unreadCount"`
	Avatar       string        `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	IsOnline     bool          `json:"isOnline" yaml:"isOnline"`
}

type chatState struct {
	currentUser   Participant
	conversations []Conversation
	messages      map[string][]Message
	active        string
}

func (p Participant) clone() Participant {
	if p.LastSeen != nil {
		t := *p.LastSeen
		p.LastSeen = &t
	}
	return p
}

func (m Message) clone() Message {
	m.Reactions = slices.Clone(m.Reactions)
	return m
}

func (c Conversation) clone() Conversation {
	c.Participants = cloneAll(c.Participants, Participant.clone)
	if c.LastMessage != nil {
		m := c.LastMessage.clone()
		c.LastMessage = &m
	}
	return c
}

// CurrentUser returns the participant acting as "you".
func (s *Store) CurrentUser() Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chat.currentUser.clone()
}

// Conversations returns every conversation.
func (s *Store) Conversations() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.chat.conversations, Conversation.clone)
}

// ActiveConversation returns the id of the open conversation, or "".
func (s *Store) ActiveConversation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chat.active
}

// Messages returns the messages of conversation id in send order.
func (s *Store) Messages(conversationID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.chat.messages[conversationID], Message.clone)
}

func (s *Store) conversation(id string) *Conversation {
	i := indexOf(s.chat.conversations, func(c Conversation) bool { return c.ID == id })
	if i < 0 {
		return nil
	}
	return &s.chat.conversations[i]
}

func (s *Store) message(conversationID, messageID string) *Message {
	msgs := s.chat.messages[conversationID]
	i := indexOf(msgs, func(m Message) bool { return m.ID == messageID })
	if i < 0 {
		return nil
	}
	return &msgs[i]
}

// OpenConversation makes id the active conversation, marks every message
// from other senders as read and resets its unread count. An empty id
// closes the active conversation.
func (s *Store) OpenConversation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat.active = id
	msgs, ok := s.chat.messages[id]
	if id == "" || !ok {
		return false
	}
	for i := range msgs {
		if msgs[i].SenderID != s.chat.currentUser.ID {
			msgs[i].IsRead = true
		}
	}
	if c := s.conversation(id); c != nil {
		c.UnreadCount = 0
		s.refreshLastMessage(c)
	}
	return true
}

// SendMessage appends a text message from the current user to conversation
// conversationID and returns its id. The message list is created on demand.
func (s *Store) SendMessage(conversationID, content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.chat.currentUser
	m := Message{
		ID:           s.nextID(PrefixMessage),
		SenderID:     u.ID,
		SenderName:   u.Name,
		SenderAvatar: u.Avatar,
		Content:      content,
		Timestamp:    s.Now(),
		Type:         "text",
		IsRead:       true,
	}
	s.chat.messages[conversationID] = append(s.chat.messages[conversationID], m)
	if c := s.conversation(conversationID); c != nil {
		last := m.clone()
		c.LastMessage = &last
	}
	return m.ID
}

// MarkMessageRead marks one message as read.
func (s *Store) MarkMessageRead(conversationID, messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.message(conversationID, messageID)
	if m == nil {
		return false
	}
	m.IsRead = true
	if c := s.conversation(conversationID); c != nil {
		s.refreshLastMessage(c)
	}
	return true
}

// ToggleReaction adds emoji from the current user to a message, or removes it
// if the current user already reacted with the same emoji. It returns the
// reaction id when one was added.
func (s *Store) ToggleReaction(conversationID, messageID, emoji string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.message(conversationID, messageID)
	if m == nil {
		return "", false
	}
	u := s.chat.currentUser
	mine := func(r Reaction) bool { return r.UserID == u.ID && r.Emoji == emoji }

	var id string
	if slices.ContainsFunc(m.Reactions, mine) {
		m.Reactions, _ = removeWhere(m.Reactions, mine)
	} else {
		id = s.nextID(PrefixReaction)
		m.Reactions = append(m.Reactions, Reaction{ID: id, UserID: u.ID, UserName: u.Name, Emoji: emoji})
	}
	if c := s.conversation(conversationID); c != nil {
		s.refreshLastMessage(c)
	}
	return id, true
}

// SetPresence updates userID's online flag in every conversation they take
// part in. Going offline records lastSeen. Direct conversations mirror the
// flag.
func (s *Store) SetPresence(userID string, online bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	found := false
	for ci := range s.chat.conversations {
		c := &s.chat.conversations[ci]
		pi := indexOf(c.Participants, func(p Participant) bool { return p.ID == userID })
		if pi < 0 {
			continue
		}
		found = true
		p := &c.Participants[pi]
		p.IsOnline = online
		if !online {
			seen := now
			p.LastSeen = &seen
		}
		if c.Type == ConversationDirect {
			c.IsOnline = online
		}
	}
	if s.chat.currentUser.ID == userID {
		s.chat.currentUser.IsOnline = online
		found = true
	}
	return found
}

// refreshLastMessage keeps the conversation's lastMessage copy in step with
// the stored message it mirrors.
func (s *Store) refreshLastMessage(c *Conversation) {
	if c.LastMessage == nil {
		return
	}
	if m := s.message(c.ID, c.LastMessage.ID); m != nil {
		last := m.clone()
		c.LastMessage = &last
	}
}

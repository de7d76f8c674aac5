// Package store holds the dashboard's in-memory entity collections.
//
// A Store is constructed explicitly and passed to whoever needs it; there is
// no package-level instance. Reads return deep copies, so callers may keep or
// modify what they get back without affecting the store. Writes are expected
// to arrive one at a time through the dispatch engine, but every method is
// safe for concurrent use on its own.
package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ID prefixes used for generated identifiers. Records, tasks, emails,
// dynamic forms and submissions carry no prefix.
const (
	PrefixCard     = "card-"
	PrefixMessage  = "msg-"
	PrefixTeam     = "team-"
	PrefixJob      = "job-"
	PrefixFormNode = "form-"
	PrefixReaction = "reaction-"
)

// Store is the root container for every collection.
type Store struct {
	mu     sync.RWMutex
	clock  func() time.Time
	lastID int64

	records  []Employee
	tasks    []Task
	columns  []KanbanColumn
	forms    []DynamicForm
	emails   []Email
	chat     chatState
	teams    []TeamNode
	jobs     []JobNode
	formTree []FormNode
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.clock = now }
}

// Seed is the initial content of a Store.
type Seed struct {
	Records []Employee     `yaml:"records" json:"records"`
	Tasks   []Task         `yaml:"tasks" json:"tasks"`
	Kanban  []KanbanColumn `yaml:"kanban" json:"kanban"`
	Forms   []DynamicForm  `yaml:"forms" json:"forms"`
	Emails  []Email        `yaml:"emails" json:"emails"`
	Chat    ChatSeed       `yaml:"chat" json:"chat"`
	Org     OrgSeed        `yaml:"org" json:"org"`
}

// ChatSeed is the initial chat state.
type ChatSeed struct {
	CurrentUser   Participant          `yaml:"currentUser" json:"currentUser"`
	Conversations []Conversation       `yaml:"conversations" json:"conversations"`
	Messages      map[string][]Message `yaml:"messages" json:"messages"`
}

// OrgSeed holds the three org hierarchies.
type OrgSeed struct {
	Teams []TeamNode `yaml:"teams" json:"teams"`
	Jobs  []JobNode  `yaml:"jobs" json:"jobs"`
	Forms []FormNode `yaml:"forms" json:"forms"`
}

// New builds a Store populated with a deep copy of seed.
func New(seed Seed, opts ...Option) *Store {
	s := &Store{clock: time.Now}
	for _, o := range opts {
		o(s)
	}

	s.records = cloneAll(seed.Records, Employee.clone)
	s.tasks = cloneAll(seed.Tasks, Task.clone)
	s.columns = cloneAll(seed.Kanban, KanbanColumn.clone)
	s.forms = cloneAll(seed.Forms, DynamicForm.clone)
	s.emails = cloneAll(seed.Emails, Email.clone)
	s.teams = cloneAll(seed.Org.Teams, TeamNode.clone)
	s.jobs = cloneAll(seed.Org.Jobs, JobNode.clone)
	s.formTree = cloneAll(seed.Org.Forms, FormNode.clone)

	s.chat = chatState{
		currentUser:   seed.Chat.CurrentUser.clone(),
		conversations: cloneAll(seed.Chat.Conversations, Conversation.clone),
		messages:      make(map[string][]Message, len(seed.Chat.Messages)),
	}
	for id, msgs := range seed.Chat.Messages {
		s.chat.messages[id] = cloneAll(msgs, Message.clone)
	}
	for i := range s.chat.conversations {
		c := &s.chat.conversations[i]
		if msgs := s.chat.messages[c.ID]; len(msgs) > 0 {
			last := msgs[len(msgs)-1].clone()
			c.LastMessage = &last
		}
	}
	return s
}

// Now returns the store clock's current time in UTC.
func (s *Store) Now() time.Time {
	return s.clock().UTC()
}

// nextID returns prefix + the current millisecond timestamp, bumped past
// the previous id so that rapid adds never collide. Callers hold s.mu.
func (s *Store) nextID(prefix string) string {
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return prefix + strconv.FormatInt(id, 10)
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return []T{}
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func indexOf[T any](in []T, match func(T) bool) int {
	for i, v := range in {
		if match(v) {
			return i
		}
	}
	return -1
}

func removeWhere[T any](in []T, match func(T) bool) ([]T, bool) {
	out := in[:0]
	removed := false
	for _, v := range in {
		if match(v) {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}

// mergePatch applies an RFC 7386 JSON merge patch to v.
func mergePatch[T any](v T, patch []byte) (T, error) {
	var out T
	doc, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("encode for patch: %w", err)
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return out, fmt.Errorf("apply merge patch: %w", err)
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, fmt.Errorf("decode patched value: %w", err)
	}
	return out, nil
}

package store

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Mail folders. Starred and Important are virtual views over the others.
const (
	FolderInbox     = "inbox"
	FolderSent      = "sent"
	FolderDrafts    = "drafts"
	FolderTrash     = "trash"
	FolderStarred   = "starred"
	FolderImportant = "important"
)

// Folders lists every folder a client can browse, in display order.
var Folders = []string{FolderInbox, FolderStarred, FolderImportant, FolderSent, FolderDrafts, FolderTrash}

// DefaultSender is used when an outgoing mail leaves From empty.
const DefaultSender = "me@company.com"

// Email is one message in the mail client.
type Email struct {
	ID          string    `json:"id" yaml:"id"`
	From        string    `json:"from" yaml:"from"`
	To          string    `json:"to" yaml:"to"`
	Subject     string    `json:"subject" yaml:"subject"`
	Body        string    `json:"body" yaml:"body"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	IsRead      bool      `json:"isRead" yaml:"isRead"`
	IsStarred   bool      `json:"isStarred" yaml:"isStarred"`
	IsImportant bool      `json:"isImportant" yaml:"isImportant"`
	Attachments []string  `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	Folder      string    `json:"folder" yaml:"folder"`
}

// Draft is an outgoing email as composed.
type Draft struct {
	From        string   `json:"from" validate:"omitempty,mailbox" label:"Sender email"`
	To          string   `json:"to" validate:"required,mailbox" label:"Recipient email"`
	Subject     string   `json:"subject" validate:"required" label:"Subject"`
	Body        string   `json:"body" validate:"richtext" label:"Email body"`
	IsImportant bool     `json:"isImportant"`
	Attachments []string `json:"attachments,omitempty"`
}

// Normalize trims the addresses and fills in the default sender.
func (d *Draft) Normalize() {
	d.From = strings.TrimSpace(d.From)
	d.To = strings.TrimSpace(d.To)
	if d.From == "" {
		d.From = DefaultSender
	}
}

// FolderCount summarizes one folder.
type FolderCount struct {
	Folder string `json:"folder"`
	Total  int    `json:"total"`
	Unread int    `json:"unread"`
}

func (e Email) clone() Email {
	e.Attachments = slices.Clone(e.Attachments)
	return e
}

// inFolder reports whether e shows up when browsing folder.
func (e Email) inFolder(folder string) bool {
	switch folder {
	case FolderStarred:
		return e.IsStarred && e.Folder != FolderTrash
	case FolderImportant:
		return e.IsImportant && e.Folder != FolderTrash
	default:
		return e.Folder == folder
	}
}

func (e Email) matches(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Subject), q) ||
		strings.Contains(strings.ToLower(e.From), q) ||
		strings.Contains(strings.ToLower(e.Body), q)
}

// IsFolder reports whether f names a browsable folder.
func IsFolder(f string) bool {
	return slices.Contains(Folders, f)
}

// Emails returns the emails in folder whose subject, sender or body contains
// query (case-insensitive), newest first. An empty folder lists everything.
func (s *Store) Emails(folder, query string) []Email {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Email{}
	for _, e := range s.emails {
		if (folder == "" || e.inFolder(folder)) && e.matches(q) {
			out = append(out, e.clone())
		}
	}
	slices.SortStableFunc(out, func(a, b Email) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// Email returns the email with id.
func (s *Store) Email(id string) (Email, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.emails, func(e Email) bool { return e.ID == id })
	if i < 0 {
		return Email{}, false
	}
	return s.emails[i].clone(), true
}

// FolderCounts returns total and unread counts for every folder.
func (s *Store) FolderCounts() []FolderCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FolderCount, len(Folders))
	for i, f := range Folders {
		out[i].Folder = f
		for _, e := range s.emails {
			if !e.inFolder(f) {
				continue
			}
			out[i].Total++
			if !e.IsRead {
				out[i].Unread++
			}
		}
	}
	return out
}

// SendEmail files d in the sent folder, timestamped now, and returns its id.
func (s *Store) SendEmail(d Draft) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := Email{
		ID:          s.nextID(""),
		From:        cmp.Or(d.From, DefaultSender),
		To:          d.To,
		Subject:     d.Subject,
		Body:        d.Body,
		Timestamp:   s.Now(),
		IsRead:      true,
		IsImportant: d.IsImportant,
		Attachments: slices.Clone(d.Attachments),
		Folder:      FolderSent,
	}
	s.emails = append(s.emails, e)
	return e.ID
}

func (s *Store) withEmail(id string, fn func(*Email)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.emails, func(e Email) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	fn(&s.emails[i])
	return true
}

// MarkEmailRead sets the read flag of email id.
func (s *Store) MarkEmailRead(id string, read bool) bool {
	return s.withEmail(id, func(e *Email) { e.IsRead = read })
}

// ToggleStar flips the starred flag of email id.
func (s *Store) ToggleStar(id string) bool {
	return s.withEmail(id, func(e *Email) { e.IsStarred = !e.IsStarred })
}

// ToggleImportant flips the important flag of email id.
func (s *Store) ToggleImportant(id string) bool {
	return s.withEmail(id, func(e *Email) { e.IsImportant = !e.IsImportant })
}

// DeleteEmail moves email id to the trash. Nothing is ever purged.
func (s *Store) DeleteEmail(id string) bool {
	return s.withEmail(id, func(e *Email) { e.Folder = FolderTrash })
}

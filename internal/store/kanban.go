package store

import (
	"fmt"
	"slices"
	"time"
)

// KanbanCard is a single card on the board.
type KanbanCard struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title" validate:"required" label:"Title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Assignee    string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Priority    string    `json:"priority" yaml:"priority" validate:"required,oneof=Low Medium High Critical" label:"Priority"`
	DueDate     string    `json:"dueDate,omitempty" yaml:"dueDate,omitempty" validate:"omitempty,isodate" label:"Due Date"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// KanbanColumn is an ordered list of cards.
type KanbanColumn struct {
	ID    string       `json:"id" yaml:"id" validate:"required" label:"Column ID"`
	Title string       `json:"title" yaml:"title" validate:"required" label:"Title"`
	Color string       `json:"color" yaml:"color"`
	Cards []KanbanCard `json:"cards" yaml:"cards"`
	Limit *int         `json:"limit,omitempty" yaml:"limit,omitempty" validate:"omitempty,gte=0" label:"Limit"`
}

// CardMove describes a drag of one card between (or within) columns.
type CardMove struct {
	CardID              string `json:"cardId"`
	SourceColumnID      string `json:"sourceColumnId" validate:"required" label:"Source column"`
	DestinationColumnID string `json:"destinationColumnId" validate:"required" label:"Destination column"`
	SourceIndex         int    `json:"sourceIndex" validate:"gte=0" label:"Source index"`
	DestinationIndex    int    `json:"destinationIndex" validate:"gte=0" label:"Destination index"`
}

func (c KanbanCard) clone() KanbanCard {
	if c.Tags == nil {
		c.Tags = []string{}
	} else {
		c.Tags = slices.Clone(c.Tags)
	}
	return c
}

func (c KanbanColumn) clone() KanbanColumn {
	c.Cards = cloneAll(c.Cards, KanbanCard.clone)
	if c.Limit != nil {
		l := *c.Limit
		c.Limit = &l
	}
	return c
}

// Columns returns the board in column order.
func (s *Store) Columns() []KanbanColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.columns, KanbanColumn.clone)
}

// Column returns the column with id.
func (s *Store) Column(id string) (KanbanColumn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if col := s.column(id); col != nil {
		return col.clone(), true
	}
	return KanbanColumn{}, false
}

// Card returns the card cardID from column columnID.
func (s *Store) Card(columnID, cardID string) (KanbanCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.column(columnID)
	if col == nil {
		return KanbanCard{}, false
	}
	i := indexOf(col.Cards, func(c KanbanCard) bool { return c.ID == cardID })
	if i < 0 {
		return KanbanCard{}, false
	}
	return col.Cards[i].clone(), true
}

func (s *Store) column(id string) *KanbanColumn {
	i := indexOf(s.columns, func(c KanbanColumn) bool { return c.ID == id })
	if i < 0 {
		return nil
	}
	return &s.columns[i]
}

// MoveCard removes the card at m.SourceIndex of the source column and inserts
// it at m.DestinationIndex of the destination column, clamped to the column
// length. When CardID is set and does not sit at SourceIndex, the card is
// looked up by id instead.
func (s *Store) MoveCard(m CardMove) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, dst := s.column(m.SourceColumnID), s.column(m.DestinationColumnID)
	if src == nil || dst == nil {
		return false
	}
	from := m.SourceIndex
	if m.CardID != "" && (from < 0 || from >= len(src.Cards) || src.Cards[from].ID != m.CardID) {
		from = indexOf(src.Cards, func(c KanbanCard) bool { return c.ID == m.CardID })
	}
	if from < 0 || from >= len(src.Cards) {
		return false
	}

	card := src.Cards[from]
	src.Cards = slices.Delete(src.Cards, from, from+1)
	card.UpdatedAt = s.Now()

	to := min(max(m.DestinationIndex, 0), len(dst.Cards))
	dst.Cards = slices.Insert(dst.Cards, to, card)
	return true
}

// AddCard appends c to column columnID, stamping its id and timestamps.
// It returns "" and false when the column does not exist.
func (s *Store) AddCard(columnID string, c KanbanCard) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.column(columnID)
	if col == nil {
		return "", false
	}
	c = c.clone()
	c.ID = s.nextID(PrefixCard)
	c.CreatedAt = s.Now()
	c.UpdatedAt = c.CreatedAt
	col.Cards = append(col.Cards, c)
	return c.ID, true
}

// PatchCard returns c with an RFC 7386 merge patch applied. The card id and
// creation time are kept.
func PatchCard(c KanbanCard, patch []byte) (KanbanCard, error) {
	out, err := mergePatch(c, patch)
	if err != nil {
		return KanbanCard{}, fmt.Errorf("card %s: %w", c.ID, err)
	}
	out.ID, out.CreatedAt = c.ID, c.CreatedAt
	return out, nil
}

// PatchColumn returns col with a merge patch applied. Cards and id are kept;
// card membership only changes through the card operations.
func PatchColumn(col KanbanColumn, patch []byte) (KanbanColumn, error) {
	out, err := mergePatch(col, patch)
	if err != nil {
		return KanbanColumn{}, fmt.Errorf("column %s: %w", col.ID, err)
	}
	out.ID, out.Cards = col.ID, col.Cards
	return out, nil
}

// UpdateCard replaces the card with c.ID in column columnID and bumps its
// updatedAt.
func (s *Store) UpdateCard(columnID string, c KanbanCard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.column(columnID)
	if col == nil {
		return false
	}
	i := indexOf(col.Cards, func(x KanbanCard) bool { return x.ID == c.ID })
	if i < 0 {
		return false
	}
	c = c.clone()
	c.UpdatedAt = s.Now()
	col.Cards[i] = c
	return true
}

// DeleteCard removes cardID from column columnID.
func (s *Store) DeleteCard(columnID, cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.column(columnID)
	if col == nil {
		return false
	}
	var ok bool
	col.Cards, ok = removeWhere(col.Cards, func(c KanbanCard) bool { return c.ID == cardID })
	return ok
}

// AddColumn appends an empty column. Column ids are chosen by the caller.
func (s *Store) AddColumn(col KanbanColumn) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	col = col.clone()
	col.Cards = []KanbanCard{}
	s.columns = append(s.columns, col)
	return col.ID
}

// UpdateColumn replaces the column metadata of col.ID, keeping its cards.
func (s *Store) UpdateColumn(col KanbanColumn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.column(col.ID)
	if cur == nil {
		return false
	}
	cards := cur.Cards
	*cur = col.clone()
	cur.Cards = cards
	return true
}

// DeleteColumn removes the column and every card on it.
func (s *Store) DeleteColumn(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.columns, ok = removeWhere(s.columns, func(c KanbanColumn) bool { return c.ID == id })
	return ok
}

package action

import (
	"encoding/json"

	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// NewCard places a card on a column.
type NewCard struct {
	ColumnID string           `json:"columnId" validate:"required" label:"Column"`
	Card     store.KanbanCard `json:"card"`
}

// CardRef addresses a card within its column.
type CardRef struct {
	ColumnID string `json:"columnId" validate:"required" label:"Column"`
	CardID   string `json:"cardId" validate:"required" label:"Card"`
}

// CardPatch is a partial card update in JSON merge patch form.
type CardPatch struct {
	ColumnID string          `json:"columnId" validate:"required" label:"Column"`
	CardID   string          `json:"cardId" validate:"required" label:"Card"`
	Updates  json.RawMessage `json:"updates" validate:"required" label:"Updates"`
}

// ColumnPatch is a partial column update in JSON merge patch form.
type ColumnPatch struct {
	ColumnID string          `json:"columnId" validate:"required" label:"Column"`
	Updates  json.RawMessage `json:"updates" validate:"required" label:"Updates"`
}

func patchFailed(err error) *Result {
	return &Result{Message: "validation failed", Errors: validation.Errors{"updates": err.Error()}}
}

func kanbanExecutors() []Executor {
	return []Executor{
		Handle("kanban.card.move", func(s *store.Store, m *store.CardMove) *Result {
			return outcome(s.MoveCard(*m), "card", m.CardID)
		}),
		Handle("kanban.card.add", func(s *store.Store, c *NewCard) *Result {
			id, ok := s.AddCard(c.ColumnID, c.Card)
			if !ok {
				return notFound("column", c.ColumnID)
			}
			return applied(id)
		}),
		Handle("kanban.card.update", func(s *store.Store, p *CardPatch) *Result {
			card, ok := s.Card(p.ColumnID, p.CardID)
			if !ok {
				return notFound("card", p.CardID)
			}
			card, err := store.PatchCard(card, p.Updates)
			if err != nil {
				return patchFailed(err)
			}
			if errs := validation.Struct(&card); errs != nil {
				return &Result{Message: "validation failed", Errors: errs}
			}
			return outcome(s.UpdateCard(p.ColumnID, card), "card", p.CardID)
		}),
		Handle("kanban.card.delete", func(s *store.Store, r *CardRef) *Result {
			return outcome(s.DeleteCard(r.ColumnID, r.CardID), "card", r.CardID)
		}),
		Handle("kanban.column.add", func(s *store.Store, c *store.KanbanColumn) *Result {
			return applied(s.AddColumn(*c))
		}),
		Handle("kanban.column.update", func(s *store.Store, p *ColumnPatch) *Result {
			col, ok := s.Column(p.ColumnID)
			if !ok {
				return notFound("column", p.ColumnID)
			}
			col, err := store.PatchColumn(col, p.Updates)
			if err != nil {
				return patchFailed(err)
			}
			if errs := validation.Struct(&col); errs != nil {
				return &Result{Message: "validation failed", Errors: errs}
			}
			return outcome(s.UpdateColumn(col), "column", p.ColumnID)
		}),
		Handle("kanban.column.delete", func(s *store.Store, r *Ref) *Result {
			return outcome(s.DeleteColumn(r.ID), "column", r.ID)
		}),
	}
}

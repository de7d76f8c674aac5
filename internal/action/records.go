package action

import (
	"strings"

	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// Ref addresses a single entity by id.
type Ref struct {
	ID string `json:"id" validate:"required" label:"ID"`
}

func (r *Ref) Normalize() { r.ID = strings.TrimSpace(r.ID) }

// Progress sets the completion of a task.
type Progress struct {
	ID       string `json:"id" validate:"required" label:"ID"`
	Progress int    `json:"progress" validate:"gte=0,lte=100" label:"Progress"`
}

func missingID() *Result {
	return &Result{Message: "validation failed", Errors: validation.Errors{"id": "ID is required"}}
}

func recordExecutors() []Executor {
	return []Executor{
		Handle("records.add", func(s *store.Store, e *store.Employee) *Result {
			return applied(s.AddRecord(*e))
		}),
		Handle("records.update", func(s *store.Store, e *store.Employee) *Result {
			if e.ID == "" {
				return missingID()
			}
			return outcome(s.UpdateRecord(*e), "record", e.ID)
		}),
		Handle("records.delete", func(s *store.Store, r *Ref) *Result {
			return outcome(s.DeleteRecord(r.ID), "record", r.ID)
		}),
	}
}

func taskExecutors() []Executor {
	return []Executor{
		Handle("tasks.add", func(s *store.Store, t *store.Task) *Result {
			return applied(s.AddTask(*t))
		}),
		Handle("tasks.update", func(s *store.Store, t *store.Task) *Result {
			if t.ID == "" {
				return missingID()
			}
			return outcome(s.UpdateTask(*t), "task", t.ID)
		}),
		Handle("tasks.delete", func(s *store.Store, r *Ref) *Result {
			return outcome(s.DeleteTask(r.ID), "task", r.ID)
		}),
		Handle("tasks.progress", func(s *store.Store, p *Progress) *Result {
			return outcome(s.UpdateTaskProgress(p.ID, p.Progress), "task", p.ID)
		}),
	}
}

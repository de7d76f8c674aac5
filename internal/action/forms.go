package action

import (
	"github.com/gyaneshwarpardhi/opsdash/internal/form"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
)

// Submit is a filled-in form.
type Submit struct {
	FormID string                `json:"formId" validate:"required" label:"Form"`
	Data   map[string]form.Value `json:"data"`
}

func formExecutors() []Executor {
	return []Executor{
		Handle("forms.create", func(s *store.Store, f *store.DynamicForm) *Result {
			return applied(s.CreateForm(*f))
		}),
		Handle("forms.update", func(s *store.Store, f *store.DynamicForm) *Result {
			if f.ID == "" {
				return missingID()
			}
			return outcome(s.UpdateForm(*f), "form", f.ID)
		}),
		Handle("forms.delete", func(s *store.Store, r *Ref) *Result {
			return outcome(s.DeleteForm(r.ID), "form", r.ID)
		}),
		Handle("forms.submit", func(s *store.Store, sub *Submit) *Result {
			f, ok := s.Form(sub.FormID)
			if !ok {
				return notFound("form", sub.FormID)
			}
			data, errs := form.Decode(f.Fields, sub.Data)
			if errs != nil {
				return &Result{Message: "validation failed", Errors: errs}
			}
			id, ok := s.SubmitForm(sub.FormID, data)
			if !ok {
				return notFound("form", sub.FormID)
			}
			return applied(id)
		}),
	}
}

package store

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/gyaneshwarpardhi/opsdash/internal/form"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// DynamicForm is a user-built form together with its submissions.
type DynamicForm struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title" validate:"required" label:"Form title"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []form.Field      `json:"fields" yaml:"fields" validate:"dive"`
	CreatedAt   time.Time         `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" yaml:"updatedAt"`
	Submissions []form.Submission `json:"submissions" yaml:"submissions"`
}

// Check applies the builder rules that span fields.
func (f *DynamicForm) Check(errs validation.Errors) {
	if len(f.Fields) == 0 {
		errs.Add("fields", "At least one field is required")
	}
	for i, fld := range f.Fields {
		if fld.Type.HasOptions() && len(fld.Options) == 0 {
			errs.Add(fmt.Sprintf("fields[%d].options", i), "Options are required for this field type")
		}
	}
}

func (f DynamicForm) clone() DynamicForm {
	f.Fields = cloneAll(f.Fields, cloneField)
	f.Submissions = cloneAll(f.Submissions, cloneSubmission)
	return f
}

func cloneField(f form.Field) form.Field {
	f.Options = slices.Clone(f.Options)
	if f.Validation != nil {
		r := *f.Validation
		f.Validation = &r
	}
	return f
}

func cloneSubmission(sub form.Submission) form.Submission {
	sub.Data = maps.Clone(sub.Data)
	return sub
}

// Forms returns every dynamic form.
func (s *Store) Forms() []DynamicForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.forms, DynamicForm.clone)
}

// Form returns the form with id.
func (s *Store) Form(id string) (DynamicForm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.forms, func(f DynamicForm) bool { return f.ID == id })
	if i < 0 {
		return DynamicForm{}, false
	}
	return s.forms[i].clone(), true
}

// CreateForm stores f with a fresh id, fresh timestamps and no submissions.
func (s *Store) CreateForm(f DynamicForm) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	f = f.clone()
	f.ID = s.nextID("")
	f.CreatedAt = s.Now()
	f.UpdatedAt = f.CreatedAt
	f.Submissions = []form.Submission{}
	s.forms = append(s.forms, f)
	return f.ID
}

// UpdateForm replaces the form with f.ID and bumps updatedAt. Creation time
// and submissions are kept from the stored form.
func (s *Store) UpdateForm(f DynamicForm) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.forms, func(x DynamicForm) bool { return x.ID == f.ID })
	if i < 0 {
		return false
	}
	cur := s.forms[i]
	f = f.clone()
	f.CreatedAt = cur.CreatedAt
	f.Submissions = cur.Submissions
	f.UpdatedAt = s.Now()
	s.forms[i] = f
	return true
}

// DeleteForm removes the form with id together with its submissions.
func (s *Store) DeleteForm(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.forms, ok = removeWhere(s.forms, func(f DynamicForm) bool { return f.ID == id })
	return ok
}

// SubmitForm appends a submission carrying data to form formID and returns
// the submission id.
func (s *Store) SubmitForm(formID string, data map[string]form.Value) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.forms, func(f DynamicForm) bool { return f.ID == formID })
	if i < 0 {
		return "", false
	}
	sub := form.Submission{
		ID:          s.nextID(""),
		FormID:      formID,
		Data:        maps.Clone(data),
		SubmittedAt: s.Now(),
	}
	s.forms[i].Submissions = append(s.forms[i].Submissions, sub)
	return sub.ID, true
}

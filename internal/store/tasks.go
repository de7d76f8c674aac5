package store

import (
	"slices"

	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// Task statuses.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
)

// Task is a bar on the project timeline.
type Task struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name" validate:"required" label:"Task Name"`
	StartDate    string   `json:"startDate" yaml:"startDate" validate:"required,isodate" label:"Start Date"`
	EndDate      string   `json:"endDate" yaml:"endDate" validate:"required,isodate" label:"End Date"`
	Progress     int      `json:"progress" yaml:"progress" validate:"gte=0,lte=100" label:"Progress"`
	Assignee     string   `json:"assignee" yaml:"assignee" validate:"required" label:"Assignee"`
	Priority     string   `json:"priority" yaml:"priority" validate:"required,oneof=Low Medium High Critical" label:"Priority"`
	Status       string   `json:"status" yaml:"status" validate:"required,oneof='Not Started' 'In Progress' Completed 'On Hold'" label:"Status"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Check enforces the date ordering of the task.
func (t *Task) Check(errs validation.Errors) {
	validation.EndAfterStart(errs, t.StartDate, t.EndDate, "endDate")
}

func (t Task) clone() Task {
	t.Dependencies = slices.Clone(t.Dependencies)
	return t
}

// Tasks returns every task in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.tasks, Task.clone)
}

// AddTask appends t under a fresh id and returns that id.
func (s *Store) AddTask(t Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t = t.clone()
	t.ID = s.nextID("")
	s.tasks = append(s.tasks, t)
	return t.ID
}

// UpdateTask replaces the task with t.ID.
func (s *Store) UpdateTask(t Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, func(x Task) bool { return x.ID == t.ID })
	if i < 0 {
		return false
	}
	s.tasks[i] = t.clone()
	return true
}

// DeleteTask removes the task with id.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.tasks, ok = removeWhere(s.tasks, func(t Task) bool { return t.ID == id })
	return ok
}

// UpdateTaskProgress sets the progress of task id. Reaching 100 completes
// the task; any other positive value puts it in progress. Zero leaves the
// status alone.
func (s *Store) UpdateTaskProgress(id string, progress int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	t := &s.tasks[i]
	t.Progress = progress
	switch {
	case progress == 100:
		t.Status = StatusCompleted
	case progress > 0:
		t.Status = StatusInProgress
	}
	return true
}

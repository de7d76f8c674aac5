package action

import (
	"fmt"

	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// Replace swaps a whole org hierarchy.
type Replace[N hierarchy.Node] struct {
	Nodes []N `json:"nodes" validate:"dive"`
}

func orgExecutors(policy func() hierarchy.DanglingPolicy) []Executor {
	return []Executor{
		Handle("org.teams.add", func(s *store.Store, n *store.TeamNode) *Result {
			return applied(s.AddTeamMember(*n))
		}),
		Handle("org.jobs.add", func(s *store.Store, n *store.JobNode) *Result {
			return applied(s.AddJob(*n))
		}),
		Handle("org.forms.add", func(s *store.Store, n *store.FormNode) *Result {
			return applied(s.AddFormNode(*n))
		}),
		replace("org.teams.set", "team", policy, (*store.Store).SetTeams),
		replace("org.jobs.set", "job", policy, (*store.Store).SetJobs),
		replace("org.forms.set", "form", policy, (*store.Store).SetFormNodes),
	}
}

// replace rejects collections that do not resolve under the current
// dangling-parent policy; the layout of an accepted one always computes.
func replace[N hierarchy.Node](kind, noun string, policy func() hierarchy.DanglingPolicy, set func(*store.Store, []N)) Executor {
	return Handle(kind, func(s *store.Store, r *Replace[N]) *Result {
		opts := hierarchy.Options{OnDanglingParent: policy()}
		if _, err := hierarchy.Resolve(hierarchy.Of(r.Nodes), opts); err != nil {
			errs := validation.Errors{}
			errs.Add("nodes", fmt.Sprintf("Hierarchy is malformed: %v", err))
			return invalid(kind, errs)
		}
		set(s, r.Nodes)
		return &Result{Applied: true, Message: fmt.Sprintf("%d %s nodes", len(r.Nodes), noun)}
	})
}

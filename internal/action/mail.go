package action

import "github.com/gyaneshwarpardhi/opsdash/internal/store"

func mailExecutors() []Executor {
	flag := func(kind string, fn func(s *store.Store, id string) bool) Executor {
		return Handle(kind, func(s *store.Store, r *Ref) *Result {
			return outcome(fn(s, r.ID), "email", r.ID)
		})
	}
	return []Executor{
		Handle("emails.send", func(s *store.Store, d *store.Draft) *Result {
			return applied(s.SendEmail(*d))
		}),
		flag("emails.read", func(s *store.Store, id string) bool { return s.MarkEmailRead(id, true) }),
		flag("emails.unread", func(s *store.Store, id string) bool { return s.MarkEmailRead(id, false) }),
		flag("emails.star", (*store.Store).ToggleStar),
		flag("emails.important", (*store.Store).ToggleImportant),
		flag("emails.delete", (*store.Store).DeleteEmail),
	}
}

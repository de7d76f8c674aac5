package action

import "github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"

// Option configures Builtin.
type Option func(*options)

type options struct {
	dangling func() hierarchy.DanglingPolicy
}

// WithDanglingPolicy makes org replacements resolve under the policy fn
// returns at execution time, so a config reload applies to the next intent.
func WithDanglingPolicy(fn func() hierarchy.DanglingPolicy) Option {
	return func(o *options) {
		if fn != nil {
			o.dangling = fn
		}
	}
}

// Builtin returns a Registry holding every store mutation.
func Builtin(opts ...Option) *Registry {
	o := options{dangling: func() hierarchy.DanglingPolicy { return hierarchy.TreatAsRoot }}
	for _, opt := range opts {
		opt(&o)
	}
	r := NewRegistry()
	r.Register(recordExecutors()...)
	r.Register(taskExecutors()...)
	r.Register(kanbanExecutors()...)
	r.Register(formExecutors()...)
	r.Register(mailExecutors()...)
	r.Register(chatExecutors()...)
	r.Register(orgExecutors(o.dangling)...)
	return r
}

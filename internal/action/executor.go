package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

var (
	// ErrUnknownKind is returned for an intent kind with no executor.
	ErrUnknownKind = errors.New("unknown intent kind")
	// ErrInvalidPayload is returned when a payload cannot be decoded.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Result holds the outcome of executing a single intent.
type Result struct {
	IntentID string            `json:"intent_id"`
	Kind     string            `json:"kind"`
	Applied  bool              `json:"applied"`
	EntityID string            `json:"entity_id,omitempty"`
	Message  string            `json:"message,omitempty"`
	Errors   validation.Errors `json:"errors,omitempty"`
}

// Executor is the interface all intent handlers must satisfy.
type Executor interface {
	// Kind returns the intent kind this executor is registered under.
	Kind() string
	// Execute decodes payload, validates it and applies it to s.
	Execute(ctx context.Context, s *store.Store, payload json.RawMessage) (*Result, error)
}

// Normalizer is implemented by payloads that clean themselves up before
// validation.
type Normalizer interface {
	Normalize()
}

type handler[P any] struct {
	kind  string
	apply func(s *store.Store, p *P) *Result
}

// Handle builds an Executor for kind around a typed payload. The payload is
// decoded, normalized and validated; apply only runs for valid payloads and
// is never reached on a validation failure.
func Handle[P any](kind string, apply func(s *store.Store, p *P) *Result) Executor {
	return &handler[P]{kind: kind, apply: apply}
}

func (h *handler[P]) Kind() string { return h.kind }

func (h *handler[P]) Execute(ctx context.Context, s *store.Store, payload json.RawMessage) (*Result, error) {
	var p P
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", h.kind, ErrInvalidPayload, err)
	}
	if n, ok := any(&p).(Normalizer); ok {
		n.Normalize()
	}
	if errs := validation.Struct(&p); errs != nil {
		return invalid(h.kind, errs), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := h.apply(s, &p)
	res.Kind = h.kind
	return res, nil
}

func invalid(kind string, errs validation.Errors) *Result {
	return &Result{Kind: kind, Message: "validation failed", Errors: errs}
}

func applied(id string) *Result {
	return &Result{Applied: true, EntityID: id}
}

func notFound(what, id string) *Result {
	return &Result{EntityID: id, Message: fmt.Sprintf("%s %q not found", what, id)}
}

// outcome reports ok as applied, or as a not-found no-op.
func outcome(ok bool, what, id string) *Result {
	if ok {
		return applied(id)
	}
	return notFound(what, id)
}

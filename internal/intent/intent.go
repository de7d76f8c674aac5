package intent

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Intent is a request to mutate the store. Kind selects the executor and
// Payload carries its kind-specific arguments.
type Intent struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
	IssuedAt time.Time       `json:"issued_at"`
}

// ErrMissingKind is returned by Prepare for an intent without a kind.
var ErrMissingKind = errors.New("intent kind is required")

// New builds an intent of kind carrying payload encoded as JSON.
func New(kind string, payload any) (*Intent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	in := &Intent{Kind: kind, Payload: raw}
	if err := in.Prepare(time.Now()); err != nil {
		return nil, err
	}
	return in, nil
}

// Prepare fills in a missing id and issue time and rejects intents that
// cannot be dispatched.
func (in *Intent) Prepare(now time.Time) error {
	in.Kind = strings.TrimSpace(in.Kind)
	if in.Kind == "" {
		return ErrMissingKind
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.IssuedAt.IsZero() {
		in.IssuedAt = now.UTC()
	}
	if len(in.Payload) == 0 {
		in.Payload = json.RawMessage("{}")
	}
	return nil
}

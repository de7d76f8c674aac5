package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldKind is the closed set of input kinds a dynamic form can hold.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindDate     FieldKind = "date"
	KindCheckbox FieldKind = "checkbox"
	KindRadio    FieldKind = "radio"
	KindTextarea FieldKind = "textarea"
)

// Kinds lists every FieldKind.
var Kinds = []FieldKind{KindText, KindEmail, KindNumber, KindSelect, KindDate, KindCheckbox, KindRadio, KindTextarea}

// HasOptions reports whether the kind picks from a fixed option list.
func (k FieldKind) HasOptions() bool {
	return k == KindSelect || k == KindRadio
}

// Rules are optional bounds carried by a field definition.
type Rules struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Field is one input of a dynamic form.
type Field struct {
	ID          string    `json:"id" yaml:"id" validate:"required" label:"Field ID"`
	Type        FieldKind `json:"type" yaml:"type" validate:"required,oneof=text email number select date checkbox radio textarea" label:"Field type"`
	Label       string    `json:"label" yaml:"label" validate:"required" label:"Field label"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Validation  *Rules    `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// ValueType tags which member of Value is set.
type ValueType uint8

const (
	ValueText ValueType = iota
	ValueNumber
	ValueBool
)

// Value is a submitted field value: text, number or boolean.
type Value struct {
	Type   ValueType
	Text   string
	Number float64
	Bool   bool
}

func Text(s string) Value    { return Value{Type: ValueText, Text: s} }
func Number(f float64) Value { return Value{Type: ValueNumber, Number: f} }
func Bool(b bool) Value      { return Value{Type: ValueBool, Bool: b} }

// IsEmpty reports whether the value counts as "not filled in".
func (v Value) IsEmpty() bool {
	switch v.Type {
	case ValueBool:
		return !v.Bool
	case ValueNumber:
		return false
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

// String renders the value for display and export.
func (v Value) String() string {
	switch v.Type {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON infers the member from the JSON token type.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Text("")
	case string:
		*v = Text(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("form value: unsupported JSON type %T", raw)
	}
	return nil
}

// UnmarshalYAML lets fixtures carry plain scalars.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Text("")
	case string:
		*v = Text(x)
	case int:
		*v = Number(float64(x))
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("form value: unsupported YAML type %T", raw)
	}
	return nil
}

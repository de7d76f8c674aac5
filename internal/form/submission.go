package form

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

// Submission is one filled-in copy of a form.
type Submission struct {
	ID          string           `json:"id" yaml:"id"`
	FormID      string           `json:"formId" yaml:"formId"`
	Data        map[string]Value `json:"data" yaml:"data"`
	SubmittedAt time.Time        `json:"submittedAt" yaml:"submittedAt"`
}

// Decode coerces raw submitted values to the kinds their fields declare and
// checks them. Keys that name no field are dropped. The returned errors are
// keyed by field id.
func Decode(fields []Field, raw map[string]Value) (map[string]Value, validation.Errors) {
	out := make(map[string]Value, len(fields))
	errs := validation.Errors{}
	for _, f := range fields {
		v, ok := raw[f.ID]
		if !ok || v.IsEmpty() {
			if f.Required {
				errs.Add(f.ID, f.Label+" is required")
			}
			if ok {
				out[f.ID] = v
			}
			continue
		}
		cv, msg := coerce(f, v)
		if msg != "" {
			errs.Add(f.ID, msg)
			continue
		}
		out[f.ID] = cv
	}
	if len(errs) == 0 {
		return out, nil
	}
	return out, errs
}

func coerce(f Field, v Value) (Value, string) {
	switch f.Type {
	case KindNumber:
		n := v.Number
		if v.Type != ValueNumber {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
			if err != nil {
				return v, f.Label + " must be a number"
			}
			n = parsed
		}
		if r := f.Validation; r != nil {
			if r.Min != nil && n < *r.Min {
				return v, fmt.Sprintf("%s must be at least %s", f.Label, strconv.FormatFloat(*r.Min, 'f', -1, 64))
			}
			if r.Max != nil && n > *r.Max {
				return v, fmt.Sprintf("%s must be at most %s", f.Label, strconv.FormatFloat(*r.Max, 'f', -1, 64))
			}
		}
		return Number(n), ""

	case KindCheckbox:
		if v.Type == ValueBool {
			return v, ""
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v.String()))
		if err != nil {
			return v, f.Label + " must be true or false"
		}
		return Bool(b), ""

	case KindEmail:
		s := strings.TrimSpace(v.String())
		if !validation.IsEmail(s) {
			return v, "Please enter a valid email address"
		}
		return Text(s), ""

	case KindDate:
		s := strings.TrimSpace(v.String())
		if _, err := validation.ParseDate(s); err != nil {
			return v, f.Label + " must be a date (YYYY-MM-DD)"
		}
		return Text(s), ""

	case KindSelect, KindRadio:
		s := v.String()
		if len(f.Options) > 0 && !slices.Contains(f.Options, s) {
			return v, fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Options, ", "))
		}
		return Text(s), ""

	default:
		s := v.String()
		if r := f.Validation; r != nil && r.Pattern != "" {
			re, err := regexp.Compile(r.Pattern)
			if err == nil && !re.MatchString(s) {
				return v, f.Label + " is invalid"
			}
		}
		return Text(s), ""
	}
}

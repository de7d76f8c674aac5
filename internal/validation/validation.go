// Package validation runs the form-layer checks that gate every mutation:
// required fields, email and date formats, closed enums and date ranges.
// Failures come back as field → message maps, ready to render inline.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used across the store.
const DateLayout = "2006-01-02"

var (
	validate     *validator.Validate
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	oneOfParam   = regexp.MustCompile(`'[^']*'|\S+`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("richtext", func(fl validator.FieldLevel) bool {
		return !IsBlankRichText(fl.Field().String())
	})
}

// Errors maps a field path to a user-facing message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Checker is implemented by payloads with rules that span several fields.
type Checker interface {
	Check(errs Errors)
}

// Struct validates v's `validate` tags and, if v is a Checker, its
// cross-field rules. It returns nil when v is valid.
func Struct(v any) Errors {
	errs := Errors{}
	if err := validate.Struct(v); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			errs["_"] = err.Error()
			return errs
		}
		root := reflect.TypeOf(v)
		for _, fe := range ves {
			errs.Add(fieldPath(fe), message(fe, labelFor(root, fe.StructNamespace())))
		}
	}
	if c, ok := v.(Checker); ok {
		c.Check(errs)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsEmail applies the dashboard's loose mailbox rule.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// IsBlankRichText reports whether an editor body carries no content.
func IsBlankRichText(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "<p><br></p>"
}

// EndAfterStart adds an error on endField unless end is strictly after start.
// Unparseable dates are left to the isodate tag.
func EndAfterStart(errs Errors, start, end, endField string) {
	s, err1 := ParseDate(start)
	e, err2 := ParseDate(end)
	if err1 != nil || err2 != nil {
		return
	}
	if !e.After(s) {
		errs.Add(endField, "End date must be after start date")
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "richtext":
		return label + " is required"
	case "mailbox":
		return "Please enter a valid email address"
	case "isodate":
		return label + " must be a date (YYYY-MM-DD)"
	case "oneof":
		opts := oneOfParam.FindAllString(fe.Param(), -1)
		for i, o := range opts {
			opts[i] = strings.Trim(o, "'")
		}
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(opts, ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// labelFor finds the `label` tag of the field at a struct namespace such as
// "TaskInput.Fields[2].Label", falling back to a humanized field name.
func labelFor(t reflect.Type, namespace string) string {
	parts := strings.Split(namespace, ".")[1:]
	var name string
	for i, p := range parts {
		if j := strings.IndexByte(p, '['); j >= 0 {
			p = p[:j]
		}
		name = p
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		f, ok := t.FieldByName(p)
		if !ok {
			break
		}
		if l := f.Tag.Get("label"); l != "" && i == len(parts)-1 {
			return l
		}
		t = f.Type
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Map {
			t = t.Elem()
		}
	}
	return humanize(name)
}

func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

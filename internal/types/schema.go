package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names accepted from clients. Anything else in a request body is
// dropped by Apply.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
)

// validate is safe for concurrent use and caches struct metadata, so a
// single instance is shared by every store.
var validate = validator.New()

// CastError reports a request value that cannot be converted to the
// type of the schema field it targets.
type CastError struct {
	Path  string
	Kind  string
	Value any
}

func (e *CastError) Error() string {
	raw, err := json.Marshal(e.Value)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", e.Value))
	}
	return fmt.Sprintf("cast to %s failed for value %s at path %q", e.Kind, raw, e.Path)
}

// ValidationError is returned when a Draft breaks the schema.
// Its message lists every failing field, e.g.
//
//	menu item validation failed: field name is required
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))

	for _, fe := range e.Fields {
		field := strings.ToLower(fe.Field())
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must not be empty", field))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", field))
		}
	}

	return "menu item validation failed: " + strings.Join(msgs, ", ")
}

// Validate checks d against the schema. It returns nil or a
// *ValidationError.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("menu item validation failed: %w", err)
	}
	return &ValidationError{Fields: fields}
}

// Apply casts the known keys of fields onto d. A JSON null clears the
// field. Unknown keys are ignored. On a cast error d is left unchanged.
func (d *Draft) Apply(fields map[string]any) error {
	next := *d

	for key, raw := range fields {
		switch key {
		case FieldName:
			s, err := castString(key, raw)
			if err != nil {
				return err
			}
			next.Name = s
		case FieldDescription:
			s, err := castString(key, raw)
			if err != nil {
				return err
			}
			next.Description = s
		case FieldPrice:
			f, err := castNumber(key, raw)
			if err != nil {
				return err
			}
			next.Price = f
		}
	}

	*d = next
	return nil
}

// castString converts a decoded JSON value to a string field.
// Numbers and booleans are converted to their text form.
func castString(path string, raw any) (*string, error) {
	var s string

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		s = v.String()
	case bool:
		s = strconv.FormatBool(v)
	default:
		return nil, &CastError{Path: path, Kind: "string", Value: raw}
	}

	return &s, nil
}

// castNumber converts a decoded JSON value to a numeric field.
// Numeric strings are parsed, an empty string clears the field and
// booleans map to 1 and 0.
func castNumber(path string, raw any) (*float64, error) {
	var f float64

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, &CastError{Path: path, Kind: "number", Value: raw}
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, &CastError{Path: path, Kind: "number", Value: raw}
		}
		f = parsed
	case bool:
		if v {
			f = 1
		}
	default:
		return nil, &CastError{Path: path, Kind: "number", Value: raw}
	}

	return &f, nil
}

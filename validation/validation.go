// Package validation reports field-level violations for inbound payloads.
//
// A Violations map always describes every failing field at once; callers never
// see a partially validated value.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a JSON field name to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names so violations line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) Violations {
	v := Violations{}
	err := validate.Struct(s)
	if err == nil {
		return v
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		v["body"] = "invalid"
		return v
	}
	for _, fe := range errs {
		if _, seen := v[fe.Field()]; seen {
			continue
		}
		v[fe.Field()] = code(fe.Tag())
	}
	return v
}

func code(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "email":
		return "invalid_email"
	case "gt", "gte":
		return "must_be_positive"
	default:
		return "invalid"
	}
}

// DecodeJSON decodes r into dst and validates the result. Type mismatches on
// individual fields are reported as "invalid_type" violations alongside the tag
// violations of the other fields. The error is non-nil only when the body is not
// a JSON object at all.
func DecodeJSON(r io.Reader, dst any) (Violations, error) {
	v := Violations{}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return nil, err
		}
		v[typeErr.Field] = "invalid_type"
	}
	for field, c := range Struct(dst) {
		if _, ok := v[field]; !ok {
			v[field] = c
		}
	}
	return v, nil
}

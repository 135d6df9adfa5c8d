// Package validation wraps go-playground/validator with JSON field names.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator instance. Field errors report the
// JSON tag name rather than the Go field name.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("adstatus", "oneof=draft published")
		validate = v
	})
	return validate
}

// FieldError is a single failed rule.
type FieldError struct {
	Field string
	Tag   string
}

// Check validates v and returns the failed rules in declaration order.
// A nil result means v is valid.
func Check(v any) []FieldError {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "payload", Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// Fields returns the names of the fields that failed with tag.
func Fields(errs []FieldError, tag string) []string {
	var names []string
	for _, fe := range errs {
		if fe.Tag == tag {
			names = append(names, fe.Field)
		}
	}
	return names
}

// Package validation wraps a shared go-playground validator configured to
// report fields by their JSON names.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
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
	})
	return validate
}

// MissingFields returns the JSON names of fields failing a "required" rule,
// in declaration order. Any other validation failure is returned as an error.
func MissingFields(s any) ([]string, error) {
	err := instance().Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Tag() != "required" {
			return nil, err
		}
		missing = append(missing, fe.Field())
	}
	return missing, nil
}

// Package models defines the record shapes the Student Companion persists:
// subjects with attendance counters, tasks, expenses, notes with optional
// attachments, favorite quotes, and the auth records backing them. Records
// carry validation predicates only; all derived values are computed by the
// services layer.
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aleksivanovs/studentcompanion/internal/common"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json name so API clients see the names they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator.ValidationErrors into the field-level
// common.ValidationError surfaced to callers. Other errors pass through.
func validationError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	fields := make([]common.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, common.FieldError{Field: fe.Field(), Error: fieldMessage(fe)})
	}
	return common.NewValidationError(fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "invalid value"
	}
}

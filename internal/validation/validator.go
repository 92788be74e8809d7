// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is one field that failed a rule.
type ValidationError struct {
	field   string
	tag     string
	param   string
	message string
}

// Field returns the form name of the failing field.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the rule that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the rule parameter, such as "6" for min=6.
func (e *ValidationError) Param() string { return e.param }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects the failures of one form or request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field failures.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// FieldMessages maps each failing field to its first message, for inline
// form errors.
func (ve *RequestValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(ve.errors))
	for _, e := range ve.errors {
		if _, ok := out[e.field]; !ok {
			out[e.field] = e.message
		}
	}
	return out
}

// Details returns the failures in the shape used by the JSON error envelope.
func (ve *RequestValidationError) Details() map[string]interface{} {
	fields := make([]map[string]string, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]string{"field": e.field, "tag": e.tag, "message": e.message}
	}
	return map[string]interface{}{"fields": fields}
}

// AsRequestValidationError unwraps err.
func AsRequestValidationError(err error) (*RequestValidationError, bool) {
	var ve *RequestValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// GetValidator returns the shared validator. Struct metadata is cached on
// it, so one instance serves the whole process.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		for tag, fn := range map[string]validator.Func{"notblank": notBlank, "slug": isSlug} {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %s validator: %v", tag, err))
			}
		}
	})
	return validate
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// ValidateStruct returns nil when s passes its validate tags.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []ValidationError{{
			field: "unknown", tag: "unknown", message: err.Error(),
		}}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"notblank": "%s is required",
	"email":    "%s must be a valid email address",
	"slug":     "%s must contain only lowercase letters, digits and hyphens",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()
	if tmpl, ok := messageTemplates[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

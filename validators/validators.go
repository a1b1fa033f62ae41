package validators

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors carries per-field validation messages alongside the overall
// error message, matching the API's error envelope.
type FieldErrors struct {
	Message string
	Fields  map[string]string
}

func (e *FieldErrors) Error() string {
	return e.Message
}

// NewFieldErrors builds a FieldErrors from an explicit field->message map
func NewFieldErrors(message string, fields map[string]string) *FieldErrors {
	return &FieldErrors{Message: message, Fields: fields}
}

// Validator wraps go-playground/validator for Echo
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the Echo request validator. Field names in messages
// use the json tag so clients can key on them.
func NewValidator() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: validate}
}

// Validate implements echo.Validator, converting validator errors into a
// FieldErrors with client-facing messages
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	message := ""
	for _, fe := range validationErrors {
		msg := fieldMessage(fe)
		fields[fe.Field()] = msg
		if message == "" {
			message = msg
		}
	}
	return &FieldErrors{Message: message, Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Must not be empty"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", fe.Param())
	case "eqfield":
		return "Passwords must match"
	default:
		return fmt.Sprintf("Failed validation on %s", fe.Tag())
	}
}

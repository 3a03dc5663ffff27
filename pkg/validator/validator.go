package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var failed []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			failed = append(failed, &element)
		}
	}
	return failed
}

// Error carries every failed field of one Validate call.
type Error struct {
	Fields []*ErrorResponse
}

func (e *Error) Error() string {
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.Fields[0].FailedField, e.Fields[0].Tag)
}

// Validate runs ValidateStruct and returns a *Error when anything failed.
func Validate(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	return &Error{Fields: errs}
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

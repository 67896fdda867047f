package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/venntower/pkg/errors"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// validate is a singleton validator instance.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON body into v and validates it. Unknown fields and
// trailing data are rejected.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: trailing data")
	}
	return Validate(v)
}

// Validate checks the validator tags of a struct.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request")
	}

	// Report the first failing field.
	e := validationErrs[0]
	field, param := e.Field(), e.Param()
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidInput, "%s: field is required", field)
	case "min":
		return errors.New(errors.ErrCodeInvalidInput, "%s: must be at least %s", field, param)
	case "max":
		return errors.New(errors.ErrCodeInvalidInput, "%s: must not exceed %s", field, param)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidInput, "%s: must be one of %s", field, param)
	case "excluded_with", "required_without":
		return errors.New(errors.ErrCodeInvalidInput, "%s: conflicts with %s", field, param)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s: validation failed (%s)", field, e.Tag())
	}
}

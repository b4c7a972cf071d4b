// Package validation checks typed request structs before any write is
// attempted. A failed check short-circuits the mutation without
// touching the store.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"ms-booking/internal/apperr"
)

var phoneRE = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// phone → NNN-NNN-NNNN, matching the listing form format
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRE.MatchString(fl.Field().String())
	})
	return v
}

// Check validates req and returns a validation-kind error naming the
// first offending field, or nil when the request is well-formed.
func Check(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperr.Validation(fmt.Sprintf("field %s failed %s validation", fieldName(fe), fe.Tag()))
	}
	return apperr.Validation("request is not valid")
}

func fieldName(fe validator.FieldError) string {
	// drop the struct prefix, e.g. "VenueRequest.Name" → "name"
	name := fe.Namespace()
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

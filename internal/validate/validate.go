package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors is the set of human-readable failures produced by
// [StructFields]. It marshals as a plain JSON array so it can be handed to
// servererrors.New as the errors detail.
type FieldErrors []string

func (fe FieldErrors) Error() string {
	return strings.Join(fe, "; ")
}

// StructFields validates the `validate` tags on the given struct and returns
// a [FieldErrors] describing every failed rule, or nil when everything
// passes.
func StructFields(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		return FieldErrors{invalidErr.Error()}
	}

	var fieldErrs FieldErrors
	for _, fieldErr := range err.(validator.ValidationErrors) {
		name := fieldErr.Field()
		fieldErrs = append(
			fieldErrs,
			fmt.Sprintf(
				"field '%s' failed on the '%s' rule",
				strings.ToLower(name[:1])+name[1:],
				fieldErr.Tag(),
			),
		)
	}

	return fieldErrs
}

package validator

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// clockPattern matches a 24h HH:MM clock time such as 05:30 or 23:59.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
}

// Validate validates s against its `validate` struct tags.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// Details flattens validation failures into field -> failed tag, suitable for AppError details.
func Details(err error) map[string]interface{} {
	details := make(map[string]interface{})

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		details["error"] = err.Error()
		return details
	}

	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

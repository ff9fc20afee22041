package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// requestValidator checks request DTOs against their validate tags and
// reports violations keyed by JSON field name.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for reserved tag names.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("cents", hasAtMostTwoDecimals)

	return &requestValidator{validate: v}
}

// hasAtMostTwoDecimals reports whether the shortest decimal form of a float,
// which is the literal a JSON client sent, has no digit finer than a cent.
func hasAtMostTwoDecimals(fl validator.FieldLevel) bool {
	s := strconv.FormatFloat(fl.Field().Float(), 'f', -1, 64)
	_, frac, _ := strings.Cut(s, ".")
	return len(frac) <= 2
}

// Struct returns nil when s is valid, otherwise a message per offending field.
func (r *requestValidator) Struct(s any) map[string]string {
	err := r.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "cents":
		return "must have at most 2 decimal places"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

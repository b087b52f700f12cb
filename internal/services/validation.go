package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "enquirycrm/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// enum accepts any closed-set type exposing Valid().
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && e.Valid()
	})
	return v
}

// validateStruct runs struct tags and reports failures as one validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.ErrCodeValidation, "invalid input", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return apperrors.Validation("invalid input: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "enum":
		return fmt.Sprintf("%s has an unknown value %v", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// trimmed returns a trimmed copy of p, or nil when p is nil.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// blankToNil maps an empty string to nil so optional columns stay NULL.
func blankToNil(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

// validateEmail checks a non-blank optional email address.
func validateEmail(field string, p *string) error {
	if p == nil || *p == "" {
		return nil
	}
	if err := validate.Var(*p, "email"); err != nil {
		return apperrors.Validation("invalid input: %s must be a valid email address", field)
	}
	return nil
}

func trimmedValue(s string) string {
	return strings.TrimSpace(s)
}

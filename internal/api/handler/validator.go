package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field rules carried over from the contact record's invariants: names are
// alphabetic-only, email needs a local-part@domain.tld shape, phone numbers
// are + followed by a 2-digit country code and 10 digits, and addresses are
// limited to alphanumerics, spaces and commas.
var (
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z]+\.[A-Za-z]{2,}$`)
	phoneRe   = regexp.MustCompile(`^\+[0-9]{2}[0-9]{10}$`)
	addressRe = regexp.MustCompile(`^[A-Za-z0-9\s,]*$`)
)

// ValidationError aggregates field-level failures so the error handler can
// return them to the client as a list.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	mustRegister(v, "contact_email", emailRe)
	mustRegister(v, "intl_phone", phoneRe)
	mustRegister(v, "address_chars", addressRe)
	return &echoValidator{v: v}
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validator: register %s: %v", tag, err))
	}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return &ValidationError{Messages: msgs}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "alpha":
		return field + " must contain only alphabetic characters"
	case "contact_email":
		return field + " format is invalid"
	case "intl_phone":
		return "invalid " + field + " format, it should start with + and country code"
	case "address_chars":
		return "invalid " + field + " format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

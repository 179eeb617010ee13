package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// EmailRegex accepts local@domain.tld shapes: non-whitespace before the
	// @, non-whitespace after, and a dot in the domain part.
	EmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// PhoneRegex accepts digits-only phone numbers.
	PhoneRegex = regexp.MustCompile(`^\d+$`)

	// URLRegex accepts http(s) URLs with a domain-like dotted segment.
	URLRegex = regexp.MustCompile(`^https?://.+\..+`)
)

// Validator wraps the go-playground validator for request DTO tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct using its validate tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts tag validation errors to a field->message map.
func FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
			switch e.Tag() {
			case "required":
				errors[field] = fmt.Sprintf("%s is required", e.Field())
			case "email":
				errors[field] = "Invalid email format"
			case "min":
				errors[field] = fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
			case "max":
				errors[field] = fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
			case "oneof":
				errors[field] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
			default:
				errors[field] = fmt.Sprintf("%s is invalid", e.Field())
			}
		}
	}

	return errors
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return EmailRegex.MatchString(email)
}

// ValidatePhone checks a digits-only phone number.
func ValidatePhone(phone string) bool {
	return PhoneRegex.MatchString(phone)
}

// ValidateURL checks an http(s) URL shape.
func ValidateURL(raw string) bool {
	return URLRegex.MatchString(raw)
}

// SanitizeString strips null bytes and surrounding whitespace.
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

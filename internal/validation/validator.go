package validation

import (
	"fmt"
	"regexp"

	"securebank/internal/models"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// UserRegistration validates a registration request.
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Check(input.Name != "", "name", "name is required")
	v.Check(emailRegex.MatchString(input.Email), "email", "a valid email is required")
	v.Check(len(input.Password) >= 8, "password", "password must be at least 8 characters")
	v.Check(HasSpecialChar(input.Password), "password", "password must contain a special character")
}

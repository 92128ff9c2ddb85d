package auth

import (
	"regexp"
	"strings"

	"github.com/example/taskboard/domain/apperror"
)

// emailPattern matches a simple local@domain.tld shape. Deliberately
// stricter than RFC 5322: a bare "a@b" without a dot in the domain is
// rejected.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLen = 4
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72

	minUsernameLen = 3
	maxUsernameLen = 30
)

// ValidEmail reports whether the email has a local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateRegisterInput checks a registration payload and returns the
// ordered list of field errors. An empty list means the payload is valid.
func ValidateRegisterInput(req RegisterRequest) []apperror.FieldError {
	var errs []apperror.FieldError

	if !ValidEmail(req.Email) {
		errs = append(errs, apperror.FieldError{Field: "email", Message: "Invalid email format"})
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		errs = append(errs, apperror.FieldError{Field: "username", Message: "Username must be 3-30 characters"})
	}

	switch {
	case req.Password == "":
		errs = append(errs, apperror.FieldError{Field: "password", Message: "Password is required"})
	case len(req.Password) < minPasswordLen:
		errs = append(errs, apperror.FieldError{Field: "password", Message: "Password must be at least 4 characters long"})
	case len(req.Password) > maxPasswordLen:
		errs = append(errs, apperror.FieldError{Field: "password", Message: "Password must be at most 72 characters long"})
	}

	if strings.TrimSpace(req.FirstName) == "" {
		errs = append(errs, apperror.FieldError{Field: "firstName", Message: "First name is required"})
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, apperror.FieldError{Field: "lastName", Message: "Last name is required"})
	}

	return errs
}

// ValidateLoginInput checks a login payload. Password length is not
// checked here, only presence.
func ValidateLoginInput(req LoginRequest) []apperror.FieldError {
	var errs []apperror.FieldError

	if !ValidEmail(req.Email) {
		errs = append(errs, apperror.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if req.Password == "" {
		errs = append(errs, apperror.FieldError{Field: "password", Message: "Password is required"})
	}

	return errs
}

// NormalizeEmail lower-cases, trims and caps an email address for
// storage and lookup.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 254 {
		email = email[:254]
	}
	return email
}

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"campuswordle/internal/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.\-]+$`)
	lettersRegex  = regexp.MustCompile(`^[A-Za-z]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks a normalized (lowercased, trimmed) username
func ValidateUsername(username string) error {
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > 64 {
		return ValidationError{Field: "username", Message: "username must be at most 64 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "username may only contain lowercase letters, digits, '_', '.' and '-'"}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidatePhone checks an optional phone number
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if len(phone) > 32 {
		return ValidationError{Field: "phoneNumber", Message: "phone number is too long"}
	}
	return nil
}

// ValidateWord checks a puzzle word: 3 to 7 characters, letters only.
// Words are stored uppercase, so callers uppercase before insert; the check
// here accepts either case.
func ValidateWord(word string) error {
	if len(word) < models.MinWordLength {
		return ValidationError{Field: "word", Message: fmt.Sprintf("word must be at least %d letters long", models.MinWordLength)}
	}
	if len(word) > models.MaxWordLength {
		return ValidationError{Field: "word", Message: fmt.Sprintf("word cannot be longer than %d letters", models.MaxWordLength)}
	}
	if !lettersRegex.MatchString(word) {
		return ValidationError{Field: "word", Message: "word can only contain letters"}
	}
	return nil
}

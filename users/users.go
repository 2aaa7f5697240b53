package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. The password is stored as a bcrypt hash
// only; the plaintext is never retained.
type User struct {
	Username     string    `json:"username,omitempty"`    // Unique username, immutable after registration
	PasswordHash string    `json:"-"`                     // Hashed version of the user's password - never serialize
	DateJoined   time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
}

// ValidateUsername checks that a username is 3-50 alphanumeric characters.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 50 {
		return fmt.Errorf("username must be between 3 and 50 characters")
	}
	for _, char := range username {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) {
			return fmt.Errorf("username must contain only letters and digits")
		}
	}
	return nil
}

// ValidatePasswordStrength checks if a password meets the minimum length
// requirement.
func ValidatePasswordStrength(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a bcrypt hash.
// bcrypt's comparison is constant-time over the hash material.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

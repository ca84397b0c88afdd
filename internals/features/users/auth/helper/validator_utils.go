package helper

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var reEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return reEmail.MatchString(email)
}

func ValidateRegisterInput(userName, contact, password string) error {
	userName = strings.TrimSpace(userName)
	if len(userName) < 3 || len(userName) > 50 {
		return errors.New("user_name must be 3-50 characters")
	}
	if strings.TrimSpace(contact) == "" {
		return errors.New("contact (email or phone) is required")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("identifier is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

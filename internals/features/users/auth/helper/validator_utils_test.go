package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("user@"))
	assert.False(t, IsValidEmail(""))
}

func TestValidateRegisterInput(t *testing.T) {
	assert.NoError(t, ValidateRegisterInput("abdul.karim", "user@example.com", "password123"))

	assert.Error(t, ValidateRegisterInput("ab", "user@example.com", "password123"))
	assert.Error(t, ValidateRegisterInput("abdul.karim", "", "password123"))
	assert.Error(t, ValidateRegisterInput("abdul.karim", "user@example.com", "short"))
}

func TestValidateLoginInput(t *testing.T) {
	assert.NoError(t, ValidateLoginInput("user@example.com", "pw"))
	assert.Error(t, ValidateLoginInput("", "pw"))
	assert.Error(t, ValidateLoginInput("user@example.com", ""))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, CheckPasswordHash(hash, "correct horse battery"))
	assert.Error(t, CheckPasswordHash(hash, "wrong password"))
}

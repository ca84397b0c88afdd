package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	// bare local numbers parse with the BD default region
	got, err := NormalizePhone("01712345678")
	require.NoError(t, err)
	assert.Equal(t, "+8801712345678", got)

	got, err = NormalizePhone("+880 1712-345678")
	require.NoError(t, err)
	assert.Equal(t, "+8801712345678", got)
}

func TestNormalizePhoneRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "12345", "not a phone", "+880"} {
		_, err := NormalizePhone(raw)
		assert.Error(t, err, raw)
	}
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("01712345678"))
	assert.True(t, IsPhone("+8801712345678"))
	assert.False(t, IsPhone("user@example.com"))
	assert.False(t, IsPhone(""))
	assert.False(t, IsPhone("hello"))
}

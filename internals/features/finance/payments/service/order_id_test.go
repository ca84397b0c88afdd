package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderIDFormat(t *testing.T) {
	madrasaID := uuid.MustParse("3f2b8c1d-4e5a-6b7c-8d9e-0f1a2b3c4d5e")
	id := NewOrderID(madrasaID)

	parts := strings.Split(id, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "PAY", parts[0])
	assert.Equal(t, "3F2B8C1D", parts[1])
	assert.NotEmpty(t, parts[2])
	assert.Len(t, parts[3], 4) // 2 random bytes in hex
}

func TestNewOrderIDUnique(t *testing.T) {
	madrasaID := uuid.New()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewOrderID(madrasaID)
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}

package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "madrasahku_backend/internals/features/users/user/model"
)

func TestBuildAccessClaims(t *testing.T) {
	user := userModel.UserModel{
		ID:        uuid.New(),
		MadrasaID: uuid.New(),
		UserName:  "hafiz.rahman",
		AccType:   "teacher",
	}
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	claims := buildAccessClaims(user, now)
	assert.Equal(t, "access", claims["typ"])
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, "hafiz.rahman", claims["user_name"])
	assert.Equal(t, "teacher", claims["acc_type"])
	assert.Equal(t, user.MadrasaID.String(), claims["madrasa_id"])
	assert.Equal(t, now.Unix(), claims["iat"])
	assert.Equal(t, now.Add(accessTTLDefault).Unix(), claims["exp"])
}

func TestBuildRefreshClaims(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	claims := buildRefreshClaims(userID, now)
	assert.Equal(t, "refresh", claims["typ"])
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, now.Add(refreshTTLDefault).Unix(), claims["exp"])
	// refresh claims must not leak user profile data
	_, hasName := claims["user_name"]
	assert.False(t, hasName)
}

func TestComputeRefreshHash(t *testing.T) {
	h1 := computeRefreshHash("token-a", "secret-1")
	h2 := computeRefreshHash("token-a", "secret-1")
	require.Equal(t, h1, h2)
	assert.Len(t, h1, 32) // sha256

	assert.NotEqual(t, h1, computeRefreshHash("token-b", "secret-1"))
	assert.NotEqual(t, h1, computeRefreshHash("token-a", "secret-2"))
}

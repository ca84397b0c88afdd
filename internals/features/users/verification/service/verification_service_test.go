package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// 50 draws from a million values colliding every time would mean a broken RNG
	assert.Greater(t, len(seen), 1)
}

func TestHashCode(t *testing.T) {
	h := HashCode("123456")
	assert.Len(t, h, 64) // sha256 hex
	assert.Equal(t, h, HashCode("123456"))
	assert.NotEqual(t, h, HashCode("123457"))
	assert.NotEqual(t, "123456", h)
}

func TestCodeMatches(t *testing.T) {
	h := HashCode("042917")
	assert.True(t, CodeMatches(h, "042917"))
	assert.False(t, CodeMatches(h, "042918"))
	assert.False(t, CodeMatches("", "042917"))
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "vrf:register:+8801712345678", CodeKey(PurposeRegister, "+8801712345678"))
	assert.Equal(t, "vrf:att:reset:a@b.com", AttemptsKey(PurposeReset, "a@b.com"))
	assert.Equal(t, "vrf:ok:register:a@b.com", VerifiedKey(PurposeRegister, "a@b.com"))
	assert.Equal(t, "vrf:cd:a@b.com", CooldownKey("a@b.com"))
	assert.Equal(t, "vrf:q:a@b.com", QuotaKey("a@b.com"))
}

func TestIsValidPurpose(t *testing.T) {
	assert.True(t, IsValidPurpose(PurposeRegister))
	assert.True(t, IsValidPurpose(PurposeReset))
	assert.False(t, IsValidPurpose("login"))
	assert.False(t, IsValidPurpose(""))
}

func TestNilStoreDegrades(t *testing.T) {
	svc := NewVerificationService(nil)
	err := svc.Send(context.Background(), "a@b.com", PurposeRegister)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = svc.Verify(context.Background(), "a@b.com", PurposeRegister, "123456")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.IsVerified(context.Background(), "a@b.com", PurposeRegister)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

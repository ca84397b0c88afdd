package secure

import (
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madrasahku_backend/internals/configs"
)

func setTestKey(t *testing.T) {
	t.Helper()
	var k fernet.Key
	require.NoError(t, k.Generate())
	old := configs.FernetKey
	configs.FernetKey = k.Encode()
	t.Cleanup(func() { configs.FernetKey = old })
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	setTestKey(t)

	tok, err := Encrypt("+8801712345678")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.NotEqual(t, "+8801712345678", tok)

	assert.Equal(t, "+8801712345678", Decrypt(tok))
}

func TestEncryptEmptyIsNoop(t *testing.T) {
	setTestKey(t)
	tok, err := Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", tok)
}

func TestDecryptDegradesToEmpty(t *testing.T) {
	setTestKey(t)
	assert.Equal(t, "", Decrypt("not-a-fernet-token"))
	assert.Equal(t, "", Decrypt(""))
}

func TestDecryptWithWrongKey(t *testing.T) {
	setTestKey(t)
	tok, err := Encrypt("secret value")
	require.NoError(t, err)

	// rotate to a different key: old tokens must degrade, not error
	setTestKey(t)
	assert.Equal(t, "", Decrypt(tok))
}

func TestEncryptWithBadKey(t *testing.T) {
	old := configs.FernetKey
	configs.FernetKey = "invalid"
	t.Cleanup(func() { configs.FernetKey = old })

	_, err := Encrypt("x")
	assert.Error(t, err)
}

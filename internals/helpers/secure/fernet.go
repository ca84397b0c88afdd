package secure

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"madrasahku_backend/internals/configs"
)

// Sensitive person fields (guardian phone, national id) are stored as Fernet
// tokens so a leaked dump does not expose them. Tokens do not expire here:
// ttl 0 means decrypt accepts any age.

func key() (*fernet.Key, error) {
	k, err := fernet.DecodeKey(configs.FernetKey)
	if err != nil {
		return nil, fmt.Errorf("FERNET_KEY invalid: %w", err)
	}
	return k, nil
}

func Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	k, err := key()
	if err != nil {
		return "", err
	}
	tok, err := fernet.EncryptAndSign([]byte(plain), k)
	if err != nil {
		return "", err
	}
	return string(tok), nil
}

// Decrypt returns "" (not an error) for empty or undecryptable values so a
// bad row degrades to a blank field instead of a 500.
func Decrypt(token string) string {
	if token == "" {
		return ""
	}
	k, err := key()
	if err != nil {
		return ""
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), time.Duration(0), []*fernet.Key{k})
	if msg == nil {
		return ""
	}
	return string(msg)
}

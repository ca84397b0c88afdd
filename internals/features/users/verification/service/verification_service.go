package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	helper "madrasahku_backend/internals/helpers"
	"madrasahku_backend/internals/helpers/mailer"
	"madrasahku_backend/internals/helpers/sms"
)

/* ==========================
   Const & policy
========================== */

const (
	PurposeRegister = "register"
	PurposeReset    = "reset"

	CodeLength  = 6
	CodeTTL     = 10 * time.Minute
	VerifiedTTL = 30 * time.Minute // window to finish registration after verifying

	MaxAttempts    = 5
	ResendCooldown = 60 * time.Second
	HourlyQuota    = 5
)

var (
	ErrStoreUnavailable = errors.New("verification store unavailable")
	ErrCooldown         = errors.New("wait before requesting another code")
	ErrQuotaExceeded    = errors.New("too many codes requested for this contact, try later")
	ErrCodeExpired      = errors.New("code expired")
	ErrCodeMismatch     = errors.New("incorrect code")
	ErrTooManyAttempts  = errors.New("too many wrong attempts, request a new code")
	ErrBadPurpose       = errors.New("unknown verification purpose")
)

func IsValidPurpose(p string) bool {
	return p == PurposeRegister || p == PurposeReset
}

/* ==========================
   Pure helpers (key building, code gen, hashing)
========================== */

// GenerateCode returns a 6-digit numeric OTP with leading zeros preserved.
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}

// HashCode stores codes hashed so a dumped cache never reveals live OTPs.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func CodeMatches(storedHash, code string) bool {
	h := HashCode(code)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(h)) == 1
}

func CodeKey(purpose, contact string) string     { return "vrf:" + purpose + ":" + contact }
func AttemptsKey(purpose, contact string) string { return "vrf:att:" + purpose + ":" + contact }
func VerifiedKey(purpose, contact string) string { return "vrf:ok:" + purpose + ":" + contact }
func CooldownKey(contact string) string          { return "vrf:cd:" + contact }
func QuotaKey(contact string) string             { return "vrf:q:" + contact }

/* ==========================
   Service
========================== */

type VerificationService struct {
	RDB *redis.Client
}

func NewVerificationService(rdb *redis.Client) *VerificationService {
	return &VerificationService{RDB: rdb}
}

// Send generates, stores and delivers a code to the contact (phone → SMS via
// Textbelt, email → Sendgrid). Enforces the per-contact cooldown and hourly
// quota before anything is sent.
func (s *VerificationService) Send(ctx context.Context, contact, purpose string) error {
	if s.RDB == nil {
		return ErrStoreUnavailable
	}
	if !IsValidPurpose(purpose) {
		return ErrBadPurpose
	}

	// cooldown
	if n, err := s.RDB.Exists(ctx, CooldownKey(contact)).Result(); err != nil {
		return fmt.Errorf("keydb: %w", err)
	} else if n > 0 {
		return ErrCooldown
	}

	// hourly quota (counter with TTL set on first send)
	sent, err := s.RDB.Incr(ctx, QuotaKey(contact)).Result()
	if err != nil {
		return fmt.Errorf("keydb: %w", err)
	}
	if sent == 1 {
		_ = s.RDB.Expire(ctx, QuotaKey(contact), time.Hour).Err()
	}
	if sent > HourlyQuota {
		return ErrQuotaExceeded
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	pipe := s.RDB.TxPipeline()
	pipe.Set(ctx, CodeKey(purpose, contact), HashCode(code), CodeTTL)
	pipe.Del(ctx, AttemptsKey(purpose, contact))
	pipe.Set(ctx, CooldownKey(contact), "1", ResendCooldown)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("keydb: %w", err)
	}

	msg := fmt.Sprintf("Your Madrasahku verification code is %s. It expires in %d minutes.",
		code, int(CodeTTL.Minutes()))
	if helper.IsPhone(contact) {
		return sms.Send(contact, msg)
	}
	return mailer.Send(contact, "Madrasahku verification code", msg)
}

// Verify checks a submitted code. On success the code is consumed and a
// verified flag is left behind for registration / password reset to consume.
func (s *VerificationService) Verify(ctx context.Context, contact, purpose, code string) error {
	if s.RDB == nil {
		return ErrStoreUnavailable
	}
	if !IsValidPurpose(purpose) {
		return ErrBadPurpose
	}

	storedHash, err := s.RDB.Get(ctx, CodeKey(purpose, contact)).Result()
	if err == redis.Nil {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("keydb: %w", err)
	}

	attempts, err := s.RDB.Incr(ctx, AttemptsKey(purpose, contact)).Result()
	if err != nil {
		return fmt.Errorf("keydb: %w", err)
	}
	if attempts == 1 {
		_ = s.RDB.Expire(ctx, AttemptsKey(purpose, contact), CodeTTL).Err()
	}
	if attempts > MaxAttempts {
		// exhausted: kill the code so further guesses are pointless
		_ = s.RDB.Del(ctx, CodeKey(purpose, contact)).Err()
		return ErrTooManyAttempts
	}

	if !CodeMatches(storedHash, code) {
		return ErrCodeMismatch
	}

	pipe := s.RDB.TxPipeline()
	pipe.Del(ctx, CodeKey(purpose, contact), AttemptsKey(purpose, contact))
	pipe.Set(ctx, VerifiedKey(purpose, contact), "1", VerifiedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("keydb: %w", err)
	}
	return nil
}

// IsVerified reports whether the contact holds a live verified flag.
func (s *VerificationService) IsVerified(ctx context.Context, contact, purpose string) (bool, error) {
	if s.RDB == nil {
		return false, ErrStoreUnavailable
	}
	n, err := s.RDB.Exists(ctx, VerifiedKey(purpose, contact)).Result()
	if err != nil {
		return false, fmt.Errorf("keydb: %w", err)
	}
	return n > 0, nil
}

// ConsumeVerified atomically takes the verified flag so it cannot be reused.
func (s *VerificationService) ConsumeVerified(ctx context.Context, contact, purpose string) (bool, error) {
	if s.RDB == nil {
		return false, ErrStoreUnavailable
	}
	_, err := s.RDB.GetDel(ctx, VerifiedKey(purpose, contact)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("keydb: %w", err)
	}
	return true, nil
}

package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for production hashes.
const defaultCost = 12

// MaxPasswordBytes is bcrypt's input limit; longer inputs would be silently
// truncated, so Hash rejects them.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned by Verify when the password is wrong.
var ErrPasswordMismatch = errors.New("auth: invalid password")

// PasswordService hashes and verifies admin passwords with bcrypt.
type PasswordService struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom cost.
// Tests in other packages pass bcrypt.MinCost (4) to keep hashing fast.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", MaxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns nil if plaintext matches hash and ErrPasswordMismatch if it
// does not. Any other error means the stored hash is unusable.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

// VerifyNothing spends the same bcrypt work as Verify against a throwaway
// hash. Login calls it for unknown usernames so response time does not
// reveal whether an account exists.
func (p *PasswordService) VerifyNothing(plaintext string) {
	p.dummyOnce.Do(func() {
		p.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), p.cost)
	})
	_ = bcrypt.CompareHashAndPassword(p.dummyHash, []byte(plaintext))
}

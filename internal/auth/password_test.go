package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

func TestProperty_HashIsSaltedAndVerifiable(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("same password hashes differently and both digests verify", prop.ForAll(
		func(password string) bool {
			first, err := hasher.Hash(password)
			if err != nil {
				t.Logf("FAIL: hash error: %v", err)
				return false
			}
			second, err := hasher.Hash(password)
			if err != nil {
				return false
			}

			if first == second || first == password {
				t.Logf("FAIL: digest not salted or stored as plaintext")
				return false
			}

			ok1, err1 := hasher.Verify(password, first)
			ok2, err2 := hasher.Verify(password, second)
			return ok1 && ok2 && err1 == nil && err2 == nil
		},
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{5,30}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestVerifyWrongPassword(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	ok, err := hasher.Verify("battery-staple", digest)
	if err != nil {
		t.Fatalf("Verify() mismatch should not error, got %v", err)
	}
	if ok {
		t.Error("Verify() = true for wrong password")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	ok, err := hasher.Verify("whatever", "not-a-bcrypt-digest")
	if err == nil {
		t.Error("Verify() expected error for malformed digest")
	}
	if ok {
		t.Error("Verify() = true for malformed digest")
	}
}

func TestHashRejectsPasswordsOverBcryptLimit(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	if _, err := hasher.Hash(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Fatalf("Hash() at the limit error: %v", err)
	}

	for _, password := range []string{strings.Repeat("a", MaxPasswordBytes+1), strings.Repeat("€", 30)} {
		if _, err := hasher.Hash(password); !errors.Is(err, ErrPasswordTooLong) {
			t.Errorf("Hash(%d bytes) error = %v, want ErrPasswordTooLong", len(password), err)
		}
		ok, err := hasher.Verify(password, "$2a$04$abcdefghijklmnopqrstuu")
		if ok || err != nil {
			t.Errorf("Verify(%d bytes) = %v, %v; want false, nil", len(password), ok, err)
		}
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	if h := NewPasswordHasher(0); h.cost != DefaultBcryptCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultBcryptCost)
	}
	if h := NewPasswordHasher(bcrypt.MaxCost + 1); h.cost != DefaultBcryptCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultBcryptCost)
	}
}

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret)
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(""); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("NewTokenService(\"\") error = %v, want ErrMissingSecret", err)
	}
}

func TestProperty_IssuedTokensVerify(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	properties := gopter.NewProperties(nil)

	properties.Property("verify returns the issued user id", prop.ForAll(
		func(userID string) bool {
			token, err := svc.Issue(userID)
			if err != nil {
				return false
			}
			claims, err := svc.Verify(token)
			if err != nil {
				t.Logf("FAIL: verify error: %v", err)
				return false
			}
			return claims.UserID == userID && claims.IssuedAt != nil && claims.ExpiresAt == nil
		},
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := newTestTokenService(t, "correct-secret").Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = newTestTokenService(t, "wrong-secret").Verify(token)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")
	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	other, err := svc.Issue("user-2")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	// Splice user-2's payload under user-1's signature.
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(forged)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	for _, token := range []string{"", "not-a-valid-token", "a.b", "a.b.c"} {
		_, err := svc.Verify(token)
		if !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Verify(%q) error = %v, want ErrMalformedToken", token, err)
		}
	}
}

func TestVerifyMissingUserID(t *testing.T) {
	secret := "test-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "someone"})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = newTestTokenService(t, secret).Verify(signed)
	if !errors.Is(err, ErrMalformedToken) {
		t.Errorf("Verify() error = %v, want ErrMalformedToken", err)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	secret := "test-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: "user-1"})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := newTestTokenService(t, secret).Verify(signed); err == nil {
		t.Error("Verify() expected error for HS512 token")
	}
}

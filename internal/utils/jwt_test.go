package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "STAFF", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(at.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Errorf("expiry %v not ~15m out", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "STAFF" {
		t.Errorf("role = %v, want STAFF", claims["role"])
	}
}

func TestNewAccessTokenWrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "USER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil && tok.Valid {
		t.Error("token verified with the wrong secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw length = %d, want 96 hex chars", len(a.Raw))
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens are identical")
	}
	if remaining := time.Until(a.Exp); remaining < 29*24*time.Hour || remaining > 31*24*time.Hour {
		t.Errorf("expiry %v not ~30d out", a.Exp)
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h := HashRefreshRaw("some-token")
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64", len(h))
	}
	if h != HashRefreshRaw("some-token") {
		t.Error("hash is not deterministic")
	}
	if h == HashRefreshRaw("other-token") {
		t.Error("distinct tokens hash equal")
	}
	if h == "some-token" {
		t.Error("hash echoes the input")
	}
}

package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken_Claims(t *testing.T) {
	at, err := NewAccessToken("test-secret", 42, "STUDENT", "Alice", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if claims["role"] != "STUDENT" {
		t.Errorf("role = %v, want STUDENT", claims["role"])
	}
	if claims["name"] != "Alice" {
		t.Errorf("name = %v, want Alice", claims["name"])
	}
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "ADMIN", "Root", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil && tok.Valid {
		t.Error("token signed with secret-a validated against secret-b")
	}
}

func TestNewRefreshToken_UniqueAndHashable(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens share the same raw value")
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96 hex chars", len(a.Raw))
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Error("HashRefreshRaw is not deterministic")
	}
	if HashRefreshRaw(a.Raw) == HashRefreshRaw(b.Raw) {
		t.Error("different tokens hash to the same value")
	}
	if len(HashRefreshRaw(a.Raw)) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(HashRefreshRaw(a.Raw)))
	}
}

package jwtPkg

import (
	"testing"
	"time"
)

func TestSignVerifyExpiresAt(t *testing.T) {
	token, exp, err := Sign("secret", map[string]interface{}{"id": "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	claims, err := Verify("secret", token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims["id"] != "u1" {
		t.Errorf("id claim = %v, want u1", claims["id"])
	}

	got, err := ExpiresAt(token)
	if err != nil {
		t.Fatalf("ExpiresAt() error = %v", err)
	}
	if got.Unix() != exp {
		t.Errorf("ExpiresAt() = %d, want %d", got.Unix(), exp)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, _ := Sign("secret", nil, time.Hour)
	if _, err := Verify("other", token); err == nil {
		t.Fatal("Verify() with wrong secret succeeded")
	}
}

func TestExpiresAtRejectsGarbage(t *testing.T) {
	if _, err := ExpiresAt("not-a-token"); err == nil {
		t.Fatal("ExpiresAt(garbage) succeeded")
	}
}

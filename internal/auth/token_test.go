// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-with-at-least-32-bytes!!"

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Hour)

	token, exp, err := ti.Issue(7, "admin@textura.local", "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry %v is in the past", exp)
	}

	claims, err := ti.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID() != 7 || claims.Email != "admin@textura.local" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token ID should be set")
	}
}

func TestTokenExpired(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Minute)
	ti.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := ti.Issue(1, "a@b.c", "admin")
	if err != nil {
		t.Fatal(err)
	}

	ti.now = time.Now
	if _, err := ti.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, _ := NewTokenIssuer(testSecret, time.Hour).Issue(1, "a@b.c", "admin")
	other := NewTokenIssuer("another-secret-with-at-least-32-bytes", time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "textura",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenIssuer(testSecret, time.Hour).Parse(unsigned); err == nil {
		t.Error("alg=none token accepted")
	}
}

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mockmate/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:       "u1",
		Email:    "user@example.com",
		FullName: "Test User",
		Role:     &domain.Role{ID: "r1", Name: domain.RoleCandidate},
	}
}

func TestJWTService_GenerateParse(t *testing.T) {
	svc := NewJWTService("secret", "mockmate", "mockmate-web")

	token, err := svc.Generate(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "u1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.FullName != "Test User" || claims.Role != domain.RoleCandidate {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RoleDefaultsToUser(t *testing.T) {
	svc := NewJWTService("secret", "mockmate", "mockmate-web")
	user := testUser()
	user.Role = nil

	token, err := svc.Generate(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != "User" {
		t.Fatalf("expected role User when unresolved, got %q", claims.Role)
	}
}

func TestJWTService_Expiry(t *testing.T) {
	svc := NewJWTService("secret", "mockmate", "mockmate-web")
	svc.ttl = -time.Minute

	token, err := svc.Generate(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Parse(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_RejectsWrongIssuerAndAudience(t *testing.T) {
	issue := func(issuer, audience string) string {
		other := NewJWTService("secret", issuer, audience)
		token, err := other.Generate(testUser())
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return token
	}

	svc := NewJWTService("secret", "mockmate", "mockmate-web")
	if _, err := svc.Parse(issue("someone-else", "mockmate-web")); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}
	if _, err := svc.Parse(issue("mockmate", "other-app")); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong audience, got %v", err)
	}
}

func TestJWTService_RejectsWrongSecretAndAlg(t *testing.T) {
	svc := NewJWTService("secret", "mockmate", "mockmate-web")

	other := NewJWTService("other-secret", "mockmate", "mockmate-web")
	token, err := other.Generate(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Parse(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong secret, got %v", err)
	}

	now := time.Now().UTC()
	hs256 := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mockmate",
			Audience:  jwt.ClaimStrings{"mockmate-web"},
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := hs256.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Parse(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for HS256 token, got %v", err)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", "mockmate", "mockmate-web")

	if _, err := svc.Generate(testUser()); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
	if _, err := svc.Parse("anything"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

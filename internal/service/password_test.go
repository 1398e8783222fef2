package service

import (
	"strings"
	"testing"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt encoding, got %q", hash)
	}
	if !hasher.Verify("secret1", hash) {
		t.Fatalf("expected password to verify")
	}
	if hasher.Verify("wrong", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcryptHasher_SaltedPerHash(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salts per hash")
	}
}

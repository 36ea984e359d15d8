package helpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not be the plain text")
	}
	if !h.Compare(hash, "s3cret-pass") {
		t.Fatal("expected match")
	}
	if h.Compare(hash, "other") {
		t.Fatal("unexpected match")
	}
}

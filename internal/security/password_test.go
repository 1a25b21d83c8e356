package security

import (
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !hasher.Verify("correct horse battery staple", hash) {
		t.Error("Verify() = false for matching password")
	}
	if hasher.Verify("wrong password", hash) {
		t.Error("Verify() = true for non-matching password")
	}
}

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestPasswordHasher_Verify_InvalidHash(t *testing.T) {
	hasher := NewPasswordHasher()
	if hasher.Verify("anything", "not-a-bcrypt-hash") {
		t.Error("Verify() = true for malformed hash")
	}
}

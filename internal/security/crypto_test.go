package security

import (
	"testing"
)

func TestFieldCipher_RoundTrip(t *testing.T) {
	cipher, err := NewFieldCipher("test-field-secret")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}

	encrypted, err := cipher.Encrypt("42")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if encrypted == "42" {
		t.Fatal("Encrypt() returned the plaintext")
	}

	decrypted, err := cipher.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if decrypted != "42" {
		t.Errorf("Decrypt() = %v, want 42", decrypted)
	}
}

func TestFieldCipher_CiphertextsDiffer(t *testing.T) {
	cipher, err := NewFieldCipher("test-field-secret")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}

	c1, err := cipher.Encrypt("42")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	c2, err := cipher.Encrypt("42")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if c1 == c2 {
		t.Error("two encryptions of the same value should differ")
	}
}

func TestFieldCipher_Decrypt_Tampered(t *testing.T) {
	cipher, err := NewFieldCipher("test-field-secret")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short", "AAAA"},
		{"garbage", "YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cipher.Decrypt(tt.input); err != ErrInvalidCiphertext {
				t.Errorf("Decrypt() error = %v, want %v", err, ErrInvalidCiphertext)
			}
		})
	}
}

func TestFieldCipher_WrongKey(t *testing.T) {
	c1, err := NewFieldCipher("secret-one")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}
	c2, err := NewFieldCipher("secret-two")
	if err != nil {
		t.Fatalf("NewFieldCipher() error = %v", err)
	}

	encrypted, err := c1.Encrypt("42")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if _, err := c2.Decrypt(encrypted); err != ErrInvalidCiphertext {
		t.Errorf("Decrypt() error = %v, want %v", err, ErrInvalidCiphertext)
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"long token", "eyJhbGciOiJIUzI1NiJ9.abcd1234", "...1234"},
		{"short token", "abc", "****"},
		{"empty token", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskToken(tt.token); got != tt.expected {
				t.Errorf("MaskToken() = %v, want %v", got, tt.expected)
			}
		})
	}
}

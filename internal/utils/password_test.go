package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals the plaintext")
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("VerifyPassword accepted a wrong password")
	}
	if VerifyPassword("not-a-bcrypt-hash", "s3cret-pass") {
		t.Error("VerifyPassword accepted a malformed hash")
	}
}

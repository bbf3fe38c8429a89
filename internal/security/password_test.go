package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash should not equal the plaintext")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("correct horse battery staple", "not-a-bcrypt-hash") {
		t.Error("garbage hash should not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("samepassword")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

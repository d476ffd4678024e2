package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[1] != "argon2id" {
		t.Errorf("Expected argon2id algorithm, got: %s", parts[1])
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestHashPasswordWith_FixtureParams(t *testing.T) {
	t.Parallel()

	hash, err := HashPasswordWith(FixtureParams, "admin123")
	if err != nil {
		t.Fatalf("HashPasswordWith failed: %v", err)
	}
	if !strings.Contains(hash, "$m=8192,t=1,p=1$") {
		t.Errorf("unexpected params in %s", hash)
	}

	match, err := VerifyPassword("admin123", hash)
	if err != nil || !match {
		t.Errorf("VerifyPassword() = %v, %v; want true, nil", match, err)
	}
}

func TestHashPassword_Uniqueness(t *testing.T) {
	t.Parallel()

	hash1, _ := HashPasswordWith(FixtureParams, "same")
	hash2, _ := HashPasswordWith(FixtureParams, "same")

	// Different salts.
	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	t.Parallel()

	hash, err := HashPasswordWith(FixtureParams, "admin123")
	if err != nil {
		t.Fatalf("HashPasswordWith failed: %v", err)
	}

	match, err := VerifyPassword("admin124", hash)
	if err != nil {
		t.Fatalf("VerifyPassword should not return error for wrong password: %v", err)
	}
	if match {
		t.Error("Wrong password should not match")
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"empty", "", ErrInvalidHash},
		{"wrong format", "not-a-hash", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash", ErrInvalidHash},
		{"missing parts", "$argon2id$v=19$m=65536", ErrInvalidHash},
		{"bad params", "$argon2id$v=19$memory$c29tZXNhbHQ$c29tZWhhc2g", ErrInvalidHash},
		{"incompatible version", "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl", ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, err := VerifyPassword("password", tt.hash)
			if err != tt.wantErr {
				t.Errorf("VerifyPassword error = %v, want %v", err, tt.wantErr)
			}
			if match {
				t.Error("invalid hash must not match")
			}
		})
	}
}

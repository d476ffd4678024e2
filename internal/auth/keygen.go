package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Key format: voc_{env}_{secret}
// Example: voc_live_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const KeySecretLen = 32 // hex encoded 16 bytes

// Environment indicators for key prefix.
const (
	EnvLive = "live"
	EnvTest = "test"
)

var (
	// ErrInvalidKeyFormat indicates the key format is invalid.
	ErrInvalidKeyFormat = errors.New("invalid API key format")
	keyFormatRegex      = regexp.MustCompile(`^voc_(live|test)_([a-f0-9]{32})$`)
)

// GenerateAPIKey creates a new plaintext key for env. Unknown envs get live.
func GenerateAPIKey(env string) (string, error) {
	if env != EnvLive && env != EnvTest {
		env = EnvLive
	}

	secretBytes := make([]byte, KeySecretLen/2)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}

	return fmt.Sprintf("voc_%s_%s", env, hex.EncodeToString(secretBytes)), nil
}

// ParsedKey contains the parsed parts of an API key.
type ParsedKey struct {
	Env    string
	Secret string
}

// ParseAPIKey extracts the components from a plaintext API key.
func ParseAPIKey(key string) (*ParsedKey, error) {
	matches := keyFormatRegex.FindStringSubmatch(key)
	if matches == nil {
		return nil, ErrInvalidKeyFormat
	}
	return &ParsedKey{Env: matches[1], Secret: matches[2]}, nil
}

// ValidateKeyFormat checks if the key matches the expected format.
func ValidateKeyFormat(key string) bool {
	return keyFormatRegex.MatchString(key)
}

// EnvFor maps an application environment to a key environment.
func EnvFor(appEnv string) string {
	if appEnv == "production" {
		return EnvLive
	}
	return EnvTest
}

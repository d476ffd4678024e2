package model

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Permission constants for API keys.
const (
	PermissionRead  = "read"
	PermissionWrite = "write"
)

// ValidPermissions contains all valid permission values.
var ValidPermissions = []string{PermissionRead, PermissionWrite}

// maskVisible is how many characters of a key stay visible on each side.
const maskVisible = 4

// APIKey represents an API key entity.
// Key is a secret: never log it, never display it in full.
type APIKey struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Key         string     `json:"key"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	Permissions []string   `json:"permissions"`
}

// HasPermission checks if the key grants a permission.
func (k *APIKey) HasPermission(p string) bool {
	return slices.Contains(k.Permissions, p)
}

// Masked returns the key with everything but its prefix and suffix hidden.
func (k APIKey) Masked() string {
	return MaskSecret(k.Key)
}

// LogValue keeps the secret out of structured logs.
func (k APIKey) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", k.ID),
		slog.String("name", k.Name),
		slog.String("key", k.Masked()),
		slog.Bool("is_active", k.IsActive),
	)
}

// MaskSecret shows the leading segment (up to the last underscore, e.g.
// "voc_live_") plus four characters on each side.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	prefix := ""
	rest := secret
	if i := strings.LastIndex(secret, "_"); i >= 0 && i < len(secret)-1 {
		prefix, rest = secret[:i+1], secret[i+1:]
	}

	if len(rest) <= 2*maskVisible {
		return prefix + strings.Repeat("•", len(rest))
	}
	return prefix + rest[:maskVisible] + "••••" + rest[len(rest)-maskVisible:]
}

// APIKeyCreate is the request body for creating a key.
type APIKeyCreate struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// APIKeyUpdate names the key fields a caller intends to change.
type APIKeyUpdate struct {
	Name        *string   `json:"name,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

// Apply returns a copy of k with only the fields named in upd changed.
func (k APIKey) Apply(upd APIKeyUpdate) APIKey {
	if upd.Name != nil {
		k.Name = *upd.Name
	}
	if upd.IsActive != nil {
		k.IsActive = *upd.IsActive
	}
	if upd.Permissions != nil {
		k.Permissions = slices.Clone(*upd.Permissions)
	}
	return k
}

package model

import "time"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser is the identity attached to a session token.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// RoleAdmin is the only role the console grants.
const RoleAdmin = "admin"

// UserProfile is the signed-in administrator's own account.
type UserProfile struct {
	UserID        FlexID    `json:"user_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	IsActive      bool      `json:"is_active"`
	IsAdmin       bool      `json:"is_admin"`
	EmailVerified bool      `json:"email_verified"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Notification is an in-app notice for the signed-in administrator.
type Notification struct {
	NotificationID FlexID         `json:"notification_id"`
	UserID         FlexID         `json:"user_id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      time.Time      `json:"created_at"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/voclio/admin/internal/model"
)

// Credential is the single admin login accepted by the fixture server.
// Only a hash of the password is kept.
type Credential struct {
	email string
	hash  string
	token string
	user  model.SessionUser
}

// NewCredential hashes password with FixtureParams.
func NewCredential(email, password, token string, user model.SessionUser) (*Credential, error) {
	if email == "" || password == "" || token == "" {
		return nil, fmt.Errorf("credential: email, password and token are required")
	}
	hash, err := HashPasswordWith(FixtureParams, password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	user.Email = email
	return &Credential{email: email, hash: hash, token: token, user: user}, nil
}

// Login checks an email/password pair and returns the session on success.
// Email comparison ignores case and surrounding space.
func (c *Credential) Login(email, password string) (model.LoginResult, bool) {
	emailOK := strings.EqualFold(strings.TrimSpace(email), c.email)
	passOK, err := VerifyPassword(password, c.hash)
	if err != nil || !emailOK || !passOK {
		return model.LoginResult{}, false
	}
	return model.LoginResult{Token: c.token, User: c.user}, true
}

// Authenticate reports whether token is the issued session token and
// returns its user.
func (c *Credential) Authenticate(token string) (model.SessionUser, bool) {
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.token)) != 1 {
		return model.SessionUser{}, false
	}
	return c.user, true
}

package mapper

import (
	"encoding/json"
	"time"

	"github.com/voclio/admin/internal/envelope"
	"github.com/voclio/admin/internal/model"
)

type backendAPIKey struct {
	ID          model.FlexID `json:"id"`
	Name        string       `json:"name"`
	Key         string       `json:"key"`
	IsActive    *bool        `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	LastUsed    *time.Time   `json:"last_used"`
	Permissions []string     `json:"permissions"`
}

// APIKey maps a single API key response.
func APIKey(p envelope.Payload) (model.APIKey, error) {
	raw, err := p.Unwrap()
	if err != nil {
		return model.APIKey{}, err
	}
	return APIKeyItem(raw)
}

// APIKeyItem maps one raw API key object.
func APIKeyItem(raw json.RawMessage) (model.APIKey, error) {
	var b backendAPIKey
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.APIKey{}, mapErr("api key", "decode", err)
	}
	if b.ID == "" {
		return model.APIKey{}, mapErr("api key", "missing id", nil)
	}

	k := model.APIKey{
		ID:          b.ID.String(),
		Name:        b.Name,
		Key:         b.Key,
		IsActive:    true,
		CreatedAt:   b.CreatedAt,
		LastUsed:    b.LastUsed,
		Permissions: b.Permissions,
	}
	if b.IsActive != nil {
		k.IsActive = *b.IsActive
	}
	if k.Permissions == nil {
		k.Permissions = []string{}
	}
	return k, nil
}

type backendLog struct {
	ID           model.FlexID       `json:"id"`
	LogID        model.FlexID       `json:"log_id"`
	ActivityType model.ActivityType `json:"activity_type"`
	Severity     model.Severity     `json:"severity"`
	Message      string             `json:"message"`
	UserID       *model.FlexID      `json:"user_id"`
	UserEmail    string             `json:"user_email"`
	IPAddress    string             `json:"ip_address"`
	Metadata     map[string]any     `json:"metadata"`
	CreatedAt    time.Time          `json:"created_at"`
}

// LogItem maps one raw log record. Severity defaults to info.
func LogItem(raw json.RawMessage) (model.Log, error) {
	var b backendLog
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.Log{}, mapErr("log", "decode", err)
	}

	l := model.Log{
		ID:           firstID(&b.ID, &b.LogID),
		ActivityType: b.ActivityType,
		Severity:     b.Severity,
		Message:      b.Message,
		UserEmail:    b.UserEmail,
		IPAddress:    b.IPAddress,
		Metadata:     b.Metadata,
		CreatedAt:    b.CreatedAt,
	}
	if l.ID == "" {
		return model.Log{}, mapErr("log", "missing id", nil)
	}
	if l.Severity == "" {
		l.Severity = model.SeverityInfo
	}
	if b.UserID != nil && *b.UserID != "" {
		id := b.UserID.String()
		l.UserID = &id
	}
	return l, nil
}

type backendConfig struct {
	ID          model.FlexID      `json:"id"`
	Key         string            `json:"key"`
	Value       model.ConfigValue `json:"value"`
	Type        model.ConfigType  `json:"type"`
	Description string            `json:"description"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ConfigItem maps one raw config entry and checks its type against its value.
func ConfigItem(raw json.RawMessage) (model.AppConfig, error) {
	var b backendConfig
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.AppConfig{}, mapErr("config", "decode", err)
	}
	if b.Key == "" {
		return model.AppConfig{}, mapErr("config", "missing key", nil)
	}

	c := model.AppConfig{
		ID:          b.ID.String(),
		Key:         b.Key,
		Value:       b.Value,
		Type:        b.Type,
		Description: b.Description,
		UpdatedAt:   b.UpdatedAt,
	}
	if err := c.Validate(); err != nil {
		return model.AppConfig{}, mapErr("config", "type check", err)
	}
	return c, nil
}

// Configs maps the config list. The list may be the payload itself or
// sit under a "configs" member.
func Configs(p envelope.Payload) ([]model.AppConfig, error) {
	raw, err := p.Unwrap()
	if err != nil {
		return nil, err
	}

	if isObject(raw) {
		var wrapped struct {
			Configs json.RawMessage `json:"configs"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, mapErr("config", "decode", err)
		}
		raw = wrapped.Configs
	}
	if !isArray(raw) {
		return nil, mapErr("config", "missing config array", nil)
	}
	return items(raw, "config", ConfigItem)
}

// Config maps a single config entry response.
func Config(p envelope.Payload) (model.AppConfig, error) {
	raw, err := p.Unwrap()
	if err != nil {
		return model.AppConfig{}, err
	}
	return ConfigItem(raw)
}

type backendLogin struct {
	Token string `json:"token"`
	User  *struct {
		ID     *model.FlexID `json:"id"`
		UserID *model.FlexID `json:"user_id"`
		Email  string        `json:"email"`
		Name   string        `json:"name"`
		Role   string        `json:"role"`
	} `json:"user"`
	Tokens *struct {
		AccessToken string `json:"access_token"`
	} `json:"tokens"`
}

// Login maps either {token, user} or the backend's
// {success, data: {user: {user_id, ...}, tokens: {access_token}}}.
func Login(p envelope.Payload) (model.LoginResult, error) {
	raw, err := p.Unwrap()
	if err != nil {
		return model.LoginResult{}, err
	}

	var b backendLogin
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.LoginResult{}, mapErr("login", "decode", err)
	}

	res := model.LoginResult{Token: b.Token}
	if res.Token == "" && b.Tokens != nil {
		res.Token = b.Tokens.AccessToken
	}
	if res.Token == "" {
		return model.LoginResult{}, mapErr("login", "missing token", nil)
	}
	if b.User == nil {
		return model.LoginResult{}, mapErr("login", "missing user", nil)
	}

	res.User = model.SessionUser{
		ID:    firstID(b.User.ID, b.User.UserID),
		Email: b.User.Email,
		Name:  b.User.Name,
		Role:  b.User.Role,
	}
	if res.User.Role == "" {
		res.User.Role = model.RoleAdmin
	}
	return res, nil
}

package model

import "time"

// Severity is the criticality of a log record.
type Severity string

// Severities in ascending criticality.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Rank orders severities; unknown values rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is as critical as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ActivityType classifies a log record. The set is open.
type ActivityType string

// Known activity types.
const (
	ActivityLogin        ActivityType = "login"
	ActivityLogout       ActivityType = "logout"
	ActivityAPICall      ActivityType = "api_call"
	ActivityConfigChange ActivityType = "config_change"
	ActivityUserUpdate   ActivityType = "user_update"
)

// Log is an activity or audit record.
type Log struct {
	ID           string         `json:"id"`
	ActivityType ActivityType   `json:"activity_type"`
	Severity     Severity       `json:"severity"`
	Message      string         `json:"message"`
	UserID       *string        `json:"user_id"`
	UserEmail    string         `json:"user_email,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

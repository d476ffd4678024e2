// Package fixture holds the sample datasets served by the mock server and
// by the client's fixture fallback. Every accessor returns a fresh copy.
package fixture

import (
	"fmt"
	"time"

	"github.com/voclio/admin/internal/model"
)

// Admin login served by the mock server.
const (
	AdminEmail    = "admin@test.com"
	AdminPassword = "admin123"
	AdminToken    = "test_admin_token_12345"
)

// AdminUser is the session identity returned on login.
func AdminUser() model.SessionUser {
	return model.SessionUser{ID: "0", Email: AdminEmail, Name: "Test Admin", Role: model.RoleAdmin}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("fixture: bad timestamp %q", s))
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func user(id, email, name string, tier model.SubscriptionTier, active bool, created, lastLogin string, calls int) model.User {
	return model.User{
		ID:               id,
		Email:            email,
		Name:             name,
		SubscriptionTier: tier,
		IsActive:         active,
		CreatedAt:        ts(created),
		UpdatedAt:        ts(created),
		LastLogin:        tsp(lastLogin),
		APICallsCount:    intp(calls),
	}
}

// Users returns the eight sample accounts. Three are on the pro tier.
func Users() []model.User {
	john := user("1", "john@example.com", "John Doe", model.TierPro, true, "2025-01-01T10:00:00Z", "2025-01-12T08:30:00Z", 1250)
	john.Tasks = []model.Task{
		{ID: "t1", Title: "Complete onboarding", Description: "Finish the user onboarding flow", Status: model.TaskCompleted, Priority: model.PriorityHigh, CreatedAt: ts("2025-01-05T10:00:00Z"), CompletedAt: tsp("2025-01-06T14:00:00Z")},
		{ID: "t2", Title: "Review API documentation", Description: "Go through the API docs", Status: model.TaskInProgress, Priority: model.PriorityMedium, CreatedAt: ts("2025-01-10T09:00:00Z")},
		{ID: "t3", Title: "Set up webhooks", Status: model.TaskPending, Priority: model.PriorityLow, CreatedAt: ts("2025-01-11T11:00:00Z")},
	}
	john.Notes = []model.Note{
		{ID: "n1", Title: "VIP Customer", Content: "High-value customer, prioritize support requests. Has been with us since beta.", IsPinned: true, CreatedAt: ts("2025-01-02T10:00:00Z"), UpdatedAt: ts("2025-01-02T10:00:00Z")},
		{ID: "n2", Title: "Feature Request", Content: "Requested bulk export feature for Q1 2025", CreatedAt: ts("2025-01-08T15:00:00Z"), UpdatedAt: ts("2025-01-08T15:00:00Z")},
	}

	jane := user("2", "jane@example.com", "Jane Smith", model.TierEnterprise, true, "2024-12-15T14:00:00Z", "2025-01-11T16:45:00Z", 3420)
	jane.Tasks = []model.Task{
		{ID: "t4", Title: "Migrate to new API version", Status: model.TaskInProgress, Priority: model.PriorityUrgent, CreatedAt: ts("2025-01-09T10:00:00Z")},
	}
	jane.Notes = []model.Note{
		{ID: "n3", Title: "Enterprise Deal", Content: "Signed 2-year enterprise contract. Account manager: Sarah", IsPinned: true, CreatedAt: ts("2024-12-15T14:00:00Z"), UpdatedAt: ts("2024-12-15T14:00:00Z")},
	}

	bob := user("3", "bob@example.com", "Bob Wilson", model.TierBasic, false, "2024-11-20T09:00:00Z", "2024-12-01T11:00:00Z", 89)
	bob.Notes = []model.Note{
		{ID: "n4", Title: "Churned User", Content: "Left due to pricing concerns. Might return with discount offer.", CreatedAt: ts("2024-12-05T10:00:00Z"), UpdatedAt: ts("2024-12-05T10:00:00Z")},
	}

	alice := user("4", "alice@example.com", "Alice Brown", model.TierFree, true, "2025-01-05T12:00:00Z", "2025-01-10T09:15:00Z", 45)
	alice.Tasks = []model.Task{
		{ID: "t5", Title: "Upgrade to Pro", Description: "Considering upgrade", Status: model.TaskPending, Priority: model.PriorityMedium, CreatedAt: ts("2025-01-07T10:00:00Z")},
	}

	charlie := user("5", "charlie@example.com", "Charlie Davis", model.TierPro, true, "2024-10-10T08:00:00Z", "2025-01-12T07:00:00Z", 2100)
	charlie.Tasks = []model.Task{
		{ID: "t6", Title: "Integration testing", Status: model.TaskCompleted, Priority: model.PriorityHigh, CreatedAt: ts("2025-01-01T10:00:00Z"), CompletedAt: tsp("2025-01-03T16:00:00Z")},
		{ID: "t7", Title: "Security audit", Status: model.TaskInProgress, Priority: model.PriorityUrgent, CreatedAt: ts("2025-01-10T10:00:00Z")},
	}
	charlie.Notes = []model.Note{
		{ID: "n5", Title: "Technical Contact", Content: "Prefers email communication. Very technical, works with our API team directly.", CreatedAt: ts("2024-10-15T10:00:00Z"), UpdatedAt: ts("2024-10-15T10:00:00Z")},
	}

	return []model.User{
		john,
		jane,
		bob,
		alice,
		charlie,
		user("6", "diana@example.com", "Diana Prince", model.TierEnterprise, true, "2024-09-01T08:00:00Z", "2025-01-12T10:00:00Z", 5600),
		user("7", "evan@example.com", "Evan Rogers", model.TierBasic, true, "2024-12-01T08:00:00Z", "2025-01-11T14:00:00Z", 320),
		user("8", "fiona@example.com", "Fiona Green", model.TierPro, false, "2024-08-15T08:00:00Z", "2024-11-20T09:00:00Z", 890),
	}
}

// APIKeys returns the four sample keys.
func APIKeys() []model.APIKey {
	rw := func() []string { return []string{model.PermissionRead, model.PermissionWrite} }
	r := func() []string { return []string{model.PermissionRead} }
	return []model.APIKey{
		{ID: "1", Name: "Production API", Key: "voc_live_xxxxxxxxxxxxxxxxxxxxxxxxxxxx", IsActive: true, CreatedAt: ts("2025-01-01T10:00:00Z"), LastUsed: tsp("2025-01-12T09:00:00Z"), Permissions: rw()},
		{ID: "2", Name: "Development API", Key: "voc_test_xxxxxxxxxxxxxxxxxxxxxxxxxxxx", IsActive: true, CreatedAt: ts("2024-12-20T14:00:00Z"), LastUsed: tsp("2025-01-11T15:30:00Z"), Permissions: r()},
		{ID: "3", Name: "Legacy Integration", Key: "voc_live_oldxxxxxxxxxxxxxxxxxxxxxxxxx", IsActive: false, CreatedAt: ts("2024-06-15T09:00:00Z"), LastUsed: tsp("2024-11-01T10:00:00Z"), Permissions: r()},
		{ID: "4", Name: "Mobile App", Key: "voc_live_mobxxxxxxxxxxxxxxxxxxxxxxxxx", IsActive: true, CreatedAt: ts("2024-11-01T10:00:00Z"), LastUsed: tsp("2025-01-12T08:00:00Z"), Permissions: rw()},
	}
}

// Logs returns the eight sample activity records, newest first.
func Logs() []model.Log {
	return []model.Log{
		{ID: "1", ActivityType: model.ActivityLogin, Severity: model.SeverityInfo, Message: "User john@example.com logged in successfully", UserID: strp("1"), UserEmail: "john@example.com", IPAddress: "192.168.1.100", CreatedAt: ts("2025-01-12T08:30:00Z")},
		{ID: "2", ActivityType: model.ActivityAPICall, Severity: model.SeverityInfo, Message: "API request to /users endpoint", UserID: strp("2"), UserEmail: "jane@example.com", IPAddress: "10.0.0.50", CreatedAt: ts("2025-01-12T08:25:00Z")},
		{ID: "3", ActivityType: model.ActivityConfigChange, Severity: model.SeverityWarning, Message: "Rate limiting configuration updated", UserID: strp("1"), UserEmail: "john@example.com", IPAddress: "192.168.1.100", CreatedAt: ts("2025-01-12T08:20:00Z")},
		{ID: "4", ActivityType: model.ActivityAPICall, Severity: model.SeverityError, Message: "API rate limit exceeded for user", UserID: strp("3"), UserEmail: "bob@example.com", IPAddress: "172.16.0.25", CreatedAt: ts("2025-01-12T08:15:00Z")},
		{ID: "5", ActivityType: model.ActivityUserUpdate, Severity: model.SeverityInfo, Message: "User subscription upgraded to Pro", UserID: strp("4"), UserEmail: "alice@example.com", IPAddress: "192.168.1.105", CreatedAt: ts("2025-01-12T08:10:00Z")},
		{ID: "6", ActivityType: model.ActivityLogin, Severity: model.SeverityCritical, Message: "Multiple failed login attempts detected", UserEmail: "unknown@attacker.com", IPAddress: "203.0.113.50", CreatedAt: ts("2025-01-12T08:05:00Z")},
		{ID: "7", ActivityType: model.ActivityAPICall, Severity: model.SeverityInfo, Message: "Bulk export completed successfully", UserID: strp("2"), UserEmail: "jane@example.com", IPAddress: "10.0.0.50", CreatedAt: ts("2025-01-12T07:55:00Z")},
		{ID: "8", ActivityType: model.ActivityLogout, Severity: model.SeverityInfo, Message: "User charlie@example.com logged out", UserID: strp("5"), UserEmail: "charlie@example.com", IPAddress: "192.168.1.110", CreatedAt: ts("2025-01-12T07:50:00Z")},
	}
}

// Configs returns the seven sample configuration entries.
func Configs() []model.AppConfig {
	return []model.AppConfig{
		{ID: "1", Key: "rate_limit_enabled", Value: model.BoolValue(true), Type: model.ConfigBoolean, Description: "Enable API rate limiting for all endpoints", UpdatedAt: ts("2025-01-10T10:00:00Z")},
		{ID: "2", Key: "max_requests_per_minute", Value: model.NumberValue(100), Type: model.ConfigNumber, Description: "Maximum API requests allowed per minute per user", UpdatedAt: ts("2025-01-10T10:00:00Z")},
		{ID: "3", Key: "maintenance_mode", Value: model.BoolValue(false), Type: model.ConfigBoolean, Description: "Enable maintenance mode to block all API requests", UpdatedAt: ts("2025-01-08T14:00:00Z")},
		{ID: "4", Key: "support_email", Value: model.StringValue("support@voclio.com"), Type: model.ConfigString, Description: "Support email address shown to users", UpdatedAt: ts("2025-01-05T09:00:00Z")},
		{ID: "5", Key: "session_timeout_minutes", Value: model.NumberValue(30), Type: model.ConfigNumber, Description: "User session timeout in minutes", UpdatedAt: ts("2025-01-01T12:00:00Z")},
		{ID: "6", Key: "allow_signups", Value: model.BoolValue(true), Type: model.ConfigBoolean, Description: "Allow new user registrations", UpdatedAt: ts("2025-01-01T12:00:00Z")},
		{ID: "7", Key: "max_api_keys_per_user", Value: model.NumberValue(5), Type: model.ConfigNumber, Description: "Maximum number of API keys a user can create", UpdatedAt: ts("2025-01-01T12:00:00Z")},
	}
}

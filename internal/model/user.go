// Package model defines the canonical entities of the admin console.
// Backend payloads are translated into these shapes by package mapper.
package model

import "time"

// SubscriptionTier is a user's plan.
type SubscriptionTier string

// Subscription tiers.
const (
	TierFree       SubscriptionTier = "free"
	TierBasic      SubscriptionTier = "basic"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// SubscriptionTiers lists every valid tier in ascending order.
var SubscriptionTiers = []SubscriptionTier{TierFree, TierBasic, TierPro, TierEnterprise}

// IsValid reports whether t is a known tier.
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case TierFree, TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

// User is an account managed from the admin console.
type User struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	Avatar           string           `json:"avatar,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	// TierDefaulted is set when the backend sent no tier and free was assumed.
	TierDefaulted   bool       `json:"tier_defaulted,omitempty"`
	IsActive        bool       `json:"is_active"`
	IsAdmin         *bool      `json:"is_admin,omitempty"`
	OAuthProvider   string     `json:"oauth_provider,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	APICallsCount   *int       `json:"api_calls_count,omitempty"`
	NotesCount      *int       `json:"notes_count,omitempty"`
	TasksCount      *int       `json:"tasks_count,omitempty"`
	RecordingsCount *int       `json:"recordings_count,omitempty"`
	Tasks           []Task     `json:"tasks,omitempty"`
	Notes           []Note     `json:"notes,omitempty"`
}

// UserUpdate names the user fields a caller intends to change.
// Nil fields are neither sent nor applied.
type UserUpdate struct {
	Name             *string           `json:"name,omitempty"`
	Email            *string           `json:"email,omitempty"`
	SubscriptionTier *SubscriptionTier `json:"subscription_tier,omitempty"`
	IsActive         *bool             `json:"is_active,omitempty"`
}

// IsEmpty reports whether the update names no field.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.SubscriptionTier == nil && u.IsActive == nil
}

// Apply returns a copy of u with only the fields named in upd changed.
func (u User) Apply(upd UserUpdate) User {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.SubscriptionTier != nil {
		u.SubscriptionTier = *upd.SubscriptionTier
		u.TierDefaulted = false
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	return u
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskPriority ranks task urgency.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task belongs to exactly one user.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// Note belongs to exactly one user.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `json:"color,omitempty"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

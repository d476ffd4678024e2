package mapper

import (
	"encoding/json"
	"time"

	"github.com/voclio/admin/internal/envelope"
	"github.com/voclio/admin/internal/model"
)

type backendUser struct {
	ID               *model.FlexID `json:"id"`
	UserID           *model.FlexID `json:"user_id"`
	Email            string        `json:"email"`
	Name             string        `json:"name"`
	Avatar           string        `json:"avatar"`
	SubscriptionTier *string       `json:"subscription_tier"`
	IsActive         *bool         `json:"is_active"`
	IsAdmin          *bool         `json:"is_admin"`
	OAuthProvider    *string       `json:"oauth_provider"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at"`
	LastLogin        *time.Time    `json:"last_login"`
	APICallsCount    *int          `json:"api_calls_count"`
	NotesCount       *int          `json:"notes_count"`
	TasksCount       *int          `json:"tasks_count"`
	RecordingsCount  *int          `json:"recordings_count"`
	Tasks            []backendTask `json:"tasks"`
	Notes            []backendNote `json:"notes"`
}

type backendTask struct {
	ID          *model.FlexID      `json:"id"`
	TaskID      *model.FlexID      `json:"task_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      model.TaskStatus   `json:"status"`
	Priority    model.TaskPriority `json:"priority"`
	DueDate     *time.Time         `json:"due_date"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at"`
}

type backendNote struct {
	ID        *model.FlexID `json:"id"`
	NoteID    *model.FlexID `json:"note_id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Color     string        `json:"color"`
	IsPinned  bool          `json:"is_pinned"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`
}

// firstID returns the first non-empty identifier.
func firstID(ids ...*model.FlexID) string {
	for _, id := range ids {
		if id != nil && *id != "" {
			return id.String()
		}
	}
	return ""
}

// User maps a single user response.
func User(p envelope.Payload) (model.User, error) {
	raw, err := p.Unwrap()
	if err != nil {
		return model.User{}, err
	}
	return UserItem(raw)
}

// UserItem maps one raw user object. A numeric user_id becomes a string id.
// A missing tier becomes free with TierDefaulted set, a missing updated_at
// becomes created_at and a missing is_active is treated as active.
func UserItem(raw json.RawMessage) (model.User, error) {
	if !isObject(raw) {
		return model.User{}, mapErr("user", "not an object", nil)
	}

	var b backendUser
	if err := json.Unmarshal(raw, &b); err != nil {
		return model.User{}, mapErr("user", "decode", err)
	}

	u := model.User{
		ID:              firstID(b.ID, b.UserID),
		Email:           b.Email,
		Name:            b.Name,
		Avatar:          b.Avatar,
		IsActive:        true,
		IsAdmin:         b.IsAdmin,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
		LastLogin:       b.LastLogin,
		APICallsCount:   b.APICallsCount,
		NotesCount:      b.NotesCount,
		TasksCount:      b.TasksCount,
		RecordingsCount: b.RecordingsCount,
	}
	if u.ID == "" {
		return model.User{}, mapErr("user", "missing id and user_id", nil)
	}

	if b.SubscriptionTier == nil || *b.SubscriptionTier == "" {
		u.SubscriptionTier = model.TierFree
		u.TierDefaulted = true
	} else {
		u.SubscriptionTier = model.SubscriptionTier(*b.SubscriptionTier)
		if !u.SubscriptionTier.IsValid() {
			return model.User{}, mapErr("user", "unknown subscription_tier "+*b.SubscriptionTier, nil)
		}
	}
	if b.IsActive != nil {
		u.IsActive = *b.IsActive
	}
	if b.UpdatedAt != nil {
		u.UpdatedAt = *b.UpdatedAt
	}
	if b.OAuthProvider != nil {
		u.OAuthProvider = *b.OAuthProvider
	}

	for i, t := range b.Tasks {
		task := model.Task{
			ID:          firstID(t.ID, t.TaskID),
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			CreatedAt:   t.CreatedAt,
			CompletedAt: t.CompletedAt,
		}
		if task.ID == "" {
			return model.User{}, mapErr("user", "task without id", nil)
		}
		if i == 0 {
			u.Tasks = make([]model.Task, 0, len(b.Tasks))
		}
		u.Tasks = append(u.Tasks, task)
	}

	for i, n := range b.Notes {
		note := model.Note{
			ID:        firstID(n.ID, n.NoteID),
			Title:     n.Title,
			Content:   n.Content,
			Color:     n.Color,
			IsPinned:  n.IsPinned,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.CreatedAt,
		}
		if note.ID == "" {
			return model.User{}, mapErr("user", "note without id", nil)
		}
		if n.UpdatedAt != nil {
			note.UpdatedAt = *n.UpdatedAt
		}
		if i == 0 {
			u.Notes = make([]model.Note, 0, len(b.Notes))
		}
		u.Notes = append(u.Notes, note)
	}

	return u, nil
}

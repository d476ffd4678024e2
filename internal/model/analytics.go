package model

import "time"

// APIUsage summarizes API traffic over a period.
type APIUsage struct {
	TotalRequests int64               `json:"total_requests"`
	TotalErrors   int64               `json:"total_errors"`
	SuccessRate   float64             `json:"success_rate"`
	Breakdown     []APIUsageBreakdown `json:"breakdown"`
}

// APIUsageBreakdown is the traffic of one API type on one day.
type APIUsageBreakdown struct {
	APIType  string `json:"api_type"`
	Date     string `json:"date"`
	Requests int64  `json:"requests"`
	Errors   int64  `json:"errors"`
}

// SystemAnalytics is the dashboard overview.
type SystemAnalytics struct {
	Overview           SystemOverview      `json:"overview"`
	DailyRegistrations []DailyRegistration `json:"daily_registrations"`
	MostActiveUsers    []ActiveUser        `json:"most_active_users"`
}

type SystemOverview struct {
	TotalUsers         int `json:"total_users"`
	ActiveUsers        int `json:"active_users"`
	InactiveUsers      int `json:"inactive_users"`
	NewUsersWeek       int `json:"new_users_week"`
	NewUsersMonth      int `json:"new_users_month"`
	TotalNotes         int `json:"total_notes"`
	TotalTasks         int `json:"total_tasks"`
	CompletedTasks     int `json:"completed_tasks"`
	TotalRecordings    int `json:"total_recordings"`
	TotalReminders     int `json:"total_reminders"`
	TotalFocusSessions int `json:"total_focus_sessions"`
	AdminUsers         int `json:"admin_users"`
	OAuthUsers         int `json:"oauth_users"`
}

type DailyRegistration struct {
	Date          string `json:"date"`
	Registrations int    `json:"registrations"`
}

type ActiveUser struct {
	UserID          FlexID `json:"user_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	NotesCount      int    `json:"notes_count"`
	TasksCount      int    `json:"tasks_count"`
	RecordingsCount int    `json:"recordings_count"`
}

// AIUsageAnalytics reports AI feature consumption.
type AIUsageAnalytics struct {
	DailyStats    []AIDailyStat `json:"daily_stats"`
	Totals        AITotals      `json:"totals"`
	TokenEstimate TokenEstimate `json:"token_estimate"`
}

type AIDailyStat struct {
	Date            string `json:"date"`
	Summarizations  int    `json:"summarizations"`
	TotalAIRequests int    `json:"total_ai_requests"`
}

type AITotals struct {
	TotalSummarizations int `json:"total_summarizations"`
	ActiveAIUsers       int `json:"active_ai_users"`
	TotalTranscriptions int `json:"total_transcriptions"`
}

type TokenEstimate struct {
	InputTokens      int64  `json:"input_tokens"`
	OutputTokens     int64  `json:"output_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
	EstimatedCostUSD string `json:"estimated_cost_usd"`
}

// ContentStatistics reports content creation and storage.
type ContentStatistics struct {
	Statistics        ContentCounters `json:"statistics"`
	PopularTags       []PopularTag    `json:"popular_tags"`
	PopularCategories []Category      `json:"popular_categories"`
}

type ContentCounters struct {
	NotesToday         int    `json:"notes_today"`
	TasksToday         int    `json:"tasks_today"`
	RecordingsToday    int    `json:"recordings_today"`
	NotesWeek          int    `json:"notes_week"`
	TasksWeek          int    `json:"tasks_week"`
	RecordingsWeek     int    `json:"recordings_week"`
	AvgNoteLength      string `json:"avg_note_length"`
	AvgRecordingSize   string `json:"avg_recording_size"`
	TotalStorageUsed   int64  `json:"total_storage_used"`
	TotalStorageUsedMB string `json:"total_storage_used_mb"`
}

type PopularTag struct {
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
	Color      string `json:"color"`
}

type Category struct {
	CategoryID FlexID `json:"category_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	TaskCount  int    `json:"task_count"`
}

// SystemHealth is the backend's self-reported status.
type SystemHealth struct {
	Status              string      `json:"status"`
	Database            string      `json:"database"`
	Uptime              float64     `json:"uptime"`
	MemoryUsage         MemoryUsage `json:"memory_usage"`
	ActiveSessions      int         `json:"active_sessions"`
	UnreadNotifications int         `json:"unread_notifications"`
	Timestamp           time.Time   `json:"timestamp"`
}

type MemoryUsage struct {
	RSS       int64 `json:"rss"`
	HeapTotal int64 `json:"heapTotal"`
	HeapUsed  int64 `json:"heapUsed"`
	External  int64 `json:"external"`
}

// ActivityLog is one entry of the system activity feed.
type ActivityLog struct {
	Type      string         `json:"type"`
	User      ActivityUser   `json:"user"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type ActivityUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ClearOldDataResult reports what a cleanup removed.
type ClearOldDataResult struct {
	DeletedSessions      int    `json:"deleted_sessions"`
	DeletedNotifications int    `json:"deleted_notifications"`
	Message              string `json:"message"`
}

// Message is a bare acknowledgement body.
type Message struct {
	Message string `json:"message"`
}

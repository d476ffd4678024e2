package fixture

import (
	"fmt"
	"time"

	"github.com/voclio/admin/internal/model"
)

// APIUsage returns two days of traffic across four API types.
func APIUsage() model.APIUsage {
	return model.APIUsage{
		TotalRequests: 45230,
		TotalErrors:   1250,
		SuccessRate:   97.24,
		Breakdown: []model.APIUsageBreakdown{
			{APIType: "users", Date: "2025-01-12", Requests: 1200, Errors: 25},
			{APIType: "auth", Date: "2025-01-12", Requests: 3500, Errors: 150},
			{APIType: "data", Date: "2025-01-12", Requests: 8900, Errors: 320},
			{APIType: "users", Date: "2025-01-11", Requests: 1150, Errors: 30},
			{APIType: "auth", Date: "2025-01-11", Requests: 3200, Errors: 120},
			{APIType: "data", Date: "2025-01-11", Requests: 8500, Errors: 280},
			{APIType: "webhooks", Date: "2025-01-12", Requests: 2100, Errors: 45},
			{APIType: "webhooks", Date: "2025-01-11", Requests: 1980, Errors: 38},
		},
	}
}

func SystemAnalytics() model.SystemAnalytics {
	return model.SystemAnalytics{
		Overview: model.SystemOverview{
			TotalUsers:         8,
			ActiveUsers:        6,
			InactiveUsers:      2,
			NewUsersWeek:       2,
			NewUsersMonth:      5,
			TotalNotes:         245,
			TotalTasks:         156,
			CompletedTasks:     89,
			TotalRecordings:    78,
			TotalReminders:     34,
			TotalFocusSessions: 123,
			AdminUsers:         1,
			OAuthUsers:         3,
		},
		DailyRegistrations: []model.DailyRegistration{
			{Date: "2026-01-25", Registrations: 1},
			{Date: "2026-01-26", Registrations: 0},
			{Date: "2026-01-27", Registrations: 2},
			{Date: "2026-01-28", Registrations: 1},
			{Date: "2026-01-29", Registrations: 0},
			{Date: "2026-01-30", Registrations: 1},
			{Date: "2026-01-31", Registrations: 0},
		},
		MostActiveUsers: []model.ActiveUser{
			{UserID: "2", Email: "jane@example.com", Name: "Jane Smith", NotesCount: 45, TasksCount: 32, RecordingsCount: 18},
			{UserID: "5", Email: "charlie@example.com", Name: "Charlie Davis", NotesCount: 38, TasksCount: 28, RecordingsCount: 15},
			{UserID: "1", Email: "john@example.com", Name: "John Doe", NotesCount: 35, TasksCount: 25, RecordingsCount: 12},
		},
	}
}

func AIUsage() model.AIUsageAnalytics {
	return model.AIUsageAnalytics{
		DailyStats: []model.AIDailyStat{
			{Date: "2026-01-25", Summarizations: 12, TotalAIRequests: 45},
			{Date: "2026-01-26", Summarizations: 15, TotalAIRequests: 52},
			{Date: "2026-01-27", Summarizations: 10, TotalAIRequests: 38},
			{Date: "2026-01-28", Summarizations: 18, TotalAIRequests: 61},
			{Date: "2026-01-29", Summarizations: 14, TotalAIRequests: 48},
			{Date: "2026-01-30", Summarizations: 16, TotalAIRequests: 55},
			{Date: "2026-01-31", Summarizations: 19, TotalAIRequests: 64},
		},
		Totals: model.AITotals{
			TotalSummarizations: 104,
			ActiveAIUsers:       6,
			TotalTranscriptions: 78,
		},
		TokenEstimate: model.TokenEstimate{
			InputTokens:      125000,
			OutputTokens:     45000,
			TotalTokens:      170000,
			EstimatedCostUSD: "2.55",
		},
	}
}

func ContentStatistics() model.ContentStatistics {
	return model.ContentStatistics{
		Statistics: model.ContentCounters{
			NotesToday:         12,
			TasksToday:         8,
			RecordingsToday:    5,
			NotesWeek:          45,
			TasksWeek:          32,
			RecordingsWeek:     18,
			AvgNoteLength:      "245",
			AvgRecordingSize:   "2.5",
			TotalStorageUsed:   1250000000,
			TotalStorageUsedMB: "1192.09",
		},
		PopularTags: []model.PopularTag{
			{Name: "work", UsageCount: 45, Color: "#3B82F6"},
			{Name: "personal", UsageCount: 38, Color: "#10B981"},
			{Name: "urgent", UsageCount: 25, Color: "#EF4444"},
			{Name: "ideas", UsageCount: 22, Color: "#F59E0B"},
			{Name: "meeting", UsageCount: 18, Color: "#8B5CF6"},
		},
		PopularCategories: []model.Category{
			{CategoryID: "1", Name: "Work Projects", Color: "#3B82F6", TaskCount: 45},
			{CategoryID: "2", Name: "Personal Goals", Color: "#10B981", TaskCount: 32},
			{CategoryID: "3", Name: "Shopping", Color: "#F59E0B", TaskCount: 18},
			{CategoryID: "4", Name: "Health", Color: "#EF4444", TaskCount: 15},
		},
	}
}

// SystemHealth reports an operational system as of now.
func SystemHealth(now time.Time) model.SystemHealth {
	return model.SystemHealth{
		Status:   "operational",
		Database: "healthy",
		Uptime:   99.8,
		MemoryUsage: model.MemoryUsage{
			RSS:       125829120,
			HeapTotal: 89456640,
			HeapUsed:  62345728,
			External:  1234567,
		},
		ActiveSessions:      1247,
		UnreadNotifications: 3,
		Timestamp:           now.UTC(),
	}
}

func ActivityLogs() []model.ActivityLog {
	return []model.ActivityLog{
		{Type: "login", User: model.ActivityUser{Email: "john@example.com", Name: "John Doe"}, Data: map[string]any{"ip_address": "192.168.1.100"}, Timestamp: ts("2026-01-31T08:30:00Z")},
		{Type: "api_call", User: model.ActivityUser{Email: "jane@example.com", Name: "Jane Smith"}, Data: map[string]any{"endpoint": "GET /admin/users", "ip_address": "10.0.0.50"}, Timestamp: ts("2026-01-31T08:25:00Z")},
		{Type: "config_update", User: model.ActivityUser{Email: "john@example.com", Name: "John Doe"}, Data: map[string]any{"setting": "rate_limit", "ip_address": "192.168.1.100"}, Timestamp: ts("2026-01-31T08:20:00Z")},
		{Type: "logout", User: model.ActivityUser{Email: "charlie@example.com", Name: "Charlie Davis"}, Data: map[string]any{"ip_address": "192.168.1.110"}, Timestamp: ts("2026-01-31T07:50:00Z")},
	}
}

// ClearOldData reports a cleanup of everything older than days.
func ClearOldData(days int) model.ClearOldDataResult {
	return model.ClearOldDataResult{
		DeletedSessions:      145,
		DeletedNotifications: 892,
		Message:              fmt.Sprintf("Successfully cleared data older than %d days", days),
	}
}

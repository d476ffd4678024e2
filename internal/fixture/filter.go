package fixture

import (
	"fmt"
	"time"

	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/pagination"
)

// UserFilter selects users the way the admin users screen does.
// Zero fields are inactive.
type UserFilter struct {
	Search           string
	SubscriptionTier model.SubscriptionTier
	IsActive         *bool
}

// Predicates returns the active predicates.
func (f UserFilter) Predicates() []pagination.Predicate[model.User] {
	preds := []pagination.Predicate[model.User]{
		pagination.Contains(f.Search,
			func(u model.User) string { return u.Name },
			func(u model.User) string { return u.Email },
		),
	}
	if f.SubscriptionTier != "" {
		preds = append(preds, pagination.Exact(func(u model.User) model.SubscriptionTier { return u.SubscriptionTier }, f.SubscriptionTier))
	}
	if f.IsActive != nil {
		preds = append(preds, pagination.Exact(func(u model.User) bool { return u.IsActive }, *f.IsActive))
	}
	return preds
}

// LogFilter selects activity records. Zero fields are inactive.
type LogFilter struct {
	ActivityType model.ActivityType
	Severity     model.Severity
	From, To     time.Time
}

// Predicates returns the active predicates.
func (f LogFilter) Predicates() []pagination.Predicate[model.Log] {
	preds := []pagination.Predicate[model.Log]{
		pagination.Between(func(l model.Log) time.Time { return l.CreatedAt }, f.From, f.To),
	}
	if f.ActivityType != "" {
		preds = append(preds, pagination.Exact(func(l model.Log) model.ActivityType { return l.ActivityType }, f.ActivityType))
	}
	if f.Severity != "" {
		preds = append(preds, pagination.Exact(func(l model.Log) model.Severity { return l.Severity }, f.Severity))
	}
	return preds
}

// ActivityFilter selects entries of the system activity feed.
type ActivityFilter struct {
	Action string
}

// Predicates returns the active predicates.
func (f ActivityFilter) Predicates() []pagination.Predicate[model.ActivityLog] {
	if f.Action == "" {
		return nil
	}
	return []pagination.Predicate[model.ActivityLog]{
		pagination.Exact(func(a model.ActivityLog) string { return a.Type }, f.Action),
	}
}

// ParseDateBound parses an RFC 3339 timestamp or a YYYY-MM-DD date.
// A date-only upper bound covers the whole day. "" yields the zero time.
func ParseDateBound(s string, upper bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// UsageFor narrows the API usage breakdown to one API type.
// Totals are recomputed from the remaining rows.
func UsageFor(apiType string) model.APIUsage {
	usage := APIUsage()
	if apiType == "" {
		return usage
	}

	rows := make([]model.APIUsageBreakdown, 0, len(usage.Breakdown))
	var requests, errs int64
	for _, row := range usage.Breakdown {
		if row.APIType != apiType {
			continue
		}
		rows = append(rows, row)
		requests += row.Requests
		errs += row.Errors
	}

	usage.Breakdown = rows
	usage.TotalRequests = requests
	usage.TotalErrors = errs
	usage.SuccessRate = 0
	if requests > 0 {
		usage.SuccessRate = float64(requests-errs) / float64(requests) * 100
	}
	return usage
}

package query

import (
	"strings"
	"testing"
)

type tier string

func TestEncode(t *testing.T) {
	empty := ""
	page := 2
	active := false
	var unsetTier *tier
	pro := tier("pro")

	tests := []struct {
		name   string
		params *Params
		want   string
	}{
		{
			name:   "empty mapping",
			params: New(),
			want:   "",
		},
		{
			name:   "only unset and empty values",
			params: New().Add("search", "").Add("tier", nil).Add("is_active", (*bool)(nil)).Add("q", &empty),
			want:   "",
		},
		{
			name:   "insertion order kept",
			params: New().Add("page", 1).Add("limit", 10).Add("search", "john"),
			want:   "?page=1&limit=10&search=john",
		},
		{
			name:   "bool and number stringified",
			params: New().Add("is_active", true).Add("ratio", 0.5).Add("big", int64(1234567890123)),
			want:   "?is_active=true&ratio=0.5&big=1234567890123",
		},
		{
			name:   "pointers dereferenced",
			params: New().Add("page", &page).Add("is_active", &active).Add("tier", unsetTier).Add("plan", &pro),
			want:   "?page=2&is_active=false&plan=pro",
		},
		{
			name:   "percent encoding",
			params: New().Add("search", "john doe&co").Add("email", "a+b@x.com"),
			want:   "?search=john+doe%26co&email=a%2Bb%40x.com",
		},
		{
			name:   "named string type",
			params: New().Add("subscription_tier", tier("enterprise")),
			want:   "?subscription_tier=enterprise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_UnsetNeverAppears(t *testing.T) {
	p := New().
		Add("page", 1).
		Add("search", "").
		Add("severity", nil).
		Add("limit", 20).
		Add("end_date", (*string)(nil))

	got := p.Encode()
	if !strings.HasPrefix(got, "?") {
		t.Fatalf("Encode() = %q, want leading ?", got)
	}
	for _, key := range []string{"search", "severity", "end_date"} {
		if strings.Contains(got, key) {
			t.Errorf("Encode() = %q, must not contain %q", got, key)
		}
	}
}

func TestBuild(t *testing.T) {
	if got := Build("page", 1, "limit", 10, "search", ""); got != "?page=1&limit=10" {
		t.Errorf("Build() = %q", got)
	}
	if got := Build(); got != "" {
		t.Errorf("Build() with no args = %q, want empty", got)
	}
}

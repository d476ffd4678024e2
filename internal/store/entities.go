package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/voclio/admin/internal/fixture"
	"github.com/voclio/admin/internal/model"
	"github.com/voclio/admin/internal/pagination"
)

// ListUsers returns one page of users matching f.
func (s *Store) ListUsers(ctx context.Context, f fixture.UserFilter, page, limit int) (model.PaginatedResponse[model.User], error) {
	st, err := s.current(ctx)
	if err != nil {
		return model.PaginatedResponse[model.User]{}, err
	}
	return pagination.Paginate(st.Users, page, limit, f.Predicates()...)
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	st, err := s.current(ctx)
	if err != nil {
		return model.User{}, err
	}

	i := slices.IndexFunc(st.Users, func(u model.User) bool { return u.ID == id })
	if i < 0 {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return st.Users[i], nil
}

// UpdateUser applies upd to the user and returns the result.
// Fields not named in upd, updated_at included, are left as they were.
func (s *Store) UpdateUser(ctx context.Context, id string, upd model.UserUpdate) (model.User, error) {
	var out model.User
	err := s.mutate(ctx, func(st *Snapshot) error {
		i := slices.IndexFunc(st.Users, func(u model.User) bool { return u.ID == id })
		if i < 0 {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		st.Users[i] = st.Users[i].Apply(upd)
		out = st.Users[i]
		return nil
	})
	return out, err
}

// DeleteUser removes the user.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *Snapshot) error {
		i := slices.IndexFunc(st.Users, func(u model.User) bool { return u.ID == id })
		if i < 0 {
			return fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		st.Users = slices.Delete(st.Users, i, i+1)
		return nil
	})
}

// ListAPIKeys returns one page of API keys.
func (s *Store) ListAPIKeys(ctx context.Context, page, limit int) (model.PaginatedResponse[model.APIKey], error) {
	st, err := s.current(ctx)
	if err != nil {
		return model.PaginatedResponse[model.APIKey]{}, err
	}
	return pagination.Paginate(st.APIKeys, page, limit)
}

// InsertAPIKey appends a fully built key.
func (s *Store) InsertAPIKey(ctx context.Context, key model.APIKey) (model.APIKey, error) {
	err := s.mutate(ctx, func(st *Snapshot) error {
		if slices.ContainsFunc(st.APIKeys, func(k model.APIKey) bool { return k.ID == key.ID }) {
			return fmt.Errorf("api key %s: %w", key.ID, ErrDuplicateKey)
		}
		st.APIKeys = append(st.APIKeys, key)
		return nil
	})
	return key, err
}

// UpdateAPIKey applies upd to the key and returns the result.
func (s *Store) UpdateAPIKey(ctx context.Context, id string, upd model.APIKeyUpdate) (model.APIKey, error) {
	var out model.APIKey
	err := s.mutate(ctx, func(st *Snapshot) error {
		i := slices.IndexFunc(st.APIKeys, func(k model.APIKey) bool { return k.ID == id })
		if i < 0 {
			return fmt.Errorf("api key %s: %w", id, ErrNotFound)
		}
		st.APIKeys[i] = st.APIKeys[i].Apply(upd)
		out = st.APIKeys[i]
		return nil
	})
	return out, err
}

// DeleteAPIKey removes the key.
func (s *Store) DeleteAPIKey(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *Snapshot) error {
		i := slices.IndexFunc(st.APIKeys, func(k model.APIKey) bool { return k.ID == id })
		if i < 0 {
			return fmt.Errorf("api key %s: %w", id, ErrNotFound)
		}
		st.APIKeys = slices.Delete(st.APIKeys, i, i+1)
		return nil
	})
}

// ListLogs returns one page of activity records matching f.
func (s *Store) ListLogs(ctx context.Context, f fixture.LogFilter, page, limit int) (model.PaginatedResponse[model.Log], error) {
	st, err := s.current(ctx)
	if err != nil {
		return model.PaginatedResponse[model.Log]{}, err
	}
	return pagination.Paginate(st.Logs, page, limit, f.Predicates()...)
}

// ListActivityLogs returns one page of the system activity feed.
func (s *Store) ListActivityLogs(ctx context.Context, f fixture.ActivityFilter, page, limit int) (model.PaginatedResponse[model.ActivityLog], error) {
	st, err := s.current(ctx)
	if err != nil {
		return model.PaginatedResponse[model.ActivityLog]{}, err
	}
	return pagination.Paginate(st.ActivityLogs, page, limit, f.Predicates()...)
}

// Configs returns every config entry in order.
func (s *Store) Configs(ctx context.Context) ([]model.AppConfig, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(st.Configs), nil
}

// ConfigError lists the updates whose value kind does not match the
// entry's declared type, keyed by config key.
type ConfigError struct {
	Fields map[string][]string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%d config value(s) have the wrong type", len(e.Fields))
}

// Unwrap lets errors.Is match model.ErrConfigTypeMismatch.
func (e *ConfigError) Unwrap() error { return model.ErrConfigTypeMismatch }

// UpdateConfigs sets the value and updated_at of each named key. Unknown
// keys are ignored. The update is all or nothing: one mismatched value
// rejects the whole batch with a *ConfigError.
func (s *Store) UpdateConfigs(ctx context.Context, updates []model.ConfigUpdate) ([]model.AppConfig, error) {
	var out []model.AppConfig
	err := s.mutate(ctx, func(st *Snapshot) error {
		now := s.now().UTC()
		bad := make(map[string][]string)

		for _, u := range updates {
			i := slices.IndexFunc(st.Configs, func(c model.AppConfig) bool { return c.Key == u.Key })
			if i < 0 {
				continue
			}
			next := st.Configs[i]
			next.Value = u.Value
			if err := next.Validate(); err != nil {
				bad[u.Key] = append(bad[u.Key], fmt.Sprintf("must be a %s", next.Type))
				continue
			}
			next.UpdatedAt = now
			st.Configs[i] = next
		}

		if len(bad) > 0 {
			return &ConfigError{Fields: bad}
		}
		out = slices.Clone(st.Configs)
		return nil
	})
	return out, err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/apierr"
	"github.com/voclio/admin/internal/client"
	"github.com/voclio/admin/internal/config"
)

// tokenEnv is read when --token is not given.
const tokenEnv = "VOCLIO_TOKEN"

// app carries the state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	apiURL     string
	token      string
	fallback   string
	timeout    time.Duration
	jsonOutput bool
	verbose    bool

	client *client.Client
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	// Defaults come from the environment (and .env); a bad value there is
	// reported when a command runs, flags may still override it.
	cfg, cfgErr := config.Load()
	if cfg == nil {
		cfg = &config.Config{BackendAPIURL: "http://localhost:3001/api", ClientTimeout: 15 * time.Second}
	}

	root := &cobra.Command{
		Use:   "adminctl",
		Short: "adminctl manages Voclio users, API keys, logs and settings",
		Long: `adminctl talks to the Voclio admin API through the same data access
layer as the dashboard.

Authenticate with "adminctl login" and export the printed token as
VOCLIO_TOKEN, or pass --token on every call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				fmt.Fprintln(a.errOut, "warning: using built-in defaults:", cfgErr)
			}
			return a.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", cfg.BackendAPIURL, "Admin API base URL")
	flags.StringVar(&a.token, "token", os.Getenv(tokenEnv), "Bearer token (default $"+tokenEnv+")")
	flags.StringVar(&a.fallback, "fallback", cfg.FallbackPolicy, "Serve fixture data when the backend fails (none|fixture)")
	flags.DurationVar(&a.timeout, "timeout", cfg.ClientTimeout, "Per-request timeout")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output results as JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newUsersCmd(a),
		newKeysCmd(a),
		newLogsCmd(a),
		newConfigCmd(a),
		newAnalyticsCmd(a),
		newOverviewCmd(a),
		newSystemCmd(a),
	)
	return root
}

// connect builds the data access client from the resolved flags.
func (a *app) connect() error {
	policy, err := client.ParseFallbackPolicy(a.fallback)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.client = client.New(a.apiURL,
		client.WithTimeout(a.timeout),
		client.WithFallback(policy),
		client.WithLogger(logger),
	)
	return nil
}

// requireToken fails early with a hint instead of a CallerError.
func (a *app) requireToken() (string, error) {
	if strings.TrimSpace(a.token) == "" {
		return "", errors.New("not logged in: run \"adminctl login\" and set " + tokenEnv + ", or pass --token")
	}
	return a.token, nil
}

// explain turns a data access error into the message the dashboard shows.
func explain(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *apierr.HTTPStatusError
	if errors.As(err, &statusErr) {
		if fields := statusErr.FieldErrors(); len(fields) > 0 {
			var b strings.Builder
			b.WriteString(apierr.Message(err))
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				b.WriteString("\n  " + k + ": " + strings.Join(fields[k], ", "))
			}
			return errors.New(b.String())
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}
	return errors.New(apierr.Message(err))
}

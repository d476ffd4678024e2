package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/client"
)

func newSystemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Backend health and maintenance",
	}
	cmd.AddCommand(newHealthCmd(a), newActivityCmd(a), newClearOldDataCmd(a))
	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show the backend's self-reported status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			h, err := a.client.GetSystemHealth(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			return a.printResult(h, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintf(tw, "Status:\t%s\n", h.Status)
				fmt.Fprintf(tw, "Database:\t%s\n", h.Database)
				fmt.Fprintf(tw, "Uptime:\t%.0fs\n", h.Uptime)
				fmt.Fprintf(tw, "Memory (RSS):\t%d MiB\n", h.MemoryUsage.RSS>>20)
				fmt.Fprintf(tw, "Active sessions:\t%d\n", h.ActiveSessions)
				_ = tw.Flush()
			})
		},
	}
}

func newActivityCmd(a *app) *cobra.Command {
	var params client.ActivityLogsParams

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Recent user activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			page, err := a.client.ListActivityLogs(cmd.Context(), token, params)
			if err != nil {
				return explain(err)
			}
			return a.printResult(page, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "TIME\tTYPE\tUSER")
				for _, l := range page.Data {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", formatTime(l.Timestamp), l.Type, l.User.Email)
				}
				_ = tw.Flush()
				printPageFooter(w, page)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "Page number")
	f.IntVar(&params.Limit, "limit", 50, "Entries per page")
	f.StringVar(&params.UserID, "user", "", "Only this user")
	f.StringVar(&params.Action, "action", "", "Only this action")
	return cmd
}

func newClearOldDataCmd(a *app) *cobra.Command {
	var (
		days int
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "clear-old-data",
		Short: "Delete expired sessions and old notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return errors.New("--days must be positive")
			}
			if !yes {
				return fmt.Errorf("this deletes data older than %d days; rerun with --yes to confirm", days)
			}
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			res, err := a.client.ClearOldData(cmd.Context(), token, days)
			if err != nil {
				return explain(err)
			}
			return a.printResult(res, func(w io.Writer) {
				fmt.Fprintln(w, res.Message)
				fmt.Fprintf(w, "Sessions removed: %d, notifications removed: %d\n", res.DeletedSessions, res.DeletedNotifications)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Age threshold in days")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

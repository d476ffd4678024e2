package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/client"
	"github.com/voclio/admin/internal/model"
)

func newLogsCmd(a *app) *cobra.Command {
	var (
		params       client.LogsParams
		activityType string
		severity     string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			params.ActivityType = model.ActivityType(activityType)
			params.Severity = model.Severity(severity)

			page, err := a.client.ListLogs(cmd.Context(), token, params)
			if err != nil {
				return explain(err)
			}
			return a.printResult(page, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "TIME\tSEVERITY\tTYPE\tUSER\tMESSAGE")
				for _, l := range page.Data {
					user := "system"
					if l.UserEmail != "" {
						user = l.UserEmail
					} else if l.UserID != nil {
						user = *l.UserID
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", formatTime(l.CreatedAt), l.Severity, l.ActivityType, user, l.Message)
				}
				_ = tw.Flush()
				printPageFooter(w, page)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "Page number")
	f.IntVar(&params.Limit, "limit", 20, "Entries per page")
	f.StringVar(&activityType, "type", "", "Filter by activity type")
	f.StringVar(&severity, "severity", "", "Filter by severity (info|warning|error|critical)")
	f.StringVar(&params.StartDate, "from", "", "Earliest date (YYYY-MM-DD)")
	f.StringVar(&params.EndDate, "to", "", "Latest date (YYYY-MM-DD)")
	return cmd
}

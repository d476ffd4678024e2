package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/client"
	"github.com/voclio/admin/internal/model"
)

func newAnalyticsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Usage and content reports",
	}
	cmd.AddCommand(newAPIUsageCmd(a), newSystemAnalyticsCmd(a), newAIUsageCmd(a), newContentCmd(a))
	return cmd
}

func newAPIUsageCmd(a *app) *cobra.Command {
	var params client.APIUsageParams

	cmd := &cobra.Command{
		Use:   "api-usage",
		Short: "Request volume and error rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			usage, err := a.client.GetAPIUsage(cmd.Context(), token, params)
			if err != nil {
				return explain(err)
			}
			return a.printResult(usage, func(w io.Writer) {
				fmt.Fprintf(w, "Requests: %d  Errors: %d  Success rate: %.1f%%\n\n", usage.TotalRequests, usage.TotalErrors, usage.SuccessRate)
				tw := table(w)
				fmt.Fprintln(tw, "DATE\tAPI\tREQUESTS\tERRORS")
				for _, b := range usage.Breakdown {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", b.Date, b.APIType, b.Requests, b.Errors)
				}
				_ = tw.Flush()
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.StartDate, "from", "", "Earliest date (YYYY-MM-DD)")
	f.StringVar(&params.EndDate, "to", "", "Latest date (YYYY-MM-DD)")
	f.StringVar(&params.APIType, "type", "", "Only this API type")
	return cmd
}

func newSystemAnalyticsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "User and content totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			s, err := a.client.GetSystemAnalytics(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			return a.printResult(s, func(w io.Writer) { printSystemAnalytics(w, s) })
		},
	}
}

func newAIUsageCmd(a *app) *cobra.Command {
	var params client.AIUsageParams

	cmd := &cobra.Command{
		Use:   "ai-usage",
		Short: "Summarization and transcription volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			ai, err := a.client.GetAIUsageAnalytics(cmd.Context(), token, params)
			if err != nil {
				return explain(err)
			}
			return a.printResult(ai, func(w io.Writer) { printAIUsage(w, ai) })
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.StartDate, "from", "", "Earliest date (YYYY-MM-DD)")
	f.StringVar(&params.EndDate, "to", "", "Latest date (YYYY-MM-DD)")
	f.StringVar(&params.UserID, "user", "", "Only this user")
	return cmd
}

func newContentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "content",
		Short: "Content creation and popular tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			c, err := a.client.GetContentStatistics(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			return a.printResult(c, func(w io.Writer) { printContent(w, c) })
		},
	}
}

// newOverviewCmd loads the dashboard home reports concurrently and shows
// whatever arrived, failing only when nothing did.
func newOverviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Dashboard home: system, AI usage and content at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			ov, err := a.client.Overview(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			for _, f := range ov.Outcomes.Failed() {
				fmt.Fprintf(a.errOut, "warning: %s unavailable: %s\n", f.Name, explain(f.Err))
			}
			if ov.Outcomes.AllFailed() {
				return errors.New("no report could be loaded")
			}

			return a.printResult(ov, func(w io.Writer) {
				if ov.System != nil {
					printSystemAnalytics(w, *ov.System)
					fmt.Fprintln(w)
				}
				if ov.AIUsage != nil {
					printAIUsage(w, *ov.AIUsage)
					fmt.Fprintln(w)
				}
				if ov.Content != nil {
					printContent(w, *ov.Content)
				}
			})
		},
	}
}

func printSystemAnalytics(w io.Writer, s model.SystemAnalytics) {
	o := s.Overview
	tw := table(w)
	fmt.Fprintf(tw, "Users:\t%d (%d active, %d inactive)\n", o.TotalUsers, o.ActiveUsers, o.InactiveUsers)
	fmt.Fprintf(tw, "New this week:\t%d\n", o.NewUsersWeek)
	fmt.Fprintf(tw, "New this month:\t%d\n", o.NewUsersMonth)
	fmt.Fprintf(tw, "Notes:\t%d\n", o.TotalNotes)
	fmt.Fprintf(tw, "Tasks:\t%d (%d completed)\n", o.TotalTasks, o.CompletedTasks)
	fmt.Fprintf(tw, "Recordings:\t%d\n", o.TotalRecordings)
	_ = tw.Flush()
}

func printAIUsage(w io.Writer, ai model.AIUsageAnalytics) {
	tw := table(w)
	fmt.Fprintf(tw, "Summarizations:\t%d\n", ai.Totals.TotalSummarizations)
	fmt.Fprintf(tw, "Transcriptions:\t%d\n", ai.Totals.TotalTranscriptions)
	fmt.Fprintf(tw, "Active AI users:\t%d\n", ai.Totals.ActiveAIUsers)
	fmt.Fprintf(tw, "Tokens:\t%d (est. $%s)\n", ai.TokenEstimate.TotalTokens, ai.TokenEstimate.EstimatedCostUSD)
	_ = tw.Flush()
}

func printContent(w io.Writer, c model.ContentStatistics) {
	s := c.Statistics
	tw := table(w)
	fmt.Fprintf(tw, "Today:\t%d notes, %d tasks, %d recordings\n", s.NotesToday, s.TasksToday, s.RecordingsToday)
	fmt.Fprintf(tw, "This week:\t%d notes, %d tasks, %d recordings\n", s.NotesWeek, s.TasksWeek, s.RecordingsWeek)
	fmt.Fprintf(tw, "Avg note length:\t%s\n", s.AvgNoteLength)
	_ = tw.Flush()
}

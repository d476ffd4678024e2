package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/voclio/admin/internal/model"
)

// printResult writes data as JSON under --json, otherwise calls textFn.
// In JSON mode nothing but the encoded data reaches stdout.
func (a *app) printResult(data any, textFn func(w io.Writer)) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	textFn(a.out)
	return nil
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printPageFooter[T any](w io.Writer, p model.PaginatedResponse[T]) {
	fmt.Fprintf(w, "\npage %d of %d (%d total)\n", p.Page, max(p.TotalPages, 1), p.Total)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return formatTime(*t)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

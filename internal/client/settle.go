package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/voclio/admin/internal/model"
)

// Call is one named unit of work for Settle.
type Call struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Outcome is the result of one Call.
type Outcome struct {
	Name string
	Err  error
}

// Outcomes is the per-call result of Settle, in call order.
type Outcomes []Outcome

// Failed returns the outcomes that carry an error.
func (o Outcomes) Failed() Outcomes {
	var out Outcomes
	for _, oc := range o {
		if oc.Err != nil {
			out = append(out, oc)
		}
	}
	return out
}

// AllFailed reports whether every call failed.
func (o Outcomes) AllFailed() bool {
	return len(o) > 0 && len(o.Failed()) == len(o)
}

// Err joins the failures, or returns nil when every call succeeded.
func (o Outcomes) Err() error {
	var errs []error
	for _, oc := range o.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", oc.Name, oc.Err))
	}
	return errors.Join(errs...)
}

// Settle runs the calls concurrently and returns once all have finished.
// A failing call does not cancel the others.
func Settle(ctx context.Context, calls ...Call) Outcomes {
	out := make(Outcomes, len(calls))

	var g errgroup.Group
	for i, c := range calls {
		out[i].Name = c.Name
		g.Go(func() error {
			out[i].Err = c.Fn(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Overview holds the three analytics reports of the dashboard landing page.
// A nil report failed; its error is in Outcomes.
type Overview struct {
	System   *model.SystemAnalytics
	AIUsage  *model.AIUsageAnalytics
	Content  *model.ContentStatistics
	Outcomes Outcomes
}

// Overview fetches the system, AI usage and content reports concurrently.
func (c *Client) Overview(ctx context.Context, token string) (Overview, error) {
	if err := require("overview", "token", token); err != nil {
		return Overview{}, err
	}

	var ov Overview
	ov.Outcomes = Settle(ctx,
		Call{Name: "system", Fn: func(ctx context.Context) error {
			v, err := c.GetSystemAnalytics(ctx, token)
			if err == nil {
				ov.System = &v
			}
			return err
		}},
		Call{Name: "ai_usage", Fn: func(ctx context.Context) error {
			v, err := c.GetAIUsageAnalytics(ctx, token, AIUsageParams{})
			if err == nil {
				ov.AIUsage = &v
			}
			return err
		}},
		Call{Name: "content", Fn: func(ctx context.Context) error {
			v, err := c.GetContentStatistics(ctx, token)
			if err == nil {
				ov.Content = &v
			}
			return err
		}},
	)

	if ov.Outcomes.AllFailed() {
		return ov, ov.Outcomes.Err()
	}
	return ov, nil
}

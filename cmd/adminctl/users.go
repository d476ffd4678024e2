package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/client"
	"github.com/voclio/admin/internal/model"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List and manage users",
	}
	cmd.AddCommand(
		newUsersListCmd(a),
		newUsersGetCmd(a),
		newUsersUpdateCmd(a),
		newUsersDeleteCmd(a),
		newUsersResetPasswordCmd(a),
	)
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	var (
		params client.UsersParams
		tier   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with optional search and filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}

			if tier != "" {
				t := model.SubscriptionTier(tier)
				if !t.IsValid() {
					return fmt.Errorf("unknown tier %q (want free, basic, pro or enterprise)", tier)
				}
				params.SubscriptionTier = t
			}
			switch status {
			case "":
			case "active", "inactive":
				active := status == "active"
				params.IsActive = &active
			default:
				return fmt.Errorf("unknown status %q (want active or inactive)", status)
			}

			page, err := a.client.ListUsers(cmd.Context(), token, params)
			if err != nil {
				return explain(err)
			}
			return a.printResult(page, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tTIER\tACTIVE\tLAST LOGIN")
				for _, u := range page.Data {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						u.ID, u.Name, u.Email, u.SubscriptionTier, yesNo(u.IsActive), formatOptTime(u.LastLogin))
				}
				_ = tw.Flush()
				printPageFooter(w, page)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "Page number")
	f.IntVar(&params.Limit, "limit", 10, "Users per page")
	f.StringVar(&params.Search, "search", "", "Match name or email")
	f.StringVar(&tier, "tier", "", "Filter by subscription tier")
	f.StringVar(&status, "status", "", "Filter by status (active|inactive)")
	f.StringVar(&params.SortBy, "sort-by", "", "Sort field")
	f.StringVar(&params.Order, "order", "", "Sort order (asc|desc)")
	return cmd
}

func newUsersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			u, err := a.client.GetUser(cmd.Context(), token, args[0])
			if err != nil {
				return explain(err)
			}
			return a.printResult(u, func(w io.Writer) { printUser(w, u) })
		},
	}
}

func newUsersUpdateCmd(a *app) *cobra.Command {
	var (
		name, email, tier string
		active            bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a user's name, email, tier or status",
		Long:  "Only the flags given are sent; every other field is left as is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}

			var upd model.UserUpdate
			f := cmd.Flags()
			if f.Changed("name") {
				upd.Name = &name
			}
			if f.Changed("email") {
				upd.Email = &email
			}
			if f.Changed("tier") {
				t := model.SubscriptionTier(tier)
				if !t.IsValid() {
					return fmt.Errorf("unknown tier %q", tier)
				}
				upd.SubscriptionTier = &t
			}
			if f.Changed("active") {
				upd.IsActive = &active
			}
			if upd.IsEmpty() {
				return errors.New("nothing to update: pass at least one of --name, --email, --tier, --active")
			}

			u, err := a.client.UpdateUser(cmd.Context(), token, args[0], upd)
			if err != nil {
				return explain(err)
			}
			return a.printResult(u, func(w io.Writer) { printUser(w, u) })
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "New display name")
	f.StringVar(&email, "email", "", "New email")
	f.StringVar(&tier, "tier", "", "New subscription tier")
	f.BoolVar(&active, "active", true, "Activate (true) or suspend (false)")
	return cmd
}

func newUsersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			if err := a.client.DeleteUser(cmd.Context(), token, args[0]); err != nil {
				return explain(err)
			}
			return a.printResult(map[string]string{"deleted": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "User %s deleted\n", args[0])
			})
		},
	}
}

func newUsersResetPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <id>",
		Short: "Send a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			msg, err := a.client.ResetUserPassword(cmd.Context(), token, args[0])
			if err != nil {
				return explain(err)
			}
			return a.printResult(msg, func(w io.Writer) { fmt.Fprintln(w, msg.Message) })
		},
	}
}

func printUser(w io.Writer, u model.User) {
	tw := table(w)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	tier := string(u.SubscriptionTier)
	if u.TierDefaulted {
		tier += " (assumed)"
	}
	fmt.Fprintf(tw, "Tier:\t%s\n", tier)
	fmt.Fprintf(tw, "Active:\t%s\n", yesNo(u.IsActive))
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(u.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(u.UpdatedAt))
	fmt.Fprintf(tw, "Last login:\t%s\n", formatOptTime(u.LastLogin))
	if u.APICallsCount != nil {
		fmt.Fprintf(tw, "API calls:\t%d\n", *u.APICallsCount)
	}
	_ = tw.Flush()
}

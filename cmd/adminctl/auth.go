package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an administrator and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			res, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return explain(err)
			}
			return a.printResult(res, func(w io.Writer) {
				fmt.Fprintf(w, "Logged in as %s <%s> (%s)\n", res.User.Name, res.User.Email, res.User.Role)
				fmt.Fprintf(w, "export %s=%s\n", tokenEnv, res.Token)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Administrator email")
	cmd.Flags().StringVar(&password, "password", "", "Administrator password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			if err := a.client.Logout(cmd.Context(), token); err != nil {
				return explain(err)
			}
			return a.printResult(map[string]string{"message": "Logged out"}, func(w io.Writer) {
				fmt.Fprintln(w, "Logged out")
			})
		},
	}
}

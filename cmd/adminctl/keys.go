package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/client"
	"github.com/voclio/admin/internal/model"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"api-keys"},
		Short:   "List and manage API keys",
	}
	cmd.AddCommand(newKeysListCmd(a), newKeysCreateCmd(a), newKeysUpdateCmd(a), newKeysDeleteCmd(a))
	return cmd
}

func newKeysListCmd(a *app) *cobra.Command {
	var params client.APIKeysParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys with their secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			page, err := a.client.ListAPIKeys(cmd.Context(), token, params)
			if err != nil {
				return explain(err)
			}

			masked := page
			masked.Data = make([]model.APIKey, len(page.Data))
			for i, k := range page.Data {
				k.Key = k.Masked()
				masked.Data[i] = k
			}

			return a.printResult(masked, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tNAME\tKEY\tACTIVE\tPERMISSIONS\tLAST USED")
				for _, k := range masked.Data {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						k.ID, k.Name, k.Key, yesNo(k.IsActive), strings.Join(k.Permissions, ","), formatOptTime(k.LastUsed))
				}
				_ = tw.Flush()
				printPageFooter(w, masked)
			})
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 10, "Keys per page")
	return cmd
}

func newKeysCreateCmd(a *app) *cobra.Command {
	var permissions []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an API key; the full secret is shown only once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			key, err := a.client.CreateAPIKey(cmd.Context(), token, model.APIKeyCreate{Name: args[0], Permissions: permissions})
			if err != nil {
				return explain(err)
			}
			return a.printResult(key, func(w io.Writer) {
				fmt.Fprintf(w, "Created key %s (%s)\n", key.ID, key.Name)
				fmt.Fprintf(w, "Secret: %s\n", key.Key)
				fmt.Fprintln(w, "Store it now, it will not be shown again.")
			})
		},
	}

	cmd.Flags().StringSliceVar(&permissions, "permission", nil, "Permission to grant (read, write); repeatable")
	return cmd
}

func newKeysUpdateCmd(a *app) *cobra.Command {
	var (
		name        string
		active      bool
		permissions []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename, enable, disable or re-scope an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}

			var upd model.APIKeyUpdate
			f := cmd.Flags()
			if f.Changed("name") {
				upd.Name = &name
			}
			if f.Changed("active") {
				upd.IsActive = &active
			}
			if f.Changed("permission") {
				upd.Permissions = &permissions
			}
			if upd.Name == nil && upd.IsActive == nil && upd.Permissions == nil {
				return errors.New("nothing to update: pass at least one of --name, --active, --permission")
			}

			key, err := a.client.UpdateAPIKey(cmd.Context(), token, args[0], upd)
			if err != nil {
				return explain(err)
			}
			key.Key = key.Masked()
			return a.printResult(key, func(w io.Writer) {
				fmt.Fprintf(w, "Updated key %s (%s), active: %s\n", key.ID, key.Name, yesNo(key.IsActive))
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "New name")
	f.BoolVar(&active, "active", true, "Enable (true) or disable (false)")
	f.StringSliceVar(&permissions, "permission", nil, "Replace the permission set; repeatable")
	return cmd
}

func newKeysDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			if err := a.client.DeleteAPIKey(cmd.Context(), token, args[0]); err != nil {
				return explain(err)
			}
			return a.printResult(map[string]string{"deleted": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "API key %s deleted\n", args[0])
			})
		},
	}
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voclio/admin/internal/model"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change system settings",
	}
	cmd.AddCommand(newConfigGetCmd(a), newConfigSetCmd(a))
	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show all settings, or one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			configs, err := a.client.GetConfig(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}
			if len(args) == 1 {
				c, ok := findConfig(configs, args[0])
				if !ok {
					return fmt.Errorf("unknown setting %q", args[0])
				}
				configs = []model.AppConfig{c}
			}
			return a.printResult(configs, func(w io.Writer) { printConfigs(w, configs) })
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>=<value>...",
		Short: "Change one or more settings",
		Long: `Each value is read according to the setting's declared type, so
"maintenance_mode=true" sends a boolean and "max_requests_per_minute=120"
sends a number.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.requireToken()
			if err != nil {
				return err
			}
			current, err := a.client.GetConfig(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}

			updates := make([]model.ConfigUpdate, 0, len(args))
			for _, arg := range args {
				key, raw, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("%q: want key=value", arg)
				}
				c, found := findConfig(current, key)
				if !found {
					return fmt.Errorf("unknown setting %q", key)
				}
				v, err := parseConfigValue(c.Type, raw)
				if err != nil {
					return fmt.Errorf("%s: %w", key, err)
				}
				updates = append(updates, model.ConfigUpdate{Key: key, Value: v})
			}

			configs, err := a.client.UpdateConfig(cmd.Context(), token, updates)
			if err != nil {
				return explain(err)
			}
			return a.printResult(configs, func(w io.Writer) { printConfigs(w, configs) })
		},
	}
}

func findConfig(configs []model.AppConfig, key string) (model.AppConfig, bool) {
	for _, c := range configs {
		if c.Key == key {
			return c, true
		}
	}
	return model.AppConfig{}, false
}

// parseConfigValue reads raw as the given config type.
func parseConfigValue(typ model.ConfigType, raw string) (model.ConfigValue, error) {
	switch typ {
	case model.ConfigBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return model.ConfigValue{}, fmt.Errorf("must be true or false")
		}
		return model.BoolValue(b), nil
	case model.ConfigNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.ConfigValue{}, fmt.Errorf("must be a number")
		}
		return model.NumberValue(n), nil
	default:
		return model.StringValue(raw), nil
	}
}

func printConfigs(w io.Writer, configs []model.AppConfig) {
	tw := table(w)
	fmt.Fprintln(tw, "KEY\tVALUE\tTYPE\tUPDATED\tDESCRIPTION")
	for _, c := range configs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Key, c.Value, c.Type, formatTime(c.UpdatedAt), c.Description)
	}
	_ = tw.Flush()
}

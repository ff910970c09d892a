package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show your preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		prefs, err := e.settings.Load(cmdContext(cmd))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, key := range settings.Keys {
			v, err := prefs.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-26s  %s\n", key, v)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change a preference",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmdContext(cmd)
		prefs, err := e.settings.Load(ctx)
		if err != nil {
			return err
		}
		if err := prefs.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := e.settings.Save(ctx, prefs); err != nil {
			return err
		}
		v, _ := prefs.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.settings.Reset(cmdContext(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Preferences restored to defaults.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

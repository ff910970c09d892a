package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile and skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmdContext(cmd)
		p, err := e.profile.Load(ctx, e.userID)
		if err != nil {
			return err
		}
		skills, err := e.profile.Skills(ctx, e.userID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range profile.Fields {
			v := f.Value(p)
			if v == "" {
				v = "-"
			}
			fmt.Fprintf(out, "%-10s  %s\n", f.Label, v)
		}

		fmt.Fprintf(out, "\nSkills (%d)\n", len(skills))
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, s := range skills {
			level := s.Level
			if level == "" {
				level = "-"
			}
			fmt.Fprintf(out, "%-24s  %s\n", s.Name, level)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Example: "  skilldash profile set --full-name \"Ada Lovelace\" --website-url https://ada.dev\n" +
		"  skilldash profile set --bio \"\"",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var changed []profile.Field
		for _, f := range profile.Fields {
			if cmd.Flags().Changed(fieldFlag(f)) {
				changed = append(changed, f)
			}
		}
		if len(changed) == 0 {
			return fmt.Errorf("nothing to update; pass at least one field flag (see --help)")
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmdContext(cmd)
		p, err := e.profile.Load(ctx, e.userID)
		if err != nil {
			return err
		}
		for _, f := range changed {
			v, _ := cmd.Flags().GetString(fieldFlag(f))
			if err := profile.SetField(p, f.Key, v); err != nil {
				return err
			}
		}
		if err := e.profile.Save(ctx, p); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
		return nil
	},
}

var profileSkillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage the skills on your profile",
}

var profileSkillAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.profile.AddSkill(cmdContext(cmd), e.userID, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", strings.TrimSpace(args[0]))
		return nil
	},
}

var profileSkillRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.profile.RemoveSkill(cmdContext(cmd), e.userID, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", strings.TrimSpace(args[0]))
		return nil
	},
}

// fieldFlag turns a profile field key into its flag name.
func fieldFlag(f profile.Field) string {
	return strings.ReplaceAll(f.Key, "_", "-")
}

func init() {
	for _, f := range profile.Fields {
		profileSetCmd.Flags().String(fieldFlag(f), "", f.Label)
	}

	profileSkillCmd.AddCommand(profileSkillAddCmd)
	profileSkillCmd.AddCommand(profileSkillRemoveCmd)

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileSkillCmd)
}

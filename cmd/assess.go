package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/assessment"
)

var assessCmd = &cobra.Command{
	Use:   "assess <id>",
	Short: "Take an assessment",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var ids []string
		for _, d := range assessment.DefaultCatalog().All() {
			ids = append(ids, d.ID+"\t"+d.Title)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "List available assessments and your last scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		latest, err := e.tracker.LatestResults(cmdContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-30s  %-12s  %9s  %s\n", "ID", "Title", "Difficulty", "Questions", "Last score")
		fmt.Fprintln(out, strings.Repeat("─", 92))

		for _, d := range e.catalog.All() {
			questions := 0
			if m, err := e.catalog.Model(d.ID); err == nil {
				questions = m.QuestionCount()
			}
			last := "-"
			if rec, ok := latest[d.ID]; ok {
				if pct, ok := rec.Percent(); ok {
					last = fmt.Sprintf("%d%%", pct)
				}
			}
			fmt.Fprintf(out, "%-24s  %-30s  %-12s  %9d  %s\n",
				d.ID, truncate(d.Title, 30), d.Difficulty, questions, last)
		}

		fmt.Fprintf(out, "\n%d assessments\n", e.catalog.Len())
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

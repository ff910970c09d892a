package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		snap, err := e.dashboard.Load(cmdContext(cmd), e.cfg.User.Email)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Hi %s!\n\n", snap.Name)
		fmt.Fprintf(out, "%-22s  %d\n", "Skills", snap.Stats.SkillsCount)
		fmt.Fprintf(out, "%-22s  %d\n", "Assessments taken", snap.Stats.AssessmentsCount)
		fmt.Fprintf(out, "%-22s  %d\n", "Assessments completed", snap.Stats.CompletedAssessments)
		fmt.Fprintf(out, "%-22s  %d%%\n", "Completion rate", snap.Stats.CompletionRate())
		fmt.Fprintf(out, "%-22s  %d\n", "Learning paths", snap.Stats.LearningPathsCount)
		fmt.Fprintf(out, "%-22s  %d of %d (avg %d%%)\n", "Catalog progress",
			snap.Overview.Completed, snap.Overview.Available, snap.Overview.AverageScore)

		if len(snap.Recent) > 0 {
			fmt.Fprintln(out, "\nRecent assessments")
			fmt.Fprintln(out, strings.Repeat("─", 50))
			for _, r := range snap.Recent {
				score := "-"
				if r.HasScore {
					score = fmt.Sprintf("%d%%", r.Percent)
				}
				fmt.Fprintf(out, "%-12s  %-30s  %s\n",
					r.CompletedAt.Local().Format("Jan 02 2006"), truncate(r.Title, 30), score)
			}
		}
		return nil
	},
}

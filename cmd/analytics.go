package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/analytics"
)

const barWidth = 20

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show skill progress against a target and your score history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetInt("target")
		if target < 1 || target > 100 {
			return fmt.Errorf("--target must be between 1 and 100, got %d", target)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rep, err := e.analytics.Report(cmdContext(cmd), target)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		m := rep.Metrics
		fmt.Fprintf(out, "%-22s  %d\n", "Skills tracked", m.SkillsTracked)
		fmt.Fprintf(out, "%-22s  %d\n", "Assessments completed", m.AssessmentsCompleted)
		fmt.Fprintf(out, "%-22s  %d\n", "Courses completed", m.CoursesCompleted)
		fmt.Fprintf(out, "%-22s  %d%% (best %d%%)\n", "Average score", m.AverageScore, m.BestScore)
		fmt.Fprintf(out, "%-22s  %s\n", "Time spent", analytics.FormatDuration(m.TimeSpent))

		writeSkillProgress(out, rep)

		if len(rep.History) > 0 {
			fmt.Fprintln(out, "\nScore history")
			fmt.Fprintln(out, strings.Repeat("─", 64))
			for _, h := range rep.History {
				fmt.Fprintf(out, "%-10s  %-30s  %4d%%  %s\n",
					h.CompletedAt.Local().Format("2006-01-02"), truncate(h.Title, 30), h.Percent, h.Band)
			}
		}

		if len(rep.Monthly) > 0 {
			fmt.Fprintln(out, "\nLearning time")
			fmt.Fprintln(out, strings.Repeat("─", 64))
			most := rep.Monthly[0].Spent
			for _, mt := range rep.Monthly {
				most = max(most, mt.Spent)
			}
			for _, mt := range rep.Monthly {
				pct := 0
				if most > 0 {
					pct = int(100 * mt.Spent / most)
				}
				fmt.Fprintf(out, "%-8s  %s  %s\n", mt.Label(), textBar(pct), analytics.FormatDuration(mt.Spent))
			}
		}
		return nil
	},
}

func init() {
	analyticsCmd.Flags().Int("target", analytics.DefaultTarget, "Skill score to aim for, in percent")
}

func writeSkillProgress(out io.Writer, rep analytics.Report) {
	fmt.Fprintf(out, "\nSkill progress (target %d%%)\n", rep.Target)
	fmt.Fprintln(out, strings.Repeat("─", 64))
	if len(rep.Skills) == 0 {
		fmt.Fprintln(out, "No assessed skills yet.")
		return
	}
	for _, sk := range rep.Skills {
		status := "in progress"
		if sk.Reached() {
			status = "complete"
		}
		fmt.Fprintf(out, "%-20s  %s  %3d%%  %s\n", truncate(sk.Name, 20), textBar(sk.Current), sk.Current, status)
	}
}

// textBar draws pct (0-100) as a fixed-width bar.
func textBar(pct int) string {
	filled := min(max(pct, 0), 100) * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

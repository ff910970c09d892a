package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/catalog"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse the course catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		skill, _ := cmd.Flags().GetString("skill")
		diffVal, _ := cmd.Flags().GetString("difficulty")

		f := catalog.Filter{Query: query, Skill: skill}
		if diffVal != "" {
			d, err := assessment.ParseDifficulty(diffVal)
			if err != nil {
				return err
			}
			f.Difficulty = d
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmdContext(cmd)
		completed, err := e.tracker.CompletedCourses(ctx)
		if err != nil {
			return err
		}
		enrollments, err := e.tracker.Enrollments(ctx)
		if err != nil {
			return err
		}
		started := make(map[string]bool)
		for _, en := range enrollments {
			if p, err := catalog.GetPath(en.PathID); err == nil {
				for _, id := range p.CourseIDs {
					started[id] = true
				}
			}
		}

		courses := catalog.Search(f)
		if len(courses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No courses match the filter.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s  %-34s  %-12s  %-9s  %s\n", "ID", "Title", "Difficulty", "Duration", "State")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, c := range courses {
			fmt.Fprintf(out, "%-22s  %-34s  %-12s  %-9s  %s\n",
				c.ID, truncate(c.Title, 34), c.Difficulty, c.Duration,
				catalog.State(c.ID, completed, started))
		}

		fmt.Fprintf(out, "\n%d courses\n", len(courses))
		return nil
	},
}

func init() {
	coursesCmd.Flags().String("query", "", "Search title, description and skills")
	coursesCmd.Flags().String("difficulty", "", "Filter by difficulty (Beginner, Intermediate, Advanced)")
	coursesCmd.Flags().String("skill", "", "Filter by skill name")
}

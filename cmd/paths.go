package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/skilldash/internal/catalog"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List learning paths and your progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmdContext(cmd)
		enrollments, err := e.tracker.Enrollments(ctx)
		if err != nil {
			return err
		}
		completed, err := e.tracker.CompletedCourses(ctx)
		if err != nil {
			return err
		}
		enrolled := make(map[string]bool, len(enrollments))
		for _, en := range enrollments {
			enrolled[en.PathID] = true
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s  %-30s  %-12s  %-8s  %-13s  %s\n",
			"ID", "Title", "Difficulty", "Enrolled", "Progress", "Next")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, p := range catalog.AllPaths() {
			prog := catalog.PathProgress(p, completed)
			mark := "no"
			if enrolled[p.ID] {
				mark = "yes"
			}
			next := "-"
			if prog.Next != nil {
				next = prog.Next.Title
			}
			fmt.Fprintf(out, "%-22s  %-30s  %-12s  %-8s  %-13s  %s\n",
				p.ID, truncate(p.Title, 30), p.Difficulty, mark,
				fmt.Sprintf("%d/%d (%d%%)", prog.Completed, prog.Total, prog.Percent), next)
		}
		return nil
	},
}

var pathsEnrollCmd = &cobra.Command{
	Use:   "enroll <path>",
	Short: "Enroll in a learning path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.tracker.Enroll(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		p, _ := catalog.GetPath(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Enrolled in %s.\n", p.Title)
		return nil
	},
}

var pathsCompleteCmd = &cobra.Command{
	Use:   "complete <path> <course>",
	Short: "Mark a course of an enrolled path as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.tracker.SetCourseCompleted(cmdContext(cmd), args[0], args[1], !undo); err != nil {
			return err
		}
		c, _ := catalog.GetCourse(args[1])
		if undo {
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as not completed.\n", c.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s.\n", c.Title)
		}
		return nil
	},
}

func init() {
	pathsCompleteCmd.Flags().Bool("undo", false, "Clear the completion instead")

	pathsCmd.AddCommand(pathsEnrollCmd)
	pathsCmd.AddCommand(pathsCompleteCmd)
}

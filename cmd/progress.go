package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kubestronaut/internal/progress"
	"github.com/abhisek/kubestronaut/internal/tracker"
)

const barWidth = 20

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show certification progress for a set of completed courses",
		Long: `Apply completions in the given order and print each course's progress.

Completions go through the prerequisite guard, so --completed cks,cka rejects
cks while --completed cka,cks accepts both. Naming a course twice toggles it
back off.`,
		Example: "  kubestronaut progress --completed cka,cks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			completed, _ := cmd.Flags().GetStringSlice("completed")

			log, err := newLogger(cmd, false)
			if err != nil {
				return err
			}
			defer log.Sync()

			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			session := tracker.NewSession(cat, tracker.WithLogger(log))
			for _, id := range completed {
				id = strings.TrimSpace(id)
				if id == "" {
					continue
				}
				if _, ok := cat.Course(id); !ok {
					return fmt.Errorf("unknown course %q (known: %s)", id, strings.Join(cat.CourseIDs(), ", "))
				}
				if _, err := session.ToggleCompletion(cmd.Context(), id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "rejected: %v\n", err)
				}
			}

			st := session.State()
			pct := session.View().Progress
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-6s  %-*s  %4s  %s\n", "Course", barWidth, "Progress", "", "From")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, c := range tracker.OrderedCourses(cat, st.Positions) {
				var from []string
				for _, contrib := range progress.Breakdown(cat, st.Completed, c.ID) {
					if contrib.CourseID == c.ID {
						from = append(from, "completed")
						continue
					}
					from = append(from, fmt.Sprintf("%s +%d", contrib.Title, contrib.Points))
				}
				fmt.Fprintf(out, "%-6s  %s  %3d%%  %s\n", c.Title, bar(pct[c.ID]), pct[c.ID], strings.Join(from, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("completed", nil, "Course IDs to mark complete, applied in order")
	return cmd
}

func bar(pct int) string {
	filled := barWidth * min(max(pct, 0), 100) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kubestronaut/internal/explain"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <topic-id>",
		Short: "Explain a topic, with an LLM when one is configured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			static, _ := cmd.Flags().GetBool("static")

			log, err := newLogger(cmd, false)
			if err != nil {
				return err
			}
			defer log.Sync()

			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			var exp *explain.Explanation
			if static {
				exp, err = explain.NewService(cat, nil, explain.DefaultConfig(), log).Static(args[0])
			} else {
				exp, err = newExplainer(cmd.Context(), cat, nil, log).Explain(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if exp.Fallback != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "LLM unavailable, showing curriculum notes: %v\n", exp.Fallback)
			}
			printExplanation(cmd, exp)
			return nil
		},
	}
	cmd.Flags().Bool("static", false, "Skip the LLM and print curriculum notes only")
	return cmd
}

func printExplanation(cmd *cobra.Command, e *explain.Explanation) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n%s\n", e.Title, strings.Repeat("─", len([]rune(e.Title))))
	fmt.Fprintf(out, "Course:   %s (%s)\n", e.CourseTitle, e.CourseID)
	fmt.Fprintf(out, "Section:  %s\n\n", e.Section)

	fmt.Fprintln(out, e.Summary)
	if len(e.KeyPoints) > 0 {
		fmt.Fprintln(out)
		for _, p := range e.KeyPoints {
			fmt.Fprintf(out, "  • %s\n", p)
		}
	}
	if e.ExamTip != "" {
		fmt.Fprintf(out, "\nExam tip: %s\n", e.ExamTip)
	}
	if len(e.Related) > 0 {
		fmt.Fprintln(out, "\nAlso taught in:")
		for _, r := range e.Related {
			fmt.Fprintf(out, "  %s: %s (%s)\n", r.CourseTitle, r.Title, r.Section)
		}
	}
	fmt.Fprintf(out, "\nSource: %s\n", e.Source)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kubestronaut/internal/curriculum"
)

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List certifications with their dependencies and topic counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-6s  %-6s  %-52s  %-8s  %-8s  %s\n",
				"ID", "Title", "Description", "Sections", "Topics", "Requires")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, c := range cat.Courses() {
				requires := "-"
				if len(c.Dependencies) > 0 {
					requires = strings.Join(c.Dependencies, ", ")
				}
				fmt.Fprintf(out, "%-6s  %-6s  %-52s  %-8d  %-8d  %s\n",
					c.ID, c.Title, c.Description, len(c.Sections), c.TopicCount(), requires)
			}
			return nil
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics <course-id>",
		Short: "List a course's sections and sub-topics",
		Long:  "List a course's sections and sub-topics. Topics also taught in other courses are marked with ⇄.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			course, ok := cat.Course(args[0])
			if !ok {
				return fmt.Errorf("unknown course %q (known: %s)", args[0], strings.Join(cat.CourseIDs(), ", "))
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s: %s (%d topics)\n", course.Title, course.Description, course.TopicCount())
			for _, sec := range course.Sections {
				fmt.Fprintf(out, "\n%s\n", sec.Title)
				for _, t := range sec.Topics {
					line := fmt.Sprintf("  %-28s  %s", t.ID, t.Title)
					if others := otherCourses(cat, t.ID, course.ID); len(others) > 0 {
						line += "  ⇄ " + strings.Join(others, " ")
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
}

func newRelatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "related <topic-id>",
		Short: "Show every topic treated as the same concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			ref, ok := cat.Topic(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			out := cmd.OutOrStdout()

			related := cat.RelatedSet(ref.Topic.ID)
			fmt.Fprintf(out, "%s (%s, %s)\n", ref.Topic.Title, ref.Course.Title, ref.Section.Title)
			if len(related) == 1 {
				fmt.Fprintln(out, "Not shared with any other topic.")
				return nil
			}
			for _, courseID := range cat.RelatedCourses(ref.Topic.ID) {
				course, _ := cat.Course(courseID)
				fmt.Fprintf(out, "\n%s\n", course.Title)
				for _, id := range related {
					other, _ := cat.Topic(id)
					if other.Course.ID != courseID {
						continue
					}
					mark := " "
					if id == ref.Topic.ID {
						mark = "*"
					}
					fmt.Fprintf(out, "%s %-28s  %s  (%s)\n", mark, id, other.Topic.Title, other.Section.Title)
				}
			}
			return nil
		},
	}
}

func newSharedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shared",
		Short: "List concepts taught in more than one certification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			concepts := cat.Concepts()
			fmt.Fprintf(out, "%-40s  %-22s  %s\n", "Concept", "Courses", "Topics")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, cp := range concepts {
				titles := make([]string, len(cp.CourseIDs))
				for i, id := range cp.CourseIDs {
					c, _ := cat.Course(id)
					titles[i] = c.Title
				}
				fmt.Fprintf(out, "%-40s  %-22s  %s\n", cp.Title, strings.Join(titles, " "), strings.Join(cp.TopicIDs, ", "))
			}
			fmt.Fprintf(out, "\n%d shared concepts\n", len(concepts))
			return nil
		},
	}
}

// otherCourses names the courses other than own that teach the topic.
func otherCourses(cat *curriculum.Catalog, topicID, own string) []string {
	var out []string
	for _, id := range cat.RelatedCourses(topicID) {
		if id == own {
			continue
		}
		if c, ok := cat.Course(id); ok {
			out = append(out, c.Title)
		}
	}
	return out
}

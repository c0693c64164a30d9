package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/kubestronaut/internal/curriculum"
)

const systemPrompt = `You are a concise Kubernetes instructor helping a learner prepare for CNCF certification exams (KCNA, KCSA, CKA, CKAD, CKS). Explain topics accurately and practically.`

func buildUserMessage(ref curriculum.TopicRef, related []RelatedTopic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", ref.Topic.Title)
	fmt.Fprintf(&b, "Certification: %s (%s)\n", ref.Course.Title, ref.Course.Description)
	fmt.Fprintf(&b, "Section: %s\n", ref.Section.Title)

	if len(related) > 0 {
		b.WriteString("\nAlso covered in:\n")
		for _, r := range related {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", r.CourseTitle, r.Title, r.Section)
		}
	}

	b.WriteString(`
Instructions:
1. Summarize the topic in 2-4 sentences at the level of the certification above.
2. List 3-5 key points a candidate must remember.
3. Give one exam tip. Prefer a concrete kubectl command or manifest field when one applies.
4. Use plain text. No Markdown headings.`)

	return b.String()
}

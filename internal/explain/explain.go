// Package explain produces study notes for curriculum topics, from an LLM when
// one is configured and from the curriculum itself otherwise.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/llm"
	"github.com/abhisek/kubestronaut/internal/logging"
)

// ErrUnknownTopic is returned for topic IDs not in the catalog.
var ErrUnknownTopic = errors.New("unknown topic")

// Source tells where an explanation came from.
type Source string

const (
	SourceLLM    Source = "llm"
	SourceStatic Source = "static"
)

// RelatedTopic is a member of the topic's related set in another course.
type RelatedTopic struct {
	TopicID     string
	Title       string
	CourseID    string
	CourseTitle string
	Section     string
}

// Explanation is a study note for one topic.
type Explanation struct {
	TopicID     string
	Title       string
	CourseID    string
	CourseTitle string
	Section     string

	Summary   string
	KeyPoints []string
	ExamTip   string
	Related   []RelatedTopic

	Source Source
	// Fallback holds the provider error when an LLM was configured but the
	// static note was served instead.
	Fallback error
}

// Service explains topics. A nil provider serves static notes only.
type Service struct {
	catalog  *curriculum.Catalog
	provider llm.Provider
	cfg      Config
	log      *logging.Logger
}

func NewService(catalog *curriculum.Catalog, provider llm.Provider, cfg Config, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{catalog: catalog, provider: provider, cfg: cfg, log: log}
}

// HasProvider reports whether explanations may come from an LLM.
func (s *Service) HasProvider() bool {
	return s.provider != nil
}

// Explain returns the note for topicID. Provider failures fall back to the
// static note; the only error is ErrUnknownTopic (or ctx cancellation).
func (s *Service) Explain(ctx context.Context, topicID string) (*Explanation, error) {
	ref, ok := s.catalog.Topic(topicID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	exp := s.static(ref)
	if s.provider == nil {
		return exp, nil
	}

	out, err := s.generate(ctx, ref, exp.Related)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.log.Warn("explanation fell back to static note", "topic", topicID, "err", err)
		exp.Fallback = err
		return exp, nil
	}

	exp.Summary = out.Summary
	exp.KeyPoints = out.KeyPoints
	exp.ExamTip = out.ExamTip
	exp.Source = SourceLLM
	return exp, nil
}

// Static returns the note built from the curriculum alone.
func (s *Service) Static(topicID string) (*Explanation, error) {
	ref, ok := s.catalog.Topic(topicID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	return s.static(ref), nil
}

type explanationOutput struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	ExamTip   string   `json:"exam_tip"`
}

func (s *Service) generate(ctx context.Context, ref curriculum.TopicRef, related []RelatedTopic) (*explanationOutput, error) {
	ctx = llm.WithPurpose(ctx, "explain")
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.SingleTurn(systemPrompt, buildUserMessage(ref, related), ExplanationSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}
	return &out, nil
}

func (s *Service) static(ref curriculum.TopicRef) *Explanation {
	exp := &Explanation{
		TopicID:     ref.Topic.ID,
		Title:       ref.Topic.Title,
		CourseID:    ref.Course.ID,
		CourseTitle: ref.Course.Title,
		Section:     ref.Section.Title,
		Source:      SourceStatic,
	}

	for _, id := range s.catalog.RelatedSet(ref.Topic.ID) {
		if id == ref.Topic.ID {
			continue
		}
		other, ok := s.catalog.Topic(id)
		if !ok {
			continue
		}
		exp.Related = append(exp.Related, RelatedTopic{
			TopicID:     id,
			Title:       other.Topic.Title,
			CourseID:    other.Course.ID,
			CourseTitle: other.Course.Title,
			Section:     other.Section.Title,
		})
	}

	exp.Summary = fmt.Sprintf("%s is part of %q in the %s curriculum (%s).",
		ref.Topic.Title, ref.Section.Title, ref.Course.Title, ref.Course.Description)

	siblings := len(ref.Section.Topics) - 1
	if siblings > 0 {
		exp.KeyPoints = append(exp.KeyPoints, fmt.Sprintf("Studied alongside %d other topics in %s.", siblings, ref.Section.Title))
	}
	if courses := s.catalog.RelatedCourses(ref.Topic.ID); len(courses) > 1 {
		exp.KeyPoints = append(exp.KeyPoints, fmt.Sprintf("Shared by %d certifications; selecting it here selects it everywhere.", len(courses)))
	}
	if deps := s.catalog.Prerequisites(ref.Course.ID); len(deps) > 0 {
		titles := make([]string, len(deps))
		for i, d := range deps {
			titles[i] = d.Title
		}
		exp.KeyPoints = append(exp.KeyPoints, fmt.Sprintf("%s requires %s to be completed first.", ref.Course.Title, joinTitles(titles)))
	}
	return exp
}

func joinTitles(titles []string) string {
	switch len(titles) {
	case 0:
		return ""
	case 1:
		return titles[0]
	}
	out := titles[0]
	for _, t := range titles[1 : len(titles)-1] {
		out += ", " + t
	}
	return out + " and " + titles[len(titles)-1]
}

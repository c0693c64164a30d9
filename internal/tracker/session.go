package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/journal"
	"github.com/abhisek/kubestronaut/internal/logging"
	"github.com/abhisek/kubestronaut/internal/progress"
)

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 100

// Recorder persists applied commands.
type Recorder interface {
	Append(ctx context.Context, e journal.Entry) (int64, error)
}

// Session holds the current state for the UI and applies commands to it.
// It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	cat     *curriculum.Catalog
	state   State
	history []State
	limit   int

	log      *logging.Logger
	recorder Recorder
}

// Option configures a Session.
type Option func(*Session)

// WithLogger logs every transition.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRecorder journals every transition.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithHistoryLimit caps the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.limit = n }
}

// NewSession starts a session from the catalog's initial state.
func NewSession(cat *curriculum.Catalog, opts ...Option) *Session {
	s := &Session{
		cat:   cat,
		state: Initial(cat),
		limit: DefaultHistoryLimit,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the session operates on.
func (s *Session) Catalog() *curriculum.Catalog {
	return s.cat
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the derived snapshot of the current state.
func (s *Session) View() Snapshot {
	return View(s.cat, s.State())
}

// CanUndo reports whether there is a transition to revert.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) > 0
}

// ToggleTopic applies a topic toggle.
func (s *Session) ToggleTopic(ctx context.Context, topicID, courseID string) Effects {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, fx := ToggleTopic(s.cat, s.state, topicID, courseID)
	if next.Selected.Equal(s.state.Selected) {
		return fx
	}
	added := next.Selected.Has(topicID)
	s.commit(next)

	detail := "deselected"
	if added {
		detail = "selected"
	}
	s.log.Debug("topic toggled", "topic", topicID, "course", courseID, "selected", added, "total", next.Selected.Len())
	s.record(ctx, journal.Entry{Kind: journal.KindToggleTopic, CourseID: courseID, TopicID: topicID, Detail: detail, OK: true})
	return fx
}

// ToggleCourseNode applies a course node toggle.
func (s *Session) ToggleCourseNode(ctx context.Context, courseID string) (Effects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, fx, err := ToggleCourseNode(s.cat, s.state, courseID)
	if err != nil {
		s.rejected(ctx, journal.KindToggleCourse, courseID, err)
		return fx, err
	}
	s.commit(next)

	detail := "cleared"
	if next.Completed.Has(courseID) {
		detail = "completed"
	}
	s.log.Info("course toggled", "course", courseID, "result", detail)
	s.record(ctx, journal.Entry{Kind: journal.KindToggleCourse, CourseID: courseID, Detail: detail, OK: true})
	return fx, nil
}

// ToggleCompletion applies a completion toggle.
func (s *Session) ToggleCompletion(ctx context.Context, courseID string) (Effects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, fx, err := ToggleCompletion(s.cat, s.state, courseID)
	if err != nil {
		s.rejected(ctx, journal.KindToggleCompletion, courseID, err)
		return fx, err
	}
	s.commit(next)

	detail := "uncompleted"
	if next.Completed.Has(courseID) {
		detail = "completed"
	}
	s.log.Info("completion toggled", "course", courseID, "result", detail)
	s.record(ctx, journal.Entry{Kind: journal.KindToggleCompletion, CourseID: courseID, Detail: detail, OK: true})
	return fx, nil
}

// SetPosition moves a course card.
func (s *Session) SetPosition(ctx context.Context, courseID string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPosition(ctx, courseID, x, y)
}

// MoveCourse shifts a course card by a delta.
func (s *Session) MoveCourse(ctx context.Context, courseID string, dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.state.Positions[courseID]
	if !ok {
		return
	}
	s.setPosition(ctx, courseID, pos.X+dx, pos.Y+dy)
}

// setPosition commits and journals a card move. Callers hold s.mu.
func (s *Session) setPosition(ctx context.Context, courseID string, x, y float64) {
	next := SetPosition(s.state, courseID, x, y)
	if next.Equal(s.state) {
		return
	}
	s.commit(next)
	s.record(ctx, journal.Entry{
		Kind:     journal.KindSetPosition,
		CourseID: courseID,
		Detail:   fmt.Sprintf("%.0f,%.0f", x, y),
		OK:       true,
	})
}

// Undo reverts the most recent transition. It returns false when there is
// nothing to undo.
func (s *Session) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return false
	}
	s.state = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	s.log.Debug("undo", "remaining", len(s.history))
	s.record(ctx, journal.Entry{Kind: journal.KindUndo, OK: true})
	return true
}

// commit pushes the current state onto the undo stack and replaces it.
// Callers hold s.mu.
func (s *Session) commit(next State) {
	if next.Equal(s.state) {
		return
	}
	s.history = append(s.history, s.state)
	if s.limit > 0 && len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
	s.state = next
}

func (s *Session) rejected(ctx context.Context, kind journal.Kind, courseID string, err error) {
	var perr *progress.PrerequisiteError
	if errors.As(err, &perr) {
		s.log.Info("completion rejected", "course", courseID, "missing", len(perr.Missing))
	} else {
		s.log.Warn("command failed", "kind", string(kind), "course", courseID, "err", err)
	}
	s.record(ctx, journal.Entry{Kind: kind, CourseID: courseID, Detail: err.Error(), OK: false})
}

// record appends to the journal. Journal failures never fail a command.
func (s *Session) record(ctx context.Context, e journal.Entry) {
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.Append(ctx, e); err != nil {
		s.log.Warn("journal append failed", "kind", string(e.Kind), "err", err)
	}
}

// Package tracker composes selection, completion and layout into one
// immutable state with pure reducers, and a Session that applies them for
// the UI.
package tracker

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/progress"
	"github.com/abhisek/kubestronaut/internal/selection"
)

// NotificationDuration is how long a toast stays on screen.
const NotificationDuration = 3 * time.Second

// Level classifies a notification for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a toast-style message produced by a transition.
type Notification struct {
	Title    string
	Lines    []string
	Duration time.Duration
	Level    Level
}

// Effects are the side outputs of a transition.
type Effects struct {
	Notifications []Notification
}

func (e *Effects) notify(n Notification) {
	if n.Duration == 0 {
		n.Duration = NotificationDuration
	}
	e.Notifications = append(e.Notifications, n)
}

// State is an immutable snapshot of everything the learner has changed.
// Reducers never modify a State in place.
type State struct {
	Selected  selection.Set
	Completed progress.Completed
	Positions map[string]curriculum.Position
}

// Initial returns the empty state with every course at its catalog position.
func Initial(cat *curriculum.Catalog) State {
	positions := make(map[string]curriculum.Position)
	for _, c := range cat.Courses() {
		positions[c.ID] = c.Position
	}
	return State{Positions: positions}
}

// ToggleTopic flips a topic and its related set.
func ToggleTopic(cat *curriculum.Catalog, st State, topicID, courseID string) (State, Effects) {
	var fx Effects
	sel, change := selection.ToggleTopic(cat, st.Selected, topicID, courseID)
	if !change.Applied() {
		return st, fx
	}
	st.Selected = sel
	if change.CourseCount() > 1 {
		fx.notify(sharedNotification(change))
	}
	return st, fx
}

// ToggleCourseNode deselects every topic of a fully selected course and
// clears its completion; otherwise it selects every topic and marks the
// course complete. A course without topics toggles on completion alone. A
// completion blocked by missing prerequisites rejects the whole transition.
func ToggleCourseNode(cat *curriculum.Catalog, st State, courseID string) (State, Effects, error) {
	var fx Effects
	course, ok := cat.Course(courseID)
	if !ok {
		return st, fx, fmt.Errorf("%w: %q", progress.ErrUnknownCourse, courseID)
	}

	empty := course.TopicCount() == 0
	if selection.AllSelected(cat, st.Selected, courseID) || (empty && st.Completed.Has(courseID)) {
		st.Selected = selection.DeselectCourse(cat, st.Selected, courseID)
		if st.Completed.Has(courseID) {
			done, err := progress.ToggleCompletion(cat, st.Completed, courseID)
			if err != nil {
				return st, fx, err
			}
			st.Completed = done
		}
		fx.notify(Notification{
			Title: fmt.Sprintf("%s cleared", course.Title),
			Lines: []string{fmt.Sprintf("%d topics deselected", course.TopicCount())},
		})
		return st, fx, nil
	}

	if !st.Completed.Has(courseID) {
		done, err := progress.ToggleCompletion(cat, st.Completed, courseID)
		if err != nil {
			fx.notify(rejectedNotification(err))
			return st, fx, err
		}
		st.Completed = done
	}
	st.Selected = selection.SelectCourse(cat, st.Selected, courseID)
	fx.notify(completedNotification(cat, course, st.Completed))
	return st, fx, nil
}

// ToggleCompletion flips a course's completion through the prerequisite guard.
func ToggleCompletion(cat *curriculum.Catalog, st State, courseID string) (State, Effects, error) {
	var fx Effects
	done, err := progress.ToggleCompletion(cat, st.Completed, courseID)
	if err != nil {
		fx.notify(rejectedNotification(err))
		return st, fx, err
	}
	st.Completed = done
	if done.Has(courseID) {
		course, _ := cat.Course(courseID)
		fx.notify(completedNotification(cat, course, done))
	}
	return st, fx, nil
}

// SetPosition moves a course card. Unknown course IDs are ignored.
func SetPosition(st State, courseID string, x, y float64) State {
	if _, ok := st.Positions[courseID]; !ok {
		return st
	}
	positions := maps.Clone(st.Positions)
	positions[courseID] = curriculum.Position{X: x, Y: y}
	st.Positions = positions
	return st
}

// Equal reports whether two states hold the same selection, completion and
// positions.
func (st State) Equal(o State) bool {
	return st.Selected.Equal(o.Selected) &&
		st.Completed.Equal(o.Completed) &&
		maps.Equal(st.Positions, o.Positions)
}

// Snapshot is the derived view of a State: everything a renderer needs.
type Snapshot struct {
	Selected  []string
	Completed []string
	Progress  map[string]int
	Links     []selection.Link
	Positions map[string]curriculum.Position
}

// View derives the renderable snapshot of a state.
func View(cat *curriculum.Catalog, st State) Snapshot {
	return Snapshot{
		Selected:  st.Selected.IDs(),
		Completed: st.Completed.IDs(),
		Progress:  progress.Compute(cat, st.Completed),
		Links:     selection.Links(cat, st.Selected, st.Positions),
		Positions: maps.Clone(st.Positions),
	}
}

func sharedNotification(change selection.Change) Notification {
	verb := "Selected"
	if !change.Added {
		verb = "Deselected"
	}
	lines := make([]string, len(change.Shared))
	for i, s := range change.Shared {
		lines[i] = fmt.Sprintf("%s: %s", s.CourseTitle, s.TopicTitle)
	}
	return Notification{
		Title: fmt.Sprintf("%s %q in %d courses", verb, change.Title, change.CourseCount()),
		Lines: lines,
		Level: LevelInfo,
	}
}

func rejectedNotification(err error) Notification {
	return Notification{
		Title: "Prerequisites required",
		Lines: []string{err.Error()},
		Level: LevelError,
	}
}

func completedNotification(cat *curriculum.Catalog, course curriculum.Course, done progress.Completed) Notification {
	var lines []string
	if course.Contribution != nil {
		pct := progress.Compute(cat, done)
		for _, id := range cat.CourseIDs() {
			w, ok := course.Contribution.Weights[id]
			if !ok || w == 0 {
				continue
			}
			other, _ := cat.Course(id)
			lines = append(lines, fmt.Sprintf("+%d%% %s (now %d%%)", w, other.Title, pct[id]))
		}
	}
	return Notification{
		Title: fmt.Sprintf("%s completed", course.Title),
		Lines: lines,
		Level: LevelSuccess,
	}
}

// OrderedCourses returns the courses sorted by card position: x, then y,
// then catalog order.
func OrderedCourses(cat *curriculum.Catalog, positions map[string]curriculum.Position) []curriculum.Course {
	courses := cat.Courses()
	slices.SortStableFunc(courses, func(a, b curriculum.Course) int {
		pa, pb := positionOr(positions, a), positionOr(positions, b)
		return cmp.Or(cmp.Compare(pa.X, pb.X), cmp.Compare(pa.Y, pb.Y))
	})
	return courses
}

func positionOr(positions map[string]curriculum.Position, c curriculum.Course) curriculum.Position {
	if p, ok := positions[c.ID]; ok {
		return p
	}
	return c.Position
}

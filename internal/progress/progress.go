// Package progress tracks completed courses and computes the cross-course
// percentage each course has earned.
package progress

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/kubestronaut/internal/curriculum"
)

// ErrUnknownCourse is returned when a course ID is not in the catalog.
var ErrUnknownCourse = errors.New("unknown course")

// PrerequisiteError rejects a completion whose dependencies are not all
// complete.
type PrerequisiteError struct {
	Course  curriculum.Course
	Missing []curriculum.Course
}

func (e *PrerequisiteError) Error() string {
	titles := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		titles[i] = c.Title
	}
	return fmt.Sprintf("cannot complete %s: complete %s first", e.Course.Title, strings.Join(titles, ", "))
}

// Completed is an immutable set of completed course IDs.
type Completed struct {
	ids map[string]struct{}
}

// NewCompleted returns a set holding the given course IDs.
func NewCompleted(ids ...string) Completed {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Completed{ids: m}
}

// Has reports whether the course is complete.
func (c Completed) Has(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// Len returns the number of completed courses.
func (c Completed) Len() int { return len(c.ids) }

// IDs returns the completed course IDs, sorted.
func (c Completed) IDs() []string {
	out := make([]string, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Map returns the set as a membership map.
func (c Completed) Map() map[string]bool {
	m := make(map[string]bool, len(c.ids))
	for id := range c.ids {
		m[id] = true
	}
	return m
}

// Equal reports whether both sets hold the same course IDs.
func (c Completed) Equal(o Completed) bool {
	if len(c.ids) != len(o.ids) {
		return false
	}
	for id := range c.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

func (c Completed) toggled(id string) Completed {
	next := make(map[string]struct{}, len(c.ids)+1)
	for k := range c.ids {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return Completed{ids: next}
}

// ToggleCompletion flips a course's completion. Marking a course complete
// requires all of its dependencies to be complete already; otherwise a
// *PrerequisiteError is returned and the set is unchanged. Removal always
// succeeds.
func ToggleCompletion(cat *curriculum.Catalog, done Completed, courseID string) (Completed, error) {
	course, ok := cat.Course(courseID)
	if !ok {
		return done, fmt.Errorf("%w: %q", ErrUnknownCourse, courseID)
	}
	if !done.Has(courseID) {
		if missing := cat.MissingPrerequisites(courseID, done.Map()); len(missing) > 0 {
			return done, &PrerequisiteError{Course: course, Missing: missing}
		}
	}
	return done.toggled(courseID), nil
}

// Compute returns the percentage earned by every course in the catalog.
// A completed course is 100; every completed course adds its contribution
// weights to their targets. Results are clamped to [0, 100].
func Compute(cat *curriculum.Catalog, done Completed) map[string]int {
	pct := make(map[string]int)
	for _, course := range cat.Courses() {
		pct[course.ID] = 0
	}
	for _, course := range cat.Courses() {
		if !done.Has(course.ID) || course.Contribution == nil {
			continue
		}
		for target, w := range course.Contribution.Weights {
			if _, ok := pct[target]; ok {
				pct[target] += w
			}
		}
	}
	for id := range pct {
		if done.Has(id) {
			pct[id] = 100
		}
		pct[id] = clamp(pct[id])
	}
	return pct
}

// Contributor is one source of a course's percentage.
type Contributor struct {
	CourseID string
	Title    string
	Points   int
}

// Breakdown lists where a course's percentage comes from, in catalog order:
// the course itself when complete, then each completed course that
// contributes to it. Points are raw weights before clamping.
func Breakdown(cat *curriculum.Catalog, done Completed, courseID string) []Contributor {
	target, ok := cat.Course(courseID)
	if !ok {
		return nil
	}
	var out []Contributor
	if done.Has(courseID) {
		out = append(out, Contributor{CourseID: courseID, Title: target.Title, Points: 100})
	}
	for _, course := range cat.Courses() {
		if course.ID == courseID || !done.Has(course.ID) || course.Contribution == nil {
			continue
		}
		if w, ok := course.Contribution.Weights[courseID]; ok && w > 0 {
			out = append(out, Contributor{CourseID: course.ID, Title: course.Title, Points: w})
		}
	}
	return out
}

func clamp(v int) int {
	return max(0, min(100, v))
}

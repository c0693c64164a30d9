package selection

import (
	"github.com/abhisek/kubestronaut/internal/curriculum"
)

// SharedTopic names one member of a toggled concept.
type SharedTopic struct {
	CourseID    string
	CourseTitle string
	TopicTitle  string
}

// Change describes the outcome of a topic toggle. The zero value means the
// toggle did not apply.
type Change struct {
	TopicID string
	Title   string
	Added   bool
	Shared  []SharedTopic
}

// Applied reports whether the toggle changed anything.
func (c Change) Applied() bool {
	return c.TopicID != ""
}

// CourseCount returns the number of distinct courses sharing the concept.
func (c Change) CourseCount() int {
	seen := make(map[string]bool)
	for _, s := range c.Shared {
		seen[s.CourseID] = true
	}
	return len(seen)
}

// ToggleTopic flips the selection of topicID together with its whole related
// set: a selected topic removes every member, an unselected one adds every
// member. courseID names the course the toggle was issued from; when set it
// must own the topic. Unknown IDs leave the selection unchanged.
func ToggleTopic(cat *curriculum.Catalog, sel Set, topicID, courseID string) (Set, Change) {
	ref, ok := cat.Topic(topicID)
	if !ok {
		return sel, Change{}
	}
	if courseID != "" && ref.Course.ID != courseID {
		return sel, Change{}
	}

	members := cat.RelatedSet(topicID)
	change := Change{
		TopicID: topicID,
		Title:   ref.Topic.Title,
		Added:   !sel.Has(topicID),
		Shared:  sharedTopics(cat, members),
	}
	if change.Added {
		return sel.with(members...), change
	}
	return sel.without(members...), change
}

// SelectCourse adds every topic of the course and their related sets.
func SelectCourse(cat *curriculum.Catalog, sel Set, courseID string) Set {
	return sel.with(courseClosure(cat, courseID)...)
}

// DeselectCourse removes every topic of the course and their related sets.
func DeselectCourse(cat *curriculum.Catalog, sel Set, courseID string) Set {
	return sel.without(courseClosure(cat, courseID)...)
}

// AllSelected reports whether every topic of a non-empty course is selected.
func AllSelected(cat *curriculum.Catalog, sel Set, courseID string) bool {
	ids := cat.TopicIDs(courseID)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !sel.Has(id) {
			return false
		}
	}
	return true
}

// SelectedIn returns how many of a course's topics are selected.
func SelectedIn(cat *curriculum.Catalog, sel Set, courseID string) int {
	n := 0
	for _, id := range cat.TopicIDs(courseID) {
		if sel.Has(id) {
			n++
		}
	}
	return n
}

func courseClosure(cat *curriculum.Catalog, courseID string) []string {
	var ids []string
	for _, id := range cat.TopicIDs(courseID) {
		ids = append(ids, cat.RelatedSet(id)...)
	}
	return ids
}

func sharedTopics(cat *curriculum.Catalog, members []string) []SharedTopic {
	byCourse := make(map[string][]SharedTopic)
	for _, id := range members {
		ref, ok := cat.Topic(id)
		if !ok {
			continue
		}
		byCourse[ref.Course.ID] = append(byCourse[ref.Course.ID], SharedTopic{
			CourseID:    ref.Course.ID,
			CourseTitle: ref.Course.Title,
			TopicTitle:  ref.Topic.Title,
		})
	}
	var out []SharedTopic
	for _, id := range cat.CourseIDs() {
		out = append(out, byCourse[id]...)
	}
	return out
}

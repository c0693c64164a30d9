package curriculum

import (
	"slices"
	"sort"
	"strings"
)

type topicLoc struct {
	course  int
	section int
	topic   int
}

// Catalog holds the immutable course set with precomputed indices.
type Catalog struct {
	courses      []Course
	courseIndex  map[string]int
	topics       map[string]topicLoc
	courseTopics map[string][]string
	dependents   map[string][]string
	topoOrder    []string

	// Relationship index, built by buildRelations.
	byTitle  map[string][]string
	groupOf  map[string]int
	groups   [][]string
	concepts []Concept
}

// New validates the courses and builds a Catalog over a private copy of them.
func New(courses []Course) (*Catalog, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}
	return buildCatalog(cloneCourses(courses)), nil
}

// buildCatalog constructs all indices. It expects courses to be valid.
func buildCatalog(courses []Course) *Catalog {
	c := &Catalog{
		courses:      courses,
		courseIndex:  make(map[string]int, len(courses)),
		topics:       make(map[string]topicLoc),
		courseTopics: make(map[string][]string, len(courses)),
		dependents:   make(map[string][]string),
	}

	for ci := range c.courses {
		course := &c.courses[ci]
		c.courseIndex[course.ID] = ci
		for si := range course.Sections {
			for ti, t := range course.Sections[si].Topics {
				c.topics[t.ID] = topicLoc{course: ci, section: si, topic: ti}
				c.courseTopics[course.ID] = append(c.courseTopics[course.ID], t.ID)
			}
		}
	}

	// Reverse edges
	for _, course := range c.courses {
		for _, dep := range course.Dependencies {
			c.dependents[dep] = append(c.dependents[dep], course.ID)
		}
	}

	// Topological order (Kahn's algorithm), ties broken by catalog order.
	inDegree := make(map[string]int, len(c.courses))
	for _, course := range c.courses {
		inDegree[course.ID] = len(course.Dependencies)
	}
	var queue []string
	for _, course := range c.courses {
		if inDegree[course.ID] == 0 {
			queue = append(queue, course.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		c.topoOrder = append(c.topoOrder, id)
		for _, depID := range c.dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	c.buildRelations()
	return c
}

// Courses returns all courses in catalog order.
func (c *Catalog) Courses() []Course {
	return slices.Clone(c.courses)
}

// CourseIDs returns all course IDs in catalog order.
func (c *Catalog) CourseIDs() []string {
	ids := make([]string, len(c.courses))
	for i, course := range c.courses {
		ids[i] = course.ID
	}
	return ids
}

// Course looks up a course by ID.
func (c *Catalog) Course(id string) (Course, bool) {
	i, ok := c.courseIndex[id]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

// Topic resolves a sub-topic ID to its course, section and sub-topic.
func (c *Catalog) Topic(id string) (TopicRef, bool) {
	loc, ok := c.topics[id]
	if !ok {
		return TopicRef{}, false
	}
	course := c.courses[loc.course]
	section := course.Sections[loc.section]
	return TopicRef{Course: course, Section: section, Topic: section.Topics[loc.topic]}, true
}

// CourseOfTopic returns the course that contains the given sub-topic.
func (c *Catalog) CourseOfTopic(topicID string) (Course, bool) {
	loc, ok := c.topics[topicID]
	if !ok {
		return Course{}, false
	}
	return c.courses[loc.course], true
}

// TopicIDs returns every sub-topic ID of a course, flattened across sections.
func (c *Catalog) TopicIDs(courseID string) []string {
	return slices.Clone(c.courseTopics[courseID])
}

// TopicCount returns the total number of sub-topics in the catalog.
func (c *Catalog) TopicCount() int {
	return len(c.topics)
}

// Prerequisites returns the direct dependency courses of a course.
func (c *Catalog) Prerequisites(courseID string) []Course {
	course, ok := c.Course(courseID)
	if !ok {
		return nil
	}
	result := make([]Course, 0, len(course.Dependencies))
	for _, depID := range course.Dependencies {
		if dep, ok := c.Course(depID); ok {
			result = append(result, dep)
		}
	}
	return result
}

// Dependents returns courses that directly depend on the given course.
func (c *Catalog) Dependents(courseID string) []Course {
	ids := c.dependents[courseID]
	result := make([]Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := c.Course(id); ok {
			result = append(result, course)
		}
	}
	return result
}

// MissingPrerequisites returns the dependencies of a course that are not in
// the completed set, in declaration order.
func (c *Catalog) MissingPrerequisites(courseID string, completed map[string]bool) []Course {
	var missing []Course
	for _, dep := range c.Prerequisites(courseID) {
		if !completed[dep.ID] {
			missing = append(missing, dep)
		}
	}
	return missing
}

// IsUnlocked returns true if every dependency of the course is completed.
func (c *Catalog) IsUnlocked(courseID string, completed map[string]bool) bool {
	if _, ok := c.courseIndex[courseID]; !ok {
		return false
	}
	return len(c.MissingPrerequisites(courseID, completed)) == 0
}

// TopologicalOrder returns course IDs such that dependencies come first.
func (c *Catalog) TopologicalOrder() []string {
	return slices.Clone(c.topoOrder)
}

// State computes the display state of a course.
func (c *Catalog) State(courseID string, completed, selected map[string]bool) CourseState {
	if completed[courseID] {
		return StateCompleted
	}
	if !c.IsUnlocked(courseID, completed) {
		return StateLocked
	}
	for _, id := range c.courseTopics[courseID] {
		if selected[id] {
			return StateInProgress
		}
	}
	return StateAvailable
}

// Search returns the sub-topics whose title, section title or course title
// contains term, case-insensitively, in catalog order. An empty term matches
// nothing.
func (c *Catalog) Search(term string) []TopicRef {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var result []TopicRef
	for _, course := range c.courses {
		courseHit := strings.Contains(strings.ToLower(course.Title), term)
		for _, section := range course.Sections {
			sectionHit := strings.Contains(strings.ToLower(section.Title), term)
			for _, t := range section.Topics {
				if courseHit || sectionHit || strings.Contains(strings.ToLower(t.Title), term) {
					result = append(result, TopicRef{Course: course, Section: section, Topic: t})
				}
			}
		}
	}
	return result
}

func cloneCourses(courses []Course) []Course {
	out := make([]Course, len(courses))
	for i, c := range courses {
		c.Dependencies = slices.Clone(c.Dependencies)
		sections := make([]Section, len(c.Sections))
		for si, s := range c.Sections {
			topics := make([]SubTopic, len(s.Topics))
			for ti, t := range s.Topics {
				t.Related = slices.Clone(t.Related)
				topics[ti] = t
			}
			sections[si] = Section{Title: s.Title, Topics: topics}
		}
		c.Sections = sections
		if c.Contribution != nil {
			weights := make(map[string]int, len(c.Contribution.Weights))
			for k, v := range c.Contribution.Weights {
				weights[k] = v
			}
			c.Contribution = &Contribution{Target: c.Contribution.Target, Weights: weights}
		}
		out[i] = c
	}
	return out
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

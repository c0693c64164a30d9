package curriculum

import (
	"slices"
)

// Concept is a group of related sub-topics that spans more than one course.
type Concept struct {
	Title     string
	TopicIDs  []string
	CourseIDs []string
}

// buildRelations groups sub-topics that share an exact title or are linked by
// an explicit related list. The grouping is the symmetric, transitive closure
// of both sources, so a single lookup serves selection and link drawing.
func (c *Catalog) buildRelations() {
	c.byTitle = make(map[string][]string)

	// Catalog order of every topic; used for stable group membership.
	var order []string
	for _, course := range c.courses {
		for _, section := range course.Sections {
			for _, t := range section.Topics {
				order = append(order, t.ID)
				c.byTitle[t.Title] = append(c.byTitle[t.Title], t.ID)
			}
		}
	}

	uf := newUnionFind(order)
	for _, ids := range c.byTitle {
		for _, id := range ids[1:] {
			uf.union(ids[0], id)
		}
	}
	for _, id := range order {
		ref, _ := c.Topic(id)
		for _, rel := range ref.Topic.Related {
			if _, ok := c.topics[rel]; ok {
				uf.union(id, rel)
			}
		}
	}

	c.groupOf = make(map[string]int, len(order))
	rootGroup := make(map[string]int)
	for _, id := range order {
		root := uf.find(id)
		g, ok := rootGroup[root]
		if !ok {
			g = len(c.groups)
			rootGroup[root] = g
			c.groups = append(c.groups, nil)
		}
		c.groupOf[id] = g
		c.groups[g] = append(c.groups[g], id)
	}

	for _, members := range c.groups {
		courses := c.coursesOf(members)
		if len(courses) < 2 {
			continue
		}
		first, _ := c.Topic(members[0])
		ids := slices.Clone(members)
		slices.Sort(ids)
		c.concepts = append(c.concepts, Concept{
			Title:     first.Topic.Title,
			TopicIDs:  ids,
			CourseIDs: courses,
		})
	}
}

// RelatedSet returns every sub-topic ID considered the same concept as
// topicID, including topicID itself, sorted. Unknown IDs yield nil.
func (c *Catalog) RelatedSet(topicID string) []string {
	g, ok := c.groupOf[topicID]
	if !ok {
		return nil
	}
	ids := slices.Clone(c.groups[g])
	slices.Sort(ids)
	return ids
}

// IsRelated reports whether two sub-topics belong to the same concept.
func (c *Catalog) IsRelated(a, b string) bool {
	ga, ok := c.groupOf[a]
	if !ok {
		return false
	}
	gb, ok := c.groupOf[b]
	return ok && ga == gb
}

// RelatedCourses returns the IDs of courses owning a member of the topic's
// related set, in catalog order.
func (c *Catalog) RelatedCourses(topicID string) []string {
	g, ok := c.groupOf[topicID]
	if !ok {
		return nil
	}
	return c.coursesOf(c.groups[g])
}

// TopicsWithTitle returns the IDs of sub-topics with exactly this title.
func (c *Catalog) TopicsWithTitle(title string) []string {
	return slices.Clone(c.byTitle[title])
}

// Concepts returns all concepts shared by two or more courses, in catalog
// order of their first member.
func (c *Catalog) Concepts() []Concept {
	out := make([]Concept, len(c.concepts))
	for i, cp := range c.concepts {
		out[i] = Concept{
			Title:     cp.Title,
			TopicIDs:  slices.Clone(cp.TopicIDs),
			CourseIDs: slices.Clone(cp.CourseIDs),
		}
	}
	return out
}

func (c *Catalog) coursesOf(topicIDs []string) []string {
	seen := make(map[int]bool)
	for _, id := range topicIDs {
		seen[c.topics[id].course] = true
	}
	var result []string
	for i, course := range c.courses {
		if seen[i] {
			result = append(result, course.ID)
		}
	}
	return result
}

// unionFind is a disjoint-set forest over string keys with path halving.
type unionFind struct {
	parent map[string]string
}

func newUnionFind(keys []string) *unionFind {
	uf := &unionFind{parent: make(map[string]string, len(keys))}
	for _, k := range keys {
		uf.parent[k] = k
	}
	return uf
}

func (u *unionFind) find(x string) string {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

package selection

import (
	"hash/fnv"

	"github.com/abhisek/kubestronaut/internal/curriculum"
)

// Palette holds the link color tokens, as hex strings.
var Palette = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#8B5CF6",
	"#EC4899",
	"#06B6D4",
	"#EF4444",
	"#84CC16",
}

// Link is one cross-course annotation: a selected concept that also appears
// in another course.
type Link struct {
	Concept string // title of the selected topic
	From    string // course owning the selected topic
	To      string // other course holding a member of the related set
	FromPos curriculum.Position
	ToPos   curriculum.Position
	Mid     curriculum.Position // control point for a curved edge
	Color   string
}

// Links derives the link annotations for a selection. Each concept yields at
// most one link per unordered course pair. positions overrides the catalog's
// initial course positions.
func Links(cat *curriculum.Catalog, sel Set, positions map[string]curriculum.Position) []Link {
	type key struct {
		concept string
		a, b    string
	}
	seen := make(map[key]bool)

	var links []Link
	for _, id := range sel.IDs() {
		ref, ok := cat.Topic(id)
		if !ok {
			continue
		}
		members := cat.RelatedSet(id)
		concept := members[0]
		from := ref.Course.ID
		for _, to := range cat.RelatedCourses(id) {
			if to == from {
				continue
			}
			a, b := from, to
			if b < a {
				a, b = b, a
			}
			k := key{concept: concept, a: a, b: b}
			if seen[k] {
				continue
			}
			seen[k] = true

			fromPos := positionOf(cat, positions, from)
			toPos := positionOf(cat, positions, to)
			links = append(links, Link{
				Concept: ref.Topic.Title,
				From:    from,
				To:      to,
				FromPos: fromPos,
				ToPos:   toPos,
				Mid:     controlPoint(fromPos, toPos),
				Color:   LinkColor(from, to),
			})
		}
	}
	return links
}

// LinkColor picks a palette color for a course pair. The pick ignores the
// order of the pair and is stable across calls.
func LinkColor(a, b string) string {
	if b < a {
		a, b = b, a
	}
	h := fnv.New32a()
	h.Write([]byte(a))
	h.Write([]byte{0})
	h.Write([]byte(b))
	return Palette[h.Sum32()%uint32(len(Palette))]
}

func positionOf(cat *curriculum.Catalog, positions map[string]curriculum.Position, courseID string) curriculum.Position {
	if p, ok := positions[courseID]; ok {
		return p
	}
	c, _ := cat.Course(courseID)
	return c.Position
}

// controlPoint lifts the midpoint of an edge so parallel links stay apart.
func controlPoint(from, to curriculum.Position) curriculum.Position {
	return curriculum.Position{
		X: (from.X + to.X) / 2,
		Y: (from.Y+to.Y)/2 - 50,
	}
}

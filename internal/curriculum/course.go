package curriculum

// Position is a course node's location on the graph canvas.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SubTopic is the smallest addressable learning unit within a course section.
// IDs are unique across the catalog; titles are not, and a shared title marks
// the same concept in different courses.
type SubTopic struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Related []string `yaml:"related,omitempty"`
}

// Section groups sub-topics within a course.
type Section struct {
	Title  string     `yaml:"title"`
	Topics []SubTopic `yaml:"topics"`
}

// Contribution lists the percentage points a course credits to other courses
// when it is marked complete.
type Contribution struct {
	Target  string         `yaml:"target"`
	Weights map[string]int `yaml:"weights"`
}

// Course is one certification curriculum.
type Course struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description"`
	Dependencies []string      `yaml:"dependencies"`
	Position     Position      `yaml:"position"`
	Sections     []Section     `yaml:"sections"`
	Contribution *Contribution `yaml:"contribution,omitempty"`
}

// TopicCount returns the number of sub-topics across all sections.
func (c Course) TopicCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Topics)
	}
	return n
}

// TopicRef resolves a sub-topic to its owning course and section.
type TopicRef struct {
	Course  Course
	Section Section
	Topic   SubTopic
}

// CourseState represents a course's state relative to the learner.
type CourseState int

const (
	StateLocked     CourseState = iota // One or more dependencies not yet completed
	StateAvailable                     // Dependencies met, nothing selected yet
	StateInProgress                    // Some sub-topics selected
	StateCompleted                     // Marked complete
)

// Icon returns the display icon for a course state.
func (s CourseState) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🔓"
	case StateInProgress:
		return "📖"
	case StateCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a course state.
func (s CourseState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateInProgress:
		return "In Progress"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

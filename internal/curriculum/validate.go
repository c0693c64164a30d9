package curriculum

import (
	"fmt"
	"strings"
)

// validateCourses performs all structural checks on the given course set.
// Returns a combined error describing all problems found, or nil if valid.
func validateCourses(courses []Course) error {
	var errs []string

	if len(courses) == 0 {
		return fmt.Errorf("curriculum validation failed:\n  no courses defined")
	}

	courseSet := make(map[string]bool, len(courses))
	topicOwner := make(map[string]string)

	// Check for duplicate and empty IDs
	for _, c := range courses {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("course %q has an empty ID", c.Title))
		}
		if courseSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course ID: %q", c.ID))
		}
		courseSet[c.ID] = true

		for _, s := range c.Sections {
			for _, t := range s.Topics {
				if t.ID == "" {
					errs = append(errs, fmt.Sprintf("course %q: topic %q has an empty ID", c.ID, t.Title))
					continue
				}
				if owner, ok := topicOwner[t.ID]; ok {
					errs = append(errs, fmt.Sprintf("duplicate topic ID %q in course %q (first defined in %q)", t.ID, c.ID, owner))
					continue
				}
				topicOwner[t.ID] = c.ID
			}
		}
	}

	// Check for dangling dependencies
	for _, c := range courses {
		for _, dep := range c.Dependencies {
			if !courseSet[dep] {
				errs = append(errs, fmt.Sprintf("course %q references nonexistent dependency %q", c.ID, dep))
			} else if dep == c.ID {
				errs = append(errs, fmt.Sprintf("course %q depends on itself", c.ID))
			}
		}
	}

	// Check for cycles using Kahn's algorithm
	inDegree := make(map[string]int, len(courses))
	adjList := make(map[string][]string)
	for _, c := range courses {
		for _, dep := range c.Dependencies {
			if !courseSet[dep] {
				continue
			}
			inDegree[c.ID]++
			adjList[dep] = append(adjList[dep], c.ID)
		}
	}

	var queue []string
	for _, c := range courses {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adjList[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited < len(courseSet) {
		var cycleNodes []string
		for _, c := range courses {
			if inDegree[c.ID] > 0 {
				cycleNodes = append(cycleNodes, c.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving courses: %s", strings.Join(cycleNodes, ", ")))
	}

	// Check explicit relations
	for _, c := range courses {
		for _, s := range c.Sections {
			for _, t := range s.Topics {
				for _, rel := range t.Related {
					if _, ok := topicOwner[rel]; !ok {
						errs = append(errs, fmt.Sprintf("topic %q references nonexistent related topic %q", t.ID, rel))
					}
				}
			}
		}
	}

	// Check contribution weights
	for _, c := range courses {
		if c.Contribution == nil {
			continue
		}
		if c.Contribution.Target != "" && c.Contribution.Target != c.ID {
			errs = append(errs, fmt.Sprintf("course %q: contribution target %q does not match owning course", c.ID, c.Contribution.Target))
		}
		for _, target := range sortedKeys(c.Contribution.Weights) {
			w := c.Contribution.Weights[target]
			prefix := fmt.Sprintf("course %q weight for %q", c.ID, target)
			switch {
			case !courseSet[target]:
				errs = append(errs, fmt.Sprintf("%s: references nonexistent course", prefix))
			case target == c.ID:
				errs = append(errs, fmt.Sprintf("%s: a course cannot contribute to itself", prefix))
			}
			if w < 0 {
				errs = append(errs, fmt.Sprintf("%s: must be >= 0, got %d", prefix, w))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

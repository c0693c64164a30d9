package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/progress"
	"github.com/abhisek/kubestronaut/internal/selection"
)

func TestInitial(t *testing.T) {
	cat := curriculum.Default()
	st := Initial(cat)

	assert.Equal(t, 0, st.Selected.Len())
	assert.Equal(t, 0, st.Completed.Len())
	require.Len(t, st.Positions, 5)
	assert.Equal(t, curriculum.Position{X: 900, Y: 100}, st.Positions["cks"])
}

func TestToggleTopic_NotifiesSharedConcept(t *testing.T) {
	cat := curriculum.Default()

	st, fx := ToggleTopic(cat, Initial(cat), "pods", "cka")
	assert.True(t, st.Selected.Has("kcna-pods"))
	require.Len(t, fx.Notifications, 1)
	n := fx.Notifications[0]
	assert.Contains(t, n.Title, "Pods")
	assert.Contains(t, n.Title, "3 courses")
	assert.Equal(t, []string{"CKA: Pods", "CKAD: Pods", "KCNA: Pods"}, n.Lines)
	assert.Equal(t, NotificationDuration, n.Duration)

	// Removal also notifies.
	st, fx = ToggleTopic(cat, st, "pods", "cka")
	assert.Equal(t, 0, st.Selected.Len())
	require.Len(t, fx.Notifications, 1)
	assert.Contains(t, fx.Notifications[0].Title, "Deselected")
}

func TestToggleTopic_IsolatedTopicIsSilent(t *testing.T) {
	cat := curriculum.Default()
	st, fx := ToggleTopic(cat, Initial(cat), "k8s-extensions", "cka")
	assert.True(t, st.Selected.Has("k8s-extensions"))
	assert.Empty(t, fx.Notifications)
}

func TestToggleTopic_UnknownLeavesState(t *testing.T) {
	cat := curriculum.Default()
	start := Initial(cat)
	st, fx := ToggleTopic(cat, start, "ghost", "cka")
	assert.True(t, st.Equal(start))
	assert.Empty(t, fx.Notifications)
}

func TestToggleCourseNode_RoundTrip(t *testing.T) {
	cat := curriculum.Default()
	start := Initial(cat)

	st, fx, err := ToggleCourseNode(cat, start, "cka")
	require.NoError(t, err)
	assert.True(t, selection.AllSelected(cat, st.Selected, "cka"))
	assert.True(t, st.Completed.Has("cka"))
	require.Len(t, fx.Notifications, 1)
	assert.Equal(t, "CKA completed", fx.Notifications[0].Title)
	assert.Contains(t, fx.Notifications[0].Lines, "+72% CKAD (now 72%)")

	st, _, err = ToggleCourseNode(cat, st, "cka")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Selected.Len())
	assert.False(t, st.Completed.Has("cka"))
	assert.True(t, st.Equal(start))
}

func TestToggleCourseNode_EmptyCourseRoundTrip(t *testing.T) {
	cat, err := curriculum.New([]curriculum.Course{
		{ID: "a", Title: "A", Sections: []curriculum.Section{{Title: "S", Topics: []curriculum.SubTopic{{ID: "t1", Title: "T"}}}}},
		{ID: "e", Title: "E"},
	})
	require.NoError(t, err)
	start := Initial(cat)

	st, _, err := ToggleCourseNode(cat, start, "e")
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, st.Completed.IDs())

	st, fx, err := ToggleCourseNode(cat, st, "e")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Completed.Len())
	assert.True(t, st.Equal(start))
	require.Len(t, fx.Notifications, 1)
	assert.Equal(t, "E cleared", fx.Notifications[0].Title)
}

func TestToggleCourseNode_RejectedWithoutPrerequisite(t *testing.T) {
	cat := curriculum.Default()
	start := Initial(cat)

	st, fx, err := ToggleCourseNode(cat, start, "cks")
	var perr *progress.PrerequisiteError
	require.True(t, errors.As(err, &perr))
	assert.True(t, st.Equal(start), "state must be unchanged")
	require.Len(t, fx.Notifications, 1)
	assert.Equal(t, LevelError, fx.Notifications[0].Level)
	assert.Equal(t, []string{"cannot complete CKS: complete CKA first"}, fx.Notifications[0].Lines)
}

func TestToggleCourseNode_PartialSelectionCompletes(t *testing.T) {
	cat := curriculum.Default()
	st, _ := ToggleTopic(cat, Initial(cat), "etcd", "cka")

	st, _, err := ToggleCourseNode(cat, st, "cka")
	require.NoError(t, err)
	assert.True(t, selection.AllSelected(cat, st.Selected, "cka"))
	assert.True(t, st.Completed.Has("cka"))
}

func TestToggleCourseNode_Unknown(t *testing.T) {
	cat := curriculum.Default()
	start := Initial(cat)
	st, _, err := ToggleCourseNode(cat, start, "nope")
	assert.ErrorIs(t, err, progress.ErrUnknownCourse)
	assert.True(t, st.Equal(start))
}

func TestToggleCompletion_Guard(t *testing.T) {
	cat := curriculum.Default()
	st := Initial(cat)

	st, _, err := ToggleCompletion(cat, st, "cks")
	require.Error(t, err)
	assert.Equal(t, 0, st.Completed.Len())

	st, _, err = ToggleCompletion(cat, st, "cka")
	require.NoError(t, err)
	st, fx, err := ToggleCompletion(cat, st, "cks")
	require.NoError(t, err)
	assert.Equal(t, []string{"cka", "cks"}, st.Completed.IDs())
	require.Len(t, fx.Notifications, 1)
	assert.Equal(t, LevelSuccess, fx.Notifications[0].Level)

	// Un-completing emits nothing.
	_, fx, err = ToggleCompletion(cat, st, "cks")
	require.NoError(t, err)
	assert.Empty(t, fx.Notifications)
}

func TestSetPosition(t *testing.T) {
	cat := curriculum.Default()
	start := Initial(cat)

	moved := SetPosition(start, "cka", 1, 2)
	assert.Equal(t, curriculum.Position{X: 1, Y: 2}, moved.Positions["cka"])
	assert.Equal(t, curriculum.Position{X: 100, Y: 100}, start.Positions["cka"], "input state must not change")

	same := SetPosition(start, "ghost", 1, 2)
	assert.True(t, same.Equal(start))
	assert.NotContains(t, same.Positions, "ghost")
}

func TestView(t *testing.T) {
	cat := curriculum.Default()
	st, _, err := ToggleCourseNode(cat, Initial(cat), "cka")
	require.NoError(t, err)

	snap := View(cat, st)
	assert.Equal(t, []string{"cka"}, snap.Completed)
	assert.Equal(t, map[string]int{"cka": 100, "ckad": 72, "kcna": 69, "cks": 27, "kcsa": 40}, snap.Progress)
	assert.NotEmpty(t, snap.Links)
	assert.Len(t, snap.Positions, 5)
	for _, l := range snap.Links {
		assert.NotEqual(t, l.From, l.To)
		assert.Equal(t, selection.LinkColor(l.From, l.To), l.Color)
	}
}

func courseIDs(courses []curriculum.Course) []string {
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return ids
}

func TestOrderedCourses(t *testing.T) {
	cat := curriculum.Default()
	st := Initial(cat)
	assert.Equal(t, []string{"cka", "ckad", "kcna", "kcsa", "cks"}, courseIDs(OrderedCourses(cat, st.Positions)))

	st = SetPosition(st, "cks", 0, 100)
	assert.Equal(t, []string{"cks", "cka", "ckad", "kcna", "kcsa"}, courseIDs(OrderedCourses(cat, st.Positions)))

	// Ties keep catalog order; missing entries fall back to catalog positions.
	assert.Equal(t, []string{"cka", "ckad", "kcna", "cks", "kcsa"},
		courseIDs(OrderedCourses(cat, map[string]curriculum.Position{"cks": {X: 700, Y: 100}})))
}

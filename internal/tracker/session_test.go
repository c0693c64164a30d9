package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/journal"
	"github.com/abhisek/kubestronaut/internal/logging"
)

type failingRecorder struct{}

func (failingRecorder) Append(context.Context, journal.Entry) (int64, error) {
	return 0, errors.New("disk on fire")
}

func newJournaledSession(t *testing.T) (*Session, *journal.Journal) {
	t.Helper()
	j, err := journal.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return NewSession(curriculum.Default(), WithRecorder(j)), j
}

func TestSession_JournalsCommands(t *testing.T) {
	s, j := newJournaledSession(t)
	ctx := context.Background()

	s.ToggleTopic(ctx, "pods", "cka")
	_, err := s.ToggleCompletion(ctx, "cks")
	require.Error(t, err)
	_, err = s.ToggleCourseNode(ctx, "kcna")
	require.NoError(t, err)
	s.SetPosition(ctx, "kcna", 10, 20)

	entries, err := j.List(ctx, journal.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, journal.KindToggleTopic, entries[0].Kind)
	assert.Equal(t, "selected", entries[0].Detail)

	assert.Equal(t, journal.KindToggleCompletion, entries[1].Kind)
	assert.False(t, entries[1].OK)
	assert.Contains(t, entries[1].Detail, "complete CKA first")

	assert.Equal(t, "completed", entries[2].Detail)
	assert.Equal(t, "10,20", entries[3].Detail)
}

func TestSession_UnknownTopicNotJournaled(t *testing.T) {
	s, j := newJournaledSession(t)
	ctx := context.Background()

	s.ToggleTopic(ctx, "ghost", "cka")
	entries, err := j.List(ctx, journal.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, s.CanUndo())
}

func TestSession_Undo(t *testing.T) {
	s := NewSession(curriculum.Default())
	ctx := context.Background()
	start := s.State()

	assert.False(t, s.Undo(ctx))

	s.ToggleTopic(ctx, "etcd", "cka")
	_, err := s.ToggleCompletion(ctx, "cka")
	require.NoError(t, err)
	s.MoveCourse(ctx, "cka", 5, 0)
	assert.Equal(t, 105.0, s.State().Positions["cka"].X)

	require.True(t, s.Undo(ctx))
	assert.Equal(t, 100.0, s.State().Positions["cka"].X)
	require.True(t, s.Undo(ctx))
	assert.False(t, s.State().Completed.Has("cka"))
	require.True(t, s.Undo(ctx))
	assert.True(t, s.State().Equal(start))
	assert.False(t, s.CanUndo())
}

func TestSession_RejectedCommandNotUndoable(t *testing.T) {
	s := NewSession(curriculum.Default())
	_, err := s.ToggleCourseNode(context.Background(), "cks")
	require.Error(t, err)
	assert.False(t, s.CanUndo())
}

func TestSession_HistoryLimit(t *testing.T) {
	s := NewSession(curriculum.Default(), WithHistoryLimit(2))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.MoveCourse(ctx, "ckad", 1, 0)
	}
	assert.True(t, s.Undo(ctx))
	assert.True(t, s.Undo(ctx))
	assert.False(t, s.Undo(ctx))
	assert.Equal(t, 303.0, s.State().Positions["ckad"].X)
}

func TestSession_JournalFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSession(curriculum.Default(),
		WithRecorder(failingRecorder{}),
		WithLogger(logging.FromZap(zap.New(core))),
	)

	fx := s.ToggleTopic(context.Background(), "pods", "cka")
	assert.Len(t, fx.Notifications, 1)
	assert.True(t, s.State().Selected.Has("pods"), "command must still apply")

	warnings := logs.FilterMessage("journal append failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
}

func TestSession_ConcurrentCommands(t *testing.T) {
	s := NewSession(curriculum.Default())
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"cka", "ckad", "kcna", "kcsa"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.ToggleCompletion(ctx, id)
			assert.NoError(t, err)
			_ = s.View()
		}(id)
	}
	wg.Wait()
	assert.Equal(t, []string{"cka", "ckad", "kcna", "kcsa"}, s.State().Completed.IDs())
}

func TestSession_ConcurrentMoves(t *testing.T) {
	s := NewSession(curriculum.Default())
	ctx := context.Background()
	start := s.State().Positions["cka"]

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.MoveCourse(ctx, "cka", 1, 2)
		}()
	}
	wg.Wait()

	got := s.State().Positions["cka"]
	assert.Equal(t, curriculum.Position{X: start.X + 50, Y: start.Y + 100}, got)
}

package journal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_AssignsSessionID(t *testing.T) {
	a := openTestJournal(t)
	b := openTestJournal(t)
	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestPragmasApplied(t *testing.T) {
	j := openTestJournal(t)

	var fk string
	require.NoError(t, j.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, "1", fk)
}

func TestAppendAndList(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	seq1, err := j.Append(ctx, Entry{Kind: KindToggleTopic, CourseID: "cka", TopicID: "pods", Detail: "selected Pods", OK: true})
	require.NoError(t, err)
	seq2, err := j.Append(ctx, Entry{Kind: KindToggleCompletion, CourseID: "cks", Detail: "cannot complete CKS: complete CKA first"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq1)
	assert.Equal(t, int64(2), seq2)

	entries, err := j.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, KindToggleTopic, first.Kind)
	assert.Equal(t, "pods", first.TopicID)
	assert.Equal(t, j.SessionID(), first.SessionID)
	assert.True(t, first.OK)
	assert.True(t, fixed.Equal(first.Timestamp))

	assert.False(t, entries[1].OK)
	assert.Equal(t, "cks", entries[1].CourseID)
}

func TestList_Filters(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	kinds := []Kind{KindToggleTopic, KindSetPosition, KindToggleTopic, KindUndo, KindToggleTopic}
	for _, k := range kinds {
		_, err := j.Append(ctx, Entry{Kind: k, OK: true})
		require.NoError(t, err)
	}

	topics, err := j.List(ctx, QueryOpts{Kind: KindToggleTopic})
	require.NoError(t, err)
	assert.Len(t, topics, 3)

	after, err := j.List(ctx, QueryOpts{After: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, int64(3), after[0].Sequence)
	assert.Equal(t, int64(4), after[1].Sequence)

	before, err := j.List(ctx, QueryOpts{Before: 3})
	require.NoError(t, err)
	assert.Len(t, before, 2)
}

func TestRecent_NewestFirst(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := j.Append(ctx, Entry{Kind: KindToggleCourse, OK: true})
		require.NoError(t, err)
	}

	recent, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, int64(5), recent[0].Sequence)
	assert.Equal(t, int64(3), recent[2].Sequence)
}

func TestCounts(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	for _, k := range []Kind{KindToggleTopic, KindToggleTopic, KindUndo} {
		_, err := j.Append(ctx, Entry{Kind: k, OK: true})
		require.NoError(t, err)
	}

	counts, err := j.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[Kind]int{KindToggleTopic: 2, KindUndo: 1}, counts)
}

func TestSequenceSharedWithLLMRequests(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	_, err := j.Append(ctx, Entry{Kind: KindToggleTopic, OK: true})
	require.NoError(t, err)
	require.NoError(t, j.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock-model",
		Purpose:      "explain",
		InputTokens:  10,
		OutputTokens: 20,
		LatencyMs:    5,
		Success:      true,
	}))
	seq, err := j.Append(ctx, Entry{Kind: KindUndo, OK: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)

	reqs, err := j.LLMRequests(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, int64(2), reqs[0].Sequence)
	assert.Equal(t, "explain", reqs[0].Purpose)
	assert.Equal(t, 20, reqs[0].OutputTokens)
	assert.True(t, reqs[0].Success)
}

func TestSequenceCounter_Concurrent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	seqs := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := j.Append(ctx, Entry{Kind: KindSetPosition, OK: true})
			assert.NoError(t, err)
			seqs <- s
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[int64]bool)
	for s := range seqs {
		assert.False(t, seen[s], "duplicate sequence %d", s)
		seen[s] = true
	}
	assert.Len(t, seen, n)
}

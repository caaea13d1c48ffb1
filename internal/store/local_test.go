package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	s, err := NewLocal(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkAndCheckReviewed(t *testing.T) {
	s := newTestStore(t)

	reviewed, err := s.IsReviewed("2024-06-10")
	require.NoError(t, err)
	assert.False(t, reviewed)

	require.NoError(t, s.MarkReviewed("2024-06-10", 42))

	reviewed, err = s.IsReviewed("2024-06-10")
	require.NoError(t, err)
	assert.True(t, reviewed)

	// Other dates are unaffected.
	reviewed, err = s.IsReviewed("2024-06-11")
	require.NoError(t, err)
	assert.False(t, reviewed)
}

func TestMarkReviewedIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.MarkReviewed("2024-06-10", 42))
	require.NoError(t, s.MarkReviewed("2024-06-10", 43))

	reviewed, err := s.IsReviewed("2024-06-10")
	require.NoError(t, err)
	assert.True(t, reviewed)
}

func TestSubmissionLog(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.LogSubmission(SubmissionRecord{
		Date: "2024-06-10", MenuID: 42, Satisfied: true, RatedItems: 4,
	}))
	require.NoError(t, s.LogSubmission(SubmissionRecord{
		Date: "2024-06-11", MenuID: 44, Satisfied: false, RatedItems: 3,
	}))

	recs, err := s.RecentSubmissions(10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Newest first
	assert.Equal(t, "2024-06-11", recs[0].Date)
	assert.False(t, recs[0].Satisfied)
	assert.Equal(t, "2024-06-10", recs[1].Date)
	assert.True(t, recs[1].Satisfied)
	assert.Equal(t, 4, recs[1].RatedItems)

	recs, err = s.RecentSubmissions(1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.db")

	s, err := NewLocal(path)
	require.NoError(t, err)
	require.NoError(t, s.MarkReviewed("2024-06-10", 42))
	require.NoError(t, s.Close())

	s2, err := NewLocal(path)
	require.NoError(t, err)
	defer s2.Close()

	reviewed, err := s2.IsReviewed("2024-06-10")
	require.NoError(t, err)
	assert.True(t, reviewed)
}

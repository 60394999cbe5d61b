package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGetRun(t *testing.T) {
	s := openTestStore(t)

	run := &Run{GridSize: 20, Trials: 2, Seed: 7, Mean: 0.6, StdDev: 0.1, ConfidenceLo: 0.46, ConfidenceHi: 0.74}
	trials := []TrialRecord{{Index: 0, OpenSites: 220, Threshold: 0.55}, {Index: 1, OpenSites: 260, Threshold: 0.65}}
	require.NoError(t, s.InsertRun(run, trials))
	assert.NotEmpty(t, run.RunID, "id generated")
	assert.NotZero(t, run.CreatedAtNs)

	got, err := s.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, *run, *got)

	stored, err := s.Trials(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, trials, stored)
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	for i, ts := range []int64{100, 300, 200} {
		run := &Run{RunID: string(rune('a' + i)), GridSize: 5, Trials: 1, CreatedAtNs: ts}
		require.NoError(t, s.InsertRun(run, nil))
	}

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{runs[0].RunID, runs[1].RunID, runs[2].RunID})

	limited, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestInsertRun_DuplicateRollsBack(t *testing.T) {
	s := openTestStore(t)
	run := &Run{RunID: "dup", GridSize: 5, Trials: 1}
	require.NoError(t, s.InsertRun(run, []TrialRecord{{Index: 0, OpenSites: 15, Threshold: 0.6}}))

	again := &Run{RunID: "dup", GridSize: 9, Trials: 1}
	assert.Error(t, s.InsertRun(again, nil))

	got, err := s.GetRun("dup")
	require.NoError(t, err)
	assert.Equal(t, 5, got.GridSize, "original row untouched")
}

func TestDeleteRun(t *testing.T) {
	s := openTestStore(t)
	run := &Run{GridSize: 5, Trials: 1}
	require.NoError(t, s.InsertRun(run, []TrialRecord{{Index: 0, OpenSites: 15, Threshold: 0.6}}))

	require.NoError(t, s.DeleteRun(run.RunID))
	_, err := s.GetRun(run.RunID)
	assert.ErrorIs(t, err, ErrRunNotFound)
	trials, err := s.Trials(run.RunID)
	require.NoError(t, err)
	assert.Empty(t, trials)

	assert.ErrorIs(t, s.DeleteRun(run.RunID), ErrRunNotFound)
}

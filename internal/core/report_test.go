package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport_CountsAndErr(t *testing.T) {
	r := NewReport()
	require.NotEmpty(t, r.RunID)

	r.Add(ReportItem{Type: "package", Name: "tmux", Outcome: OutcomeChanged})
	r.Add(ReportItem{Type: "package", Name: "git", Outcome: OutcomeSatisfied})
	r.Add(ReportItem{Type: "service", Name: "ssh", Outcome: OutcomeFailed, Err: errors.New("unit not found")})
	r.Add(ReportItem{Type: "package", Name: "code", Outcome: OutcomeSkipped})
	r.Finish()

	require.Equal(t, 1, r.Count(OutcomeChanged))
	require.Equal(t, 1, r.Count(OutcomeFailed))
	require.True(t, r.Changed())
	require.False(t, r.FinishedAt.Before(r.StartedAt))

	err := r.Err()
	require.ErrorContains(t, err, "[service] ssh")
	require.ErrorContains(t, err, "unit not found")
}

func TestReport_ErrNilWhenClean(t *testing.T) {
	r := NewReport()
	r.Add(ReportItem{Type: "package", Name: "tmux", Outcome: OutcomeSatisfied})
	require.NoError(t, r.Err())
	require.False(t, r.Changed())
}

func TestReport_FailedItemWithoutError(t *testing.T) {
	r := NewReport()
	r.Add(ReportItem{Type: "sysctl", Name: "vm.swappiness", Outcome: OutcomeFailed})
	require.ErrorContains(t, r.Err(), "sysctl vm.swappiness failed")
}

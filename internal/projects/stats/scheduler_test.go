package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

type fixedSource struct {
	stats domain.Stats
	err   error
	calls int
}

func (f *fixedSource) Stats(context.Context) (domain.Stats, error) {
	f.calls++
	return f.stats, f.err
}

func TestRefreshPublishesGauges(t *testing.T) {
	src := &fixedSource{stats: domain.Stats{Projects: 4, ProgressEntries: 11, GoalsReached: 2}}
	s := NewScheduler(src, zap.NewNop())

	st, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, src.stats, st)

	assert.Equal(t, float64(4), testutil.ToFloat64(ProjectsTotal))
	assert.Equal(t, float64(11), testutil.ToFloat64(ProgressEntriesTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(GoalsReached))
}

func TestStartRunsImmediately(t *testing.T) {
	src := &fixedSource{stats: domain.Stats{Projects: 1}}
	s := NewScheduler(src, zap.NewNop())

	require.NoError(t, s.Start(context.Background(), "@every 1h"))
	defer s.Stop()

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(ProjectsTotal))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&fixedSource{}, zap.NewNop())
	assert.Error(t, s.Start(context.Background(), "every so often"))
}

func TestRunLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewScheduler(&fixedSource{err: errors.New("db gone")}, zap.New(core))

	s.run(context.Background())

	assert.Equal(t, 1, logs.FilterMessage("stats refresh failed").Len())
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunStatusService(t *testing.T) {
	s := NewRunStatusService()

	snap := s.Snapshot()
	assert.True(t, snap.LastRunTime.IsZero())
	assert.Zero(t, snap.RunsTotal)

	s.RecordRun(42, nil)
	snap = s.Snapshot()
	assert.Equal(t, int64(1), snap.RunsTotal)
	assert.Equal(t, int64(42), snap.EventsTotal)
	assert.Empty(t, snap.LastError)
	assert.WithinDuration(t, time.Now(), snap.LastRunTime, 5*time.Second)

	s.RecordRun(0, errors.New("reporting query rejected"))
	snap = s.Snapshot()
	assert.Equal(t, int64(2), snap.RunsTotal)
	assert.Equal(t, int64(42), snap.EventsTotal)
	assert.Equal(t, "reporting query rejected", snap.LastError)

	s.RecordRun(8, nil)
	snap = s.Snapshot()
	assert.Equal(t, int64(50), snap.EventsTotal)
	assert.Empty(t, snap.LastError, "a successful run clears the last error")
}

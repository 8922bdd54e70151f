package services

import (
	"time"

	"go.uber.org/atomic"
)

// RunStatus is a point-in-time view of the collector's progress, served by
// the status endpoint.
type RunStatus struct {
	LastRunTime time.Time `json:"last_run_time"`
	LastError   string    `json:"last_error,omitempty"`
	RunsTotal   int64     `json:"runs_total"`
	EventsTotal int64     `json:"events_total"`
}

type RunStatusInterface interface {
	RecordRun(events int, err error)
	Snapshot() RunStatus
}

// RunStatusService tracks run outcomes lock-free; the scheduler writes, the
// web handlers read.
type RunStatusService struct {
	lastRunUnix atomic.Int64
	lastError   atomic.String
	runsTotal   atomic.Int64
	eventsTotal atomic.Int64
}

func NewRunStatusService() RunStatusInterface {
	return &RunStatusService{}
}

func (s *RunStatusService) RecordRun(events int, err error) {
	s.lastRunUnix.Store(time.Now().Unix())
	s.runsTotal.Inc()
	s.eventsTotal.Add(int64(events))
	if err != nil {
		s.lastError.Store(err.Error())
	} else {
		s.lastError.Store("")
	}
}

func (s *RunStatusService) Snapshot() RunStatus {
	var lastRun time.Time
	if unix := s.lastRunUnix.Load(); unix > 0 {
		lastRun = time.Unix(unix, 0)
	}
	return RunStatus{
		LastRunTime: lastRun,
		LastError:   s.lastError.Load(),
		RunsTotal:   s.runsTotal.Load(),
		EventsTotal: s.eventsTotal.Load(),
	}
}

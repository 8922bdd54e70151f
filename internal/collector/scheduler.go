package collector

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"lpec/internal/collector/interfaces"
	"lpec/internal/providers"
	"lpec/internal/services"
	"lpec/internal/structures"
)

// Scheduler runs collection on a fixed interval. Runs never overlap: the
// ops mutex serializes them, and the checkpoint contract assumes a single
// active invocation.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	driver  *Driver
	archive *Archive
	status  services.RunStatusInterface
	cron    *gron.Cron
	fatal   chan error
	opsMu   sync.Mutex
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	driver *Driver,
	archive *Archive,
	status services.RunStatusInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		driver:  driver,
		archive: archive,
		status:  status,
		fatal:   make(chan error, 1),
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Collector.Interval), func() {
		if err := s.RunOnce(); err != nil && errors.Is(err, ErrQueryRejected) {
			select {
			case s.fatal <- err:
			default:
			}
		}
	})

	s.cron.Start()

	// First run happens immediately, not one interval from now.
	go func() {
		if err := s.RunOnce(); err != nil && errors.Is(err, ErrQueryRejected) {
			select {
			case s.fatal <- err:
			default:
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce performs a single collection invocation.
func (s *Scheduler) RunOnce() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeCollect, "Starting collection run")
	start := time.Now()

	emitted, err := s.driver.Collect(context.Background())
	s.status.RecordRun(emitted, err)
	if err != nil {
		s.logger.Errorf(providers.TypeCollect, "Collection run failed after %d event(s): %s", emitted, err)
		return err
	}

	if err := s.archive.Prune(); err != nil {
		s.logger.Warnf(providers.TypeApp, "Archive prune failed: %s", err)
	}

	s.logger.Infof(providers.TypeCollect, "Collection run finished: events=%d duration=%s",
		emitted, time.Since(start).Truncate(time.Millisecond))
	return nil
}

// Fatal delivers errors that must terminate the whole process.
func (s *Scheduler) Fatal() <-chan error {
	return s.fatal
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/internal/utils"
)

var ErrRunInProgress = fmt.Errorf("an analysis run is already in progress")

// State is the scheduler's run state. The live scheduler is Idle or Running;
// Succeeded and Failed describe finished runs.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Runner executes one full pipeline pass. When testOnly is set the report is
// assembled but not delivered.
type Runner interface {
	Run(ctx context.Context, testOnly bool) error
}

// RunRecord describes a finished run.
type RunRecord struct {
	Id         string
	StartedAt  time.Time
	FinishedAt time.Time
	State      State
	Error      string
	TestOnly   bool
}

// Scheduler owns the recurring weekly trigger and enforces at most one run
// in flight. A trigger firing while a run is in progress is dropped and
// logged, never queued.
type Scheduler struct {
	runner Runner
	clock  utils.Clock
	cron   *cron.Cron

	mu      sync.Mutex
	state   State
	current RunRecord
	lastRun *RunRecord
}

func New(runner Runner, clock utils.Clock) *Scheduler {
	return &Scheduler{
		runner: runner,
		clock:  clock,
		state:  StateIdle,
	}
}

// Start registers the recurring trigger and begins firing it. The cron spec
// uses the standard five-field format, e.g. "0 9 * * MON".
func (s *Scheduler) Start(cronSpec string) error {
	c := cron.New()
	_, err := c.AddFunc(cronSpec, func() {
		if err := s.RunNow(context.Background(), false); err != nil {
			log.Errorf("scheduled run finished with error: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
	}
	s.cron = c
	c.Start()
	log.Infof("Scheduled weekly analysis with spec %q, next run at %s", cronSpec, s.NextRun().Format(time.RFC3339))
	return nil
}

// Stop halts the recurring trigger. An in-flight run finishes normally.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunNow executes one run synchronously: the recurring trigger and the
// immediate-run override both land here. Returns ErrRunInProgress when a
// run is already in flight; that trigger is dropped.
func (s *Scheduler) RunNow(ctx context.Context, testOnly bool) error {
	if !s.begin(testOnly) {
		log.Warnf("Trigger fired while a run is in progress, dropping it")
		return ErrRunInProgress
	}

	err := s.runner.Run(ctx, testOnly)
	s.finish(err)
	return err
}

// TriggerAsync fires an immediate run in the background, reporting only
// whether the trigger was accepted.
func (s *Scheduler) TriggerAsync(testOnly bool) bool {
	if !s.begin(testOnly) {
		log.Warnf("Trigger fired while a run is in progress, dropping it")
		return false
	}
	go func() {
		err := s.runner.Run(context.Background(), testOnly)
		s.finish(err)
	}()
	return true
}

func (s *Scheduler) begin(testOnly bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return false
	}
	s.state = StateRunning
	s.current = RunRecord{
		Id:        uuid.NewString(),
		StartedAt: s.clock.Now(),
		State:     StateRunning,
		TestOnly:  testOnly,
	}
	log.Infof("Starting analysis run %s (testOnly=%t)", s.current.Id, testOnly)
	return true
}

func (s *Scheduler) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.current
	record.FinishedAt = s.clock.Now()
	if err != nil {
		record.State = StateFailed
		record.Error = err.Error()
		log.Errorf("Analysis run %s failed: %v", record.Id, err)
	} else {
		record.State = StateSucceeded
		log.Infof("Analysis run %s succeeded", record.Id)
	}
	s.lastRun = &record
	s.state = StateIdle
}

// State reports whether a run is currently in flight.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastRun returns the record of the most recently finished run.
func (s *Scheduler) LastRun() (RunRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRun == nil {
		return RunRecord{}, false
	}
	return *s.lastRun, true
}

// NextRun returns the next recurring trigger time, or zero when the
// recurring trigger is not started.
func (s *Scheduler) NextRun() time.Time {
	if s.cron == nil {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
)

type stubJobStore struct {
	jobs    map[string]*model.ScheduledJob
	due     []model.ScheduledJob
	dueErr  error
	marked  []string
	markErr error
}

func newStubJobStore() *stubJobStore {
	return &stubJobStore{jobs: make(map[string]*model.ScheduledJob)}
}

func (s *stubJobStore) Upsert(job *model.ScheduledJob) error {
	s.jobs[job.JobID] = job
	return nil
}

func (s *stubJobStore) Due(now time.Time) ([]model.ScheduledJob, error) {
	return s.due, s.dueErr
}

func (s *stubJobStore) MarkRun(jobID string, ranAt time.Time, interval time.Duration) error {
	s.marked = append(s.marked, jobID)
	return s.markErr
}

func newTestScheduler(store JobStore) *SchedulerService {
	// An empty DSN leaves the history listener unconnected; history rows
	// are dropped, which is the tolerated degraded mode.
	return NewSchedulerService(config.SchedulerConfig{Enabled: true, TickSeconds: 1}, store, "")
}

func TestSchedulerRegister(t *testing.T) {
	store := newStubJobStore()
	s := newTestScheduler(store)

	err := s.Register("sweep", "Dispatch sweep", 5*time.Minute, "", func(ctx context.Context, payload string) error {
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	job, ok := store.jobs["sweep"]
	if !ok {
		t.Fatal("job was not upserted")
	}
	if job.IntervalSeconds != 300 || !job.Enabled {
		t.Fatalf("job = %+v", job)
	}
	if _, ok := s.handlers["sweep"]; !ok {
		t.Fatal("handler was not bound")
	}
}

func TestSchedulerTickRunsDueJobs(t *testing.T) {
	store := newStubJobStore()
	s := newTestScheduler(store)

	var gotPayload string
	runs := 0
	if err := s.Register("sweep", "sweep", time.Minute, "p1", func(ctx context.Context, payload string) error {
		runs++
		gotPayload = payload
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	store.due = []model.ScheduledJob{{JobID: "sweep", IntervalSeconds: 60, Payload: "p1"}}
	s.tick()

	if runs != 1 {
		t.Fatalf("runs = %d", runs)
	}
	if gotPayload != "p1" {
		t.Fatalf("payload = %q", gotPayload)
	}
	if len(store.marked) != 1 || store.marked[0] != "sweep" {
		t.Fatalf("marked = %v", store.marked)
	}
}

func TestSchedulerFailingJobStillAdvances(t *testing.T) {
	store := newStubJobStore()
	s := newTestScheduler(store)

	if err := s.Register("sweep", "sweep", time.Minute, "", func(ctx context.Context, payload string) error {
		return errors.New("dispatch refused")
	}); err != nil {
		t.Fatal(err)
	}

	store.due = []model.ScheduledJob{{JobID: "sweep", IntervalSeconds: 60}}
	s.tick()

	if len(store.marked) != 1 {
		t.Fatalf("marked = %v, the schedule must advance after a failed run", store.marked)
	}
}

func TestSchedulerRecoversFromPanic(t *testing.T) {
	store := newStubJobStore()
	s := newTestScheduler(store)

	if err := s.Register("sweep", "sweep", time.Minute, "", func(ctx context.Context, payload string) error {
		panic("boom")
	}); err != nil {
		t.Fatal(err)
	}

	store.due = []model.ScheduledJob{{JobID: "sweep", IntervalSeconds: 60}}
	s.tick() // must not propagate the panic

	if len(store.marked) != 1 {
		t.Fatalf("marked = %v", store.marked)
	}
}

func TestSchedulerUnknownJobSkipsButAdvances(t *testing.T) {
	store := newStubJobStore()
	s := newTestScheduler(store)

	store.due = []model.ScheduledJob{{JobID: "ghost", IntervalSeconds: 60}}
	s.tick()

	if len(store.marked) != 1 || store.marked[0] != "ghost" {
		t.Fatalf("marked = %v", store.marked)
	}
}

func TestSchedulerStoreReadFailureIsQuiet(t *testing.T) {
	store := newStubJobStore()
	store.dueErr = errors.New("mysql gone away")
	s := newTestScheduler(store)

	s.tick() // logs and waits for the next tick

	if len(store.marked) != 0 {
		t.Fatalf("marked = %v", store.marked)
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/logger"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// JobFunc is one schedulable unit of work.
type JobFunc func(ctx context.Context, payload string) error

// JobStore is the durable schedule the scheduler runs against.
type JobStore interface {
	Upsert(job *model.ScheduledJob) error
	Due(now time.Time) ([]model.ScheduledJob, error)
	MarkRun(jobID string, ranAt time.Time, interval time.Duration) error
}

// SchedulerService runs background jobs against a durable MySQL-backed job
// store, so schedules survive a restart. After every run, success or not,
// a history listener appends one row over its own database connection;
// history failures never reach the job or the scheduler.
type SchedulerService struct {
	cfg      config.SchedulerConfig
	store    JobStore
	handlers map[string]JobFunc

	// historyDB is deliberately a separate connection pool from the job
	// store's: a logging write must not contend with, or be poisoned by,
	// whatever state the job left the shared pool in.
	historyDB *gorm.DB

	stop chan struct{}
}

func NewSchedulerService(cfg config.SchedulerConfig, store JobStore, dsn string) *SchedulerService {
	historyDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		// The scheduler still runs; history rows are just dropped (and
		// logged) until the listener connection is available.
		logger.Log.Warn("job history connection unavailable", zap.Error(err))
		historyDB = nil
	}

	return &SchedulerService{
		cfg:       cfg,
		store:     store,
		handlers:  make(map[string]JobFunc),
		historyDB: historyDB,
		stop:      make(chan struct{}),
	}
}

// Register adds a job definition to the durable store and binds its
// handler. Re-registering a known job keeps its existing schedule.
func (s *SchedulerService) Register(jobID, name string, interval time.Duration, payload string, fn JobFunc) error {
	if err := s.store.Upsert(&model.ScheduledJob{
		JobID:           jobID,
		Name:            name,
		IntervalSeconds: int(interval / time.Second),
		Payload:         payload,
		Enabled:         true,
	}); err != nil {
		return err
	}
	s.handlers[jobID] = fn
	return nil
}

// Run ticks until Stop, executing due jobs. Jobs run on the scheduler's
// own goroutine, independent of inbound request traffic.
func (s *SchedulerService) Run() {
	ticker := time.NewTicker(time.Duration(s.cfg.TickSeconds) * time.Second)
	defer ticker.Stop()

	logger.Log.Info("scheduler started", zap.Int("tick_seconds", s.cfg.TickSeconds))

	for {
		select {
		case <-s.stop:
			logger.Log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *SchedulerService) Stop() {
	close(s.stop)
}

func (s *SchedulerService) tick() {
	now := time.Now()
	due, err := s.store.Due(now)
	if err != nil {
		logger.Log.Error("scheduler store read failed", zap.Error(err))
		return
	}

	for _, job := range due {
		s.runJob(job, now)
	}
}

func (s *SchedulerService) runJob(job model.ScheduledJob, now time.Time) {
	fn, ok := s.handlers[job.JobID]
	if !ok {
		// A durable row without a handler: another instance registered
		// it, or the job was removed from code. Skip, keep the schedule
		// moving so it does not fire every tick.
		s.store.MarkRun(job.JobID, now, time.Duration(job.IntervalSeconds)*time.Second)
		return
	}

	err := s.execute(fn, job.Payload)

	status := model.JobRunSuccess
	errMsg := ""
	if err != nil {
		status = model.JobRunFailed
		errMsg = err.Error()
		logger.Log.Error("scheduled job failed",
			zap.String("job_id", job.JobID),
			zap.Error(err),
		)
	}
	monitoring.JobRunCounter.WithLabelValues(job.JobID, status).Inc()

	if err := s.store.MarkRun(job.JobID, now, time.Duration(job.IntervalSeconds)*time.Second); err != nil {
		logger.Log.Error("scheduler store update failed",
			zap.String("job_id", job.JobID),
			zap.Error(err),
		)
	}

	s.recordHistory(job.JobID, now, status, errMsg)
}

func (s *SchedulerService) execute(fn JobFunc, payload string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return fn(ctx, payload)
}

// recordHistory appends the run outcome. Failures here are logged and
// swallowed: telemetry must never mask or abort the job it describes.
func (s *SchedulerService) recordHistory(jobID string, ranAt time.Time, status, errMsg string) {
	if s.historyDB == nil {
		logger.Log.Warn("job history dropped, no listener connection",
			zap.String("job_id", jobID),
			zap.String("status", status),
		)
		return
	}

	row := &model.JobHistory{
		JobID:  jobID,
		RunAt:  ranAt,
		Status: status,
		Error:  errMsg,
	}
	if err := s.historyDB.Create(row).Error; err != nil {
		logger.Log.Error("job history insert failed",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
	}
}

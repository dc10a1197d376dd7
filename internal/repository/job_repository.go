package repository

import (
	"time"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/model"

	"gorm.io/gorm"
)

// JobRepository is the scheduler's private store. Request-handling code
// never touches it.
type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// Upsert registers a job definition, keeping an existing row's schedule if
// the job is already known so restarts do not reset NextRun.
func (r *JobRepository) Upsert(job *model.ScheduledJob) error {
	var existing model.ScheduledJob
	err := r.DB.First(&existing, "job_id = ?", job.JobID).Error
	if err == gorm.ErrRecordNotFound {
		if job.NextRun.IsZero() {
			job.NextRun = time.Now().Add(time.Duration(job.IntervalSeconds) * time.Second)
		}
		return r.DB.Create(job).Error
	}
	if err != nil {
		return err
	}

	existing.Name = job.Name
	existing.IntervalSeconds = job.IntervalSeconds
	existing.Payload = job.Payload
	existing.Enabled = job.Enabled
	return r.DB.Save(&existing).Error
}

// Due returns enabled jobs whose NextRun has passed.
func (r *JobRepository) Due(now time.Time) ([]model.ScheduledJob, error) {
	var jobs []model.ScheduledJob
	err := r.DB.Where("enabled = ? AND next_run <= ?", true, now).Find(&jobs).Error
	return jobs, err
}

// MarkRun advances a job's schedule after an execution.
func (r *JobRepository) MarkRun(jobID string, ranAt time.Time, interval time.Duration) error {
	return r.DB.Model(&model.ScheduledJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]interface{}{
			"last_run": ranAt,
			"next_run": ranAt.Add(interval),
		}).Error
}

func (r *JobRepository) History(jobID string, limit int) ([]model.JobHistory, error) {
	var rows []model.JobHistory
	q := r.DB.Order("run_at DESC").Limit(limit)
	if jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

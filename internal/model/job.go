package model

import "time"

// ScheduledJob is the scheduler's durable store. Jobs survive a process
// restart; NextRun is advanced after every execution.
type ScheduledJob struct {
	BaseModel
	JobID           string    `gorm:"type:varchar(64);uniqueIndex" json:"jobId"`
	Name            string    `gorm:"type:varchar(191)" json:"name"`
	IntervalSeconds int       `json:"intervalSeconds"`
	Payload         string    `gorm:"type:text" json:"payload"`
	Enabled         bool      `gorm:"default:true" json:"enabled"`
	NextRun         time.Time `gorm:"index" json:"nextRun"`
	LastRun         time.Time `json:"lastRun"`
}

func (ScheduledJob) TableName() string {
	return "scheduled_jobs"
}

// Job run outcomes recorded in the history table.
const (
	JobRunSuccess = "SUCCESS"
	JobRunFailed  = "FAILED"
)

// JobHistory is an append-only log row written after every job execution.
// Nothing in this codebase updates or deletes these rows.
type JobHistory struct {
	BaseModel
	JobID  string    `gorm:"type:varchar(64);index" json:"jobId"`
	RunAt  time.Time `json:"runAt"`
	Status string    `gorm:"type:varchar(16)" json:"status"`
	Error  string    `gorm:"type:text" json:"error"`
}

func (JobHistory) TableName() string {
	return "job_history"
}

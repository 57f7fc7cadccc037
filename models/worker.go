package models

import "time"

// WorkerConfig holds configuration for the table provisioning worker
type WorkerConfig struct {
	CronSchedule string `json:"cron_schedule"`

	LockTimeout time.Duration `json:"lock_timeout"`

	MaxRetries int           `json:"max_retries"`
	RetryDelay time.Duration `json:"retry_delay"`

	Environment    string   `json:"environment"`
	RequiredTables []string `json:"required_tables"`

	LockFilePath string `json:"lock_file_path"`

	DryRun  bool `json:"dry_run"`
	RunOnce bool `json:"run_once"`
}

// LockInfo represents the provisioning lock held by one worker
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// ProvisionStatus is the outcome of one provisioning run
type ProvisionStatus string

const (
	ProvisionStatusIdle      ProvisionStatus = "idle"
	ProvisionStatusRunning   ProvisionStatus = "running"
	ProvisionStatusCompleted ProvisionStatus = "completed"
	ProvisionStatusFailed    ProvisionStatus = "failed"
	ProvisionStatusSkipped   ProvisionStatus = "skipped"
)

// ProvisionResult records the last provisioning run
type ProvisionResult struct {
	Status        ProvisionStatus `json:"status"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       *time.Time      `json:"end_time,omitempty"`
	TablesCreated []string        `json:"tables_created"`
	TablesExisted []string        `json:"tables_existed"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	Environment   string          `json:"environment"`
}

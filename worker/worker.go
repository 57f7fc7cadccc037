package worker

import (
	"awards-backend/dal"
	"awards-backend/metrics"
	"awards-backend/models"
	"awards-backend/utils"
	"awards-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

const runTimeout = 15 * time.Minute

// scheduleParser accepts six-field schedules with a leading seconds field
var scheduleParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Service keeps the DynamoDB tables the API needs in place. It runs once
// at start or on a cron schedule and records the last run for the API.
type Service struct {
	config       *models.Config
	workerConfig *models.WorkerConfig
	logger       logger.Logger
	metrics      *metrics.Metrics

	lockManager *LockManager
	provisioner *TableProvisioner
	cronJob     *cron.Cron
	ownerID     string

	runMu sync.Mutex // serializes runs within this process

	mu        sync.RWMutex
	last      models.ProvisionResult
	isRunning bool

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService builds the provisioning worker. m may be nil.
func NewService(cfg *models.Config, db dal.DatabaseClientInterface, log logger.Logger, m *metrics.Metrics) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database client cannot be nil")
	}

	workerConfig := &models.WorkerConfig{
		CronSchedule:   cfg.WorkerSchedule,
		LockTimeout:    30 * time.Minute,
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		Environment:    cfg.AppEnv,
		RequiredTables: requiredTables(cfg),
		LockFilePath:   filepath.Join(os.TempDir(), fmt.Sprintf("awards-provision-%s.lock", cfg.AppEnv)),
		DryRun:         os.Getenv("PROVISION_DRY_RUN") == "true",
		RunOnce:        cfg.WorkerRunOnce,
	}
	if workerConfig.CronSchedule == "" {
		workerConfig.CronSchedule = getCronScheduleForEnvironment(cfg.AppEnv)
	}

	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}
	log.Debugf("Worker configuration: %s", utils.PrintPrettyJSON(workerConfig))

	return newService(cfg, workerConfig, db, log, m), nil
}

func newService(cfg *models.Config, workerConfig *models.WorkerConfig, db dal.DatabaseClientInterface, log logger.Logger, m *metrics.Metrics) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		config:       cfg,
		workerConfig: workerConfig,
		logger:       log,
		metrics:      m,
		lockManager:  NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout, workerConfig.Environment),
		provisioner:  NewTableProvisioner(db, log, workerConfig),
		cronJob:      cron.New(),
		ownerID:      newOwnerID(),
		last: models.ProvisionResult{
			Status:      models.ProvisionStatusIdle,
			Environment: workerConfig.Environment,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// requiredTables prefixes each configured table name
func requiredTables(cfg *models.Config) []string {
	tables := make([]string, 0, len(cfg.Tables))
	for _, name := range cfg.Tables {
		tables = append(tables, cfg.DynamoDBTablePrefix+"_"+name)
	}
	return tables
}

func newOwnerID() string {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	return fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])
}

// Start runs provisioning in the background, once or on the schedule
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("worker is already running")
	}
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("worker has been stopped")
	default:
	}

	s.logger.Infof("Starting table provisioning worker %s (run once: %v)", s.ownerID, s.workerConfig.RunOnce)

	if !s.workerConfig.RunOnce {
		if err := s.cronJob.AddFunc(s.workerConfig.CronSchedule, s.scheduledRun); err != nil {
			return fmt.Errorf("failed to add cron job: %w", err)
		}
		s.cronJob.Start()
		s.logger.Infof("Provisioning scheduled with %q", s.workerConfig.CronSchedule)
	}
	s.isRunning = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.scheduledRun()
	}()

	return nil
}

func (s *Service) scheduledRun() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("Provisioning run panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	if _, err := s.RunNow(ctx); err != nil {
		s.logger.Errorf("Table provisioning failed: %v", err)
	}
}

// RunNow provisions the required tables and returns the run's result. A
// run is skipped when another process holds the lock file.
func (s *Service) RunNow(ctx context.Context) (models.ProvisionResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	result := models.ProvisionResult{
		Status:        models.ProvisionStatusRunning,
		StartTime:     time.Now().UTC(),
		TablesCreated: []string{},
		TablesExisted: []string{},
		Environment:   s.workerConfig.Environment,
	}
	s.setLast(result)

	lockInfo, err := s.lockManager.AcquireLock(s.ownerID)
	if err != nil {
		status := models.ProvisionStatusFailed
		if errors.Is(err, ErrLockHeld) {
			status = models.ProvisionStatusSkipped
			s.logger.Warnf("Skipping provisioning: %v", err)
		}
		return s.finish(result, status, err), err
	}
	defer func() {
		if err := s.lockManager.ReleaseLock(lockInfo); err != nil {
			s.logger.Errorf("Failed to release lock: %v", err)
		}
	}()

	created, existed, err := s.provisioner.EnsureTables(ctx, s.workerConfig.RequiredTables)
	result.TablesCreated = created
	result.TablesExisted = existed
	if err != nil {
		return s.finish(result, models.ProvisionStatusFailed, err), err
	}

	s.logger.Infof("Table provisioning completed: %d created, %d existing", len(created), len(existed))
	return s.finish(result, models.ProvisionStatusCompleted, nil), nil
}

func (s *Service) finish(result models.ProvisionResult, status models.ProvisionStatus, err error) models.ProvisionResult {
	end := time.Now().UTC()
	result.Status = status
	result.EndTime = &end
	if err != nil {
		result.ErrorMessage = err.Error()
	}

	s.setLast(result)
	if s.metrics != nil {
		s.metrics.IncProvisionRun(string(status))
	}
	return result
}

func (s *Service) setLast(result models.ProvisionResult) {
	s.mu.Lock()
	s.last = result
	s.mu.Unlock()
}

// LastResult returns the most recent run, or an idle result before the first
func (s *Service) LastResult() models.ProvisionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// IsRunning reports whether Start has been called and Stop has not
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Stop cancels in-flight runs, stops the schedule and waits for the
// background run started by Start.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping table provisioning worker")
		s.cancel()
		s.cronJob.Stop()

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.wg.Wait()
	})
}

func validateWorkerConfig(config *models.WorkerConfig) error {
	if config == nil {
		return fmt.Errorf("worker config cannot be nil")
	}
	if config.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	if config.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if config.RetryDelay <= 0 {
		return fmt.Errorf("retry delay must be positive")
	}
	if len(config.RequiredTables) == 0 {
		return fmt.Errorf("at least one required table must be specified")
	}
	if config.LockFilePath == "" {
		return fmt.Errorf("lock file path is required")
	}

	if !config.RunOnce {
		if _, err := scheduleParser.Parse(config.CronSchedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", config.CronSchedule, err)
		}
	}

	return nil
}

// getCronScheduleForEnvironment returns the fallback schedule when none is configured
func getCronScheduleForEnvironment(env string) string {
	switch env {
	case "development":
		return "0 */1 * * * *"
	case "production":
		return "0 */15 * * * *"
	default:
		return "0 */10 * * * *"
	}
}

package worker

import (
	"awards-backend/dal"
	"awards-backend/infrastructure"
	"awards-backend/models"
	"awards-backend/utils/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// TableProvisioner creates the configured tables that do not exist yet
type TableProvisioner struct {
	db         dal.DatabaseClientInterface
	logger     logger.Logger
	maxRetries int
	retryDelay time.Duration
	dryRun     bool
}

func NewTableProvisioner(db dal.DatabaseClientInterface, log logger.Logger, workerCfg *models.WorkerConfig) *TableProvisioner {
	return &TableProvisioner{
		db:         db,
		logger:     log,
		maxRetries: workerCfg.MaxRetries,
		retryDelay: workerCfg.RetryDelay,
		dryRun:     workerCfg.DryRun,
	}
}

// EnsureTables walks tableNames in order and creates each missing table.
// It stops at the first table that cannot be created.
func (tp *TableProvisioner) EnsureTables(ctx context.Context, tableNames []string) (created, existed []string, err error) {
	created, existed = []string{}, []string{}

	for _, name := range tableNames {
		exists, err := tp.tableExists(ctx, name)
		if err != nil {
			return created, existed, fmt.Errorf("failed to describe table %s: %w", name, err)
		}
		if exists {
			tp.logger.Debugf("Table %s already exists", name)
			existed = append(existed, name)
			continue
		}

		if tp.dryRun {
			tp.logger.Infof("Dry run: would create table %s", name)
			continue
		}

		alreadyCreated, err := tp.createTableWithRetry(ctx, name)
		if err != nil {
			return created, existed, err
		}
		if alreadyCreated {
			existed = append(existed, name)
			continue
		}

		tp.logger.Infof("Created table %s", name)
		created = append(created, name)
	}

	return created, existed, nil
}

// createTableWithRetry reports true when another writer created the table first
func (tp *TableProvisioner) createTableWithRetry(ctx context.Context, name string) (bool, error) {
	input, err := infrastructure.GetTables(name)
	if err != nil {
		return false, fmt.Errorf("failed to get table input: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= tp.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * tp.retryDelay
			tp.logger.Infof("Retrying table creation for %s in %v (attempt %d/%d)", name, delay, attempt+1, tp.maxRetries+1)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}

		lastErr = tp.db.CreateTable(ctx, input)
		if lastErr == nil {
			return false, nil
		}
		if isTableInUseError(lastErr) {
			tp.logger.Infof("Table %s is already being created", name)
			return true, nil
		}
		tp.logger.Warnf("Attempt %d failed to create table %s: %v", attempt+1, name, lastErr)
	}

	return false, fmt.Errorf("failed to create table %s after %d attempts: %w", name, tp.maxRetries+1, lastErr)
}

func (tp *TableProvisioner) tableExists(ctx context.Context, name string) (bool, error) {
	_, err := tp.db.DescribeTable(ctx, name)
	if err != nil {
		if isTableNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isTableNotFoundError(err error) bool {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException"
}

func isTableInUseError(err error) bool {
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceInUseException"
}

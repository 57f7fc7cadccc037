package repository

import (
	"awards-backend/dal"
	"awards-backend/infrastructure"
	"awards-backend/models"
	"awards-backend/utils"
	"awards-backend/utils/logger"
	"context"
	"errors"
	"time"
)

// NominationRepository implements NominationRepositoryInterface
type NominationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewNominationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *NominationRepository {
	return &NominationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// CreateNomination assigns an ID and writes the nomination as a single
// conditional put. The nomination's ID and CreatedAt are set in place only
// once the write succeeds.
func (r *NominationRepository) CreateNomination(ctx context.Context, nomination *models.Nomination) (string, error) {
	if nomination == nil {
		return "", errors.New("nomination is required")
	}

	record := *nomination
	record.ID = utils.GenerateUUID()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	err := r.db.PutItemIfNotExists(ctx, r.config.NominationsTable(), "id", &record)
	if err != nil {
		r.logger.Errorf("Failed to create nomination: %v", err)
		return "", classifyError("create nomination", err)
	}

	*nomination = record
	r.logger.Infof("Nomination created successfully: %s", record.ID)
	return record.ID, nil
}

func (r *NominationRepository) GetNomination(ctx context.Context, id string) (*models.Nomination, error) {
	if id == "" {
		return nil, errors.New("nomination ID is required")
	}

	var nomination models.Nomination
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.NominationsTable(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &nomination)
	if err != nil {
		r.logger.Errorf("Failed to get nomination %s: %v", id, err)
		return nil, classifyError("get nomination", err)
	}

	if nomination.ID == "" {
		return nil, ErrNominationNotFound
	}
	return &nomination, nil
}

// ListNominationsByStatus returns nominations with the given status, newest first
func (r *NominationRepository) ListNominationsByStatus(ctx context.Context, status models.NominationStatus, limit int32) ([]*models.Nomination, error) {
	var nominations []*models.Nomination
	err := r.db.QueryByIndex(ctx, models.QueryConfig{
		TableName: r.config.NominationsTable(),
		IndexName: infrastructure.StatusIndex,
		KeyName:   "status",
		KeyValue:  string(status),
		KeyType:   models.StringType,
		Limit:     limit,
		Newest:    true,
	}, &nominations)
	if err != nil {
		r.logger.Errorf("Failed to list %s nominations: %v", status, err)
		return nil, classifyError("list nominations", err)
	}

	r.logger.Debugf("Found %d %s nominations", len(nominations), status)
	return nominations, nil
}

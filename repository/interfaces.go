package repository

import (
	"awards-backend/models"
	"context"
)

// NominationRepositoryInterface defines the contract for nomination storage
type NominationRepositoryInterface interface {
	CreateNomination(ctx context.Context, nomination *models.Nomination) (string, error)
	GetNomination(ctx context.Context, id string) (*models.Nomination, error)
	ListNominationsByStatus(ctx context.Context, status models.NominationStatus, limit int32) ([]*models.Nomination, error)
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetNominationRepository() NominationRepositoryInterface
}

package services

import (
	"awards-backend/models"
	"awards-backend/validation"
	"context"
)

// NominationServiceInterface defines the contract for nomination service
type NominationServiceInterface interface {
	SubmitNomination(ctx context.Context, form *validation.ValidatedNomination) (*models.Nomination, error)
	GetNomination(ctx context.Context, id string) (*models.Nomination, error)
	ListNominations(ctx context.Context, status string, limit int) ([]*models.Nomination, error)
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetNominationService() NominationServiceInterface
}

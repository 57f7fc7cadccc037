package repository

import (
	"awards-backend/dal"
	"awards-backend/models"
	"awards-backend/utils/logger"
)

type Repository struct {
	Nomination *NominationRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Nomination: NewNominationRepository(db, cfg, log),
	}
}

// GetNominationRepository returns the nomination repository
func (r *Repository) GetNominationRepository() NominationRepositoryInterface {
	return r.Nomination
}

package services

import (
	"awards-backend/repository"
	"awards-backend/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	nominationService NominationServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(repoContainer repository.RepositoryContainerInterface, logger logger.Logger) ServiceContainerInterface {
	return &Service{
		nominationService: NewNominationService(repoContainer.GetNominationRepository(), logger),
	}
}

// GetNominationService returns the nomination service interface
func (s *Service) GetNominationService() NominationServiceInterface {
	return s.nominationService
}

package services

import (
	"awards-backend/models"
	"awards-backend/repository"
	"awards-backend/utils/logger"
	"awards-backend/validation"
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ErrInvalidStatus is returned when listing by an unknown review status
var ErrInvalidStatus = errors.New("invalid nomination status")

type NominationService struct {
	nominationRepo repository.NominationRepositoryInterface
	logger         logger.Logger
}

func NewNominationService(nominationRepo repository.NominationRepositoryInterface, logger logger.Logger) *NominationService {
	return &NominationService{
		nominationRepo: nominationRepo,
		logger:         logger,
	}
}

// SubmitNomination normalizes a validated form into a pending nomination
// and stores it. The returned nomination carries the assigned ID.
func (s *NominationService) SubmitNomination(ctx context.Context, form *validation.ValidatedNomination) (*models.Nomination, error) {
	if form == nil {
		return nil, errors.New("nomination form is required")
	}

	nomination := NormalizeNomination(form)
	if _, err := s.nominationRepo.CreateNomination(ctx, nomination); err != nil {
		return nil, err
	}
	return nomination, nil
}

// NormalizeNomination builds the stored record from a validated form
func NormalizeNomination(form *validation.ValidatedNomination) *models.Nomination {
	return &models.Nomination{
		AwardID:        form.AwardID,
		AwardCategory:  form.AwardCategory,
		NomineeInfo:    normalizePerson(form.NomineeInfo),
		NominatorInfo:  normalizePerson(form.NominatorInfo),
		NominationText: validation.SanitizeText(form.NominationText),
		AgreedToTerms:  form.AgreedToTerms,
		Status:         models.NominationStatusPending,
	}
}

func normalizePerson(p validation.PersonInfo) models.PersonInfo {
	return models.PersonInfo{
		Name:         strings.TrimSpace(p.Name),
		Email:        trimmedOrNil(p.Email, strings.ToLower),
		Organization: trimmedOrNil(p.Organization, nil),
		Position:     trimmedOrNil(p.Position, nil),
	}
}

func trimmedOrNil(s *string, transform func(string) string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if transform != nil {
		v = transform(v)
	}
	if v == "" {
		return nil
	}
	return &v
}

func (s *NominationService) GetNomination(ctx context.Context, id string) (*models.Nomination, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("nomination ID is required")
	}
	return s.nominationRepo.GetNomination(ctx, id)
}

// ListNominations lists nominations by review status. An empty status
// means pending; limit is clamped to 1..100 with 50 as default.
func (s *NominationService) ListNominations(ctx context.Context, status string, limit int) ([]*models.Nomination, error) {
	st := models.NominationStatus(strings.ToLower(strings.TrimSpace(status)))
	switch st {
	case "":
		st = models.NominationStatusPending
	case models.NominationStatusPending, models.NominationStatusApproved, models.NominationStatusRejected:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.nominationRepo.ListNominationsByStatus(ctx, st, int32(limit))
}

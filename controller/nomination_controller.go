package controller

import (
	"awards-backend/metrics"
	"awards-backend/models"
	"awards-backend/repository"
	"awards-backend/services"
	"awards-backend/utils/logger"
	"awards-backend/validation"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

const (
	msgSubmitted        = "Nomination submitted successfully! Thank you for celebrating someone who makes a difference."
	msgInvalidBody      = "Invalid request body"
	msgValidationFailed = "Form validation failed"
	msgStorageRetry     = "We could not save your nomination right now. Please try again in a few minutes."
	msgUnexpected       = "An unexpected error occurred while submitting your nomination. Please try again later."
	msgStepValid        = "Step is valid"
	msgStepInvalid      = "Step validation failed"
	msgUnknownStep      = "Unknown form step"
)

type NominationController struct {
	ctx               context.Context
	nominationService services.NominationServiceInterface
	logger            logger.Logger
	metrics           *metrics.Metrics
}

func NewNominationController(ctx context.Context, nominationService services.NominationServiceInterface, logger logger.Logger, m *metrics.Metrics) *NominationController {
	return &NominationController{
		ctx:               ctx,
		nominationService: nominationService,
		logger:            logger,
		metrics:           m,
	}
}

// SubmitNomination handles POST /api/nominations
// @Summary Submit an award nomination
// @Description Validates the nomination form, stores it as pending and returns its ID
// @Tags Nominations
// @Accept json
// @Produce json
// @Param request body validation.NominationForm true "Nomination form"
// @Success 200 {object} models.NominationResponse "Nomination stored"
// @Failure 400 {object} models.NominationResponse "Invalid body or failed validation"
// @Failure 503 {object} models.NominationResponse "Storage unavailable"
// @Failure 500 {object} models.NominationResponse "Unexpected failure"
// @Router /nominations [post]
func (h *NominationController) SubmitNomination(c *gin.Context) {
	start := time.Now()

	body, err := c.GetRawData()
	if err != nil {
		h.observe(metrics.OutcomeInvalid, start)
		c.JSON(http.StatusBadRequest, models.NominationResponse{
			Success: false,
			Message: msgInvalidBody,
			Error:   err.Error(),
		})
		return
	}

	result := validation.ValidateNominationForm(body)
	if result.Malformed {
		h.observe(metrics.OutcomeInvalid, start)
		c.JSON(http.StatusBadRequest, models.NominationResponse{
			Success: false,
			Message: msgInvalidBody,
			Error:   validation.MsgInvalidJSON,
		})
		return
	}
	if !result.IsValid {
		h.observe(metrics.OutcomeInvalid, start)
		c.JSON(http.StatusBadRequest, models.NominationResponse{
			Success: false,
			Message: msgValidationFailed,
			Error:   strings.Join(result.Errors, ", "),
		})
		return
	}

	nomination, err := h.nominationService.SubmitNomination(c.Request.Context(), result.Data)
	if err != nil {
		h.respondSubmitError(c, err, start)
		return
	}

	h.safeLog(func() {
		h.logger.WithFields(logger.Fields{
			"nomination_id":   nomination.ID,
			"nominee_email":   stringValue(nomination.NomineeInfo.Email),
			"nominator_email": stringValue(nomination.NominatorInfo.Email),
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
		}).Info("Nomination submitted")
	})

	h.observe(metrics.OutcomeAccepted, start)
	c.JSON(http.StatusOK, models.NominationResponse{
		Success:      true,
		Message:      msgSubmitted,
		NominationID: nomination.ID,
	})
}

// respondSubmitError maps a failed store write to 503 for classified
// storage errors and 500 for anything else.
func (h *NominationController) respondSubmitError(c *gin.Context, err error, start time.Time) {
	var storageErr *repository.StorageError
	if errors.As(err, &storageErr) {
		resp := models.NominationResponse{Success: false, Message: msgStorageRetry}
		switch storageErr.Kind {
		case repository.KindProviderFailure:
			resp.Error = "DynamoDB error"
			resp.Details = storageErr.Code
		default:
			resp.Error = "Database error"
			resp.Details = storageErr.Err.Error()
		}

		h.logSubmitError(err, storageErr.Code, resp.Details)
		h.observe(metrics.OutcomeStorageFailure, start)
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	stack := fmt.Sprintf("%+v", withStack(err))
	h.logSubmitError(err, "", stack)
	h.observe(metrics.OutcomeError, start)
	c.JSON(http.StatusInternalServerError, models.NominationResponse{
		Success: false,
		Message: msgUnexpected,
		Error:   err.Error(),
		Details: stack,
	})
}

func (h *NominationController) logSubmitError(err error, code, details string) {
	h.safeLog(func() {
		h.logger.WithFields(logger.Fields{
			"name":    fmt.Sprintf("%T", err),
			"message": err.Error(),
			"stack":   fmt.Sprintf("%+v", withStack(err)),
			"code":    code,
			"details": details,
		}).Error("Nomination submission failed")
	})
}

// ValidateStep handles POST /api/nominations/steps/:step
// @Summary Check one step of the nomination form
// @Description Runs only the rules of the given step (1-4) and returns labeled messages
// @Tags Nominations
// @Accept json
// @Produce json
// @Param step path int true "Form step (1-4)"
// @Param request body validation.NominationForm true "Partial nomination form"
// @Success 200 {object} models.NominationResponse "Step is valid"
// @Failure 400 {object} models.NominationResponse "Unknown step or failed validation"
// @Router /nominations/steps/{step} [post]
func (h *NominationController) ValidateStep(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NominationResponse{Success: false, Message: msgUnknownStep, Error: err.Error()})
		return
	}
	step := validation.Step(n)

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NominationResponse{Success: false, Message: msgInvalidBody, Error: err.Error()})
		return
	}

	result, err := validation.ValidateStep(step, body)
	if errors.Is(err, validation.ErrUnknownStep) {
		c.JSON(http.StatusBadRequest, models.NominationResponse{Success: false, Message: msgUnknownStep, Error: err.Error()})
		return
	}
	if result.Malformed {
		c.JSON(http.StatusBadRequest, models.NominationResponse{Success: false, Message: msgInvalidBody, Error: validation.MsgInvalidJSON})
		return
	}

	if h.metrics != nil {
		h.metrics.IncStepCheck(strconv.Itoa(n), result.IsValid)
	}

	if !result.IsValid {
		messages := make([]string, 0, len(result.FieldErrors))
		for _, fe := range result.FieldErrors {
			if fe.Path == "" {
				messages = append(messages, fe.Message)
				continue
			}
			messages = append(messages, validation.FormatErrorMessage(fe.Path, fe.Message))
		}
		c.JSON(http.StatusBadRequest, models.NominationResponse{
			Success: false,
			Message: msgStepInvalid,
			Error:   strings.Join(messages, ", "),
		})
		return
	}

	c.JSON(http.StatusOK, models.NominationResponse{Success: true, Message: msgStepValid})
}

func (h *NominationController) observe(outcome string, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveSubmission(outcome, start)
	}
}

// safeLog runs fn and swallows any panic from the logging backend
func (h *NominationController) safeLog(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func withStack(err error) error {
	var st stackTracer
	if errors.As(err, &st) {
		return err
	}
	return pkgerrors.WithStack(err)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package controller

import (
	"awards-backend/models"
	"awards-backend/utils/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Provisioner is the table provisioning worker as seen by the API
type Provisioner interface {
	LastResult() models.ProvisionResult
	RunNow(ctx context.Context) (models.ProvisionResult, error)
}

type InfrastructureController struct {
	ctx         context.Context
	provisioner Provisioner
	logger      logger.Logger
}

func NewInfrastructureController(ctx context.Context, provisioner Provisioner, logger logger.Logger) *InfrastructureController {
	return &InfrastructureController{
		ctx:         ctx,
		provisioner: provisioner,
		logger:      logger,
	}
}

// GetWorkerStatus handles GET /api/admin/infrastructure/status
// @Summary Get table provisioning status
// @Description Returns the result of the last table provisioning run
// @Tags Infrastructure
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Last run completed or worker idle"
// @Failure 503 {object} models.APIResponse "Last run failed"
// @Router /admin/infrastructure/status [get]
func (h *InfrastructureController) GetWorkerStatus(c *gin.Context) {
	if h.provisioner == nil {
		c.JSON(http.StatusServiceUnavailable, models.APIResponse{
			Status:  "error",
			Code:    http.StatusServiceUnavailable,
			Message: "Provisioning worker is not running",
			Error:   &models.APIError{Type: "WorkerError"},
		})
		return
	}

	result := h.provisioner.LastResult()
	httpStatus, apiStatus := mapProvisionStatus(result.Status)
	c.JSON(httpStatus, models.APIResponse{
		Status:  apiStatus,
		Code:    httpStatus,
		Message: "Provisioning status: " + string(result.Status),
		Data:    result,
	})
}

// RunProvisioning handles POST /api/admin/infrastructure/provision
// @Summary Run table provisioning now
// @Tags Infrastructure
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Provisioning finished"
// @Failure 409 {object} models.APIResponse "Another run holds the lock"
// @Failure 503 {object} models.APIResponse "Provisioning failed"
// @Router /admin/infrastructure/provision [post]
func (h *InfrastructureController) RunProvisioning(c *gin.Context) {
	if h.provisioner == nil {
		h.GetWorkerStatus(c)
		return
	}

	result, err := h.provisioner.RunNow(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Manual provisioning failed: %v", err)
	}

	httpStatus, apiStatus := mapProvisionStatus(result.Status)
	resp := models.APIResponse{
		Status:  apiStatus,
		Code:    httpStatus,
		Message: "Provisioning " + string(result.Status),
		Data:    result,
	}
	if err != nil {
		resp.Error = &models.APIError{Type: "WorkerError", Details: err.Error()}
	}
	c.JSON(httpStatus, resp)
}

func mapProvisionStatus(status models.ProvisionStatus) (int, string) {
	switch status {
	case models.ProvisionStatusFailed:
		return http.StatusServiceUnavailable, "error"
	case models.ProvisionStatusSkipped:
		return http.StatusConflict, "error"
	default:
		return http.StatusOK, "success"
	}
}

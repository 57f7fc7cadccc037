package controller

import (
	"awards-backend/middelware"
	"awards-backend/models"
	"awards-backend/repository"
	"awards-backend/services"
	"awards-backend/utils/logger"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AdminController serves the read-only reviewer console API
type AdminController struct {
	ctx               context.Context
	nominationService services.NominationServiceInterface
	logger            logger.Logger
	jwtManager        *middelware.JWTManager
}

func NewAdminController(ctx context.Context, nominationService services.NominationServiceInterface, logger logger.Logger, jwtManager *middelware.JWTManager) *AdminController {
	return &AdminController{
		ctx:               ctx,
		nominationService: nominationService,
		logger:            logger,
		jwtManager:        jwtManager,
	}
}

// Login handles POST /api/admin/login
// @Summary Reviewer login
// @Description Exchanges reviewer credentials for a bearer token
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Reviewer credentials"
// @Success 200 {object} models.APIResponse "Token issued"
// @Failure 400 {object} models.APIResponse "Bad Request"
// @Failure 401 {object} models.APIResponse "Invalid credentials"
// @Router /admin/login [post]
func (h *AdminController) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	resp, err := h.jwtManager.Authenticate(req.Username, req.Password)
	if err != nil {
		status, errType := http.StatusInternalServerError, "TokenError"
		if errors.Is(err, middelware.ErrInvalidCredentials) {
			status, errType = http.StatusUnauthorized, "AuthenticationError"
		}
		c.JSON(status, models.APIResponse{
			Status:  "error",
			Code:    status,
			Message: "Login failed",
			Error: &models.APIError{
				Type:    errType,
				Details: err.Error(),
			},
		})
		return
	}

	h.logger.Infof("Reviewer %s logged in", req.Username)
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Login successful",
		Data:    resp,
	})
}

// Logout handles POST /api/admin/logout
// @Summary Reviewer logout
// @Description Revokes the bearer token used for this request
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Token revoked"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /admin/logout [post]
func (h *AdminController) Logout(c *gin.Context) {
	value, ok := c.Get(middelware.ClaimsContextKey)
	claims, isClaims := value.(*models.AdminClaims)
	if !ok || !isClaims {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
			Error:   &models.APIError{Type: "AuthenticationError"},
		})
		return
	}

	if claims.ExpiresAt != nil {
		h.jwtManager.RevokeToken(claims.ID, claims.ExpiresAt.Time)
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Logged out",
	})
}

// ListNominations handles GET /api/admin/nominations
// @Summary List nominations
// @Description Lists nominations by review status, newest first
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved or rejected" default(pending)
// @Param limit query int false "Max results (1-100)" default(50)
// @Success 200 {object} models.APIResponse "Nominations"
// @Failure 400 {object} models.APIResponse "Bad Request"
// @Failure 503 {object} models.APIResponse "Storage unavailable"
// @Router /admin/nominations [get]
func (h *AdminController) ListNominations(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "Invalid limit", err)
			return
		}
		limit = n
	}

	nominations, err := h.nominationService.ListNominations(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			h.badRequest(c, "Invalid status", err)
			return
		}
		h.storageError(c, "Failed to list nominations", err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Nominations retrieved",
		Data: gin.H{
			"nominations": nominations,
			"count":       len(nominations),
		},
	})
}

// GetNomination handles GET /api/admin/nominations/:id
// @Summary Get a nomination
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Nomination ID"
// @Success 200 {object} models.APIResponse "Nomination"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Failure 503 {object} models.APIResponse "Storage unavailable"
// @Router /admin/nominations/{id} [get]
func (h *AdminController) GetNomination(c *gin.Context) {
	nomination, err := h.nominationService.GetNomination(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNominationNotFound) {
			c.JSON(http.StatusNotFound, models.APIResponse{
				Status:  "error",
				Code:    http.StatusNotFound,
				Message: "Nomination not found",
				Error:   &models.APIError{Type: "NotFoundError", Details: err.Error()},
			})
			return
		}
		h.storageError(c, "Failed to get nomination", err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Nomination retrieved",
		Data:    nomination,
	})
}

func (h *AdminController) badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: message,
		Error:   &models.APIError{Type: "ValidationError", Details: err.Error()},
	})
}

func (h *AdminController) storageError(c *gin.Context, message string, err error) {
	h.logger.Errorf("%s: %v", message, err)

	status := http.StatusInternalServerError
	var storageErr *repository.StorageError
	if errors.As(err, &storageErr) {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, models.APIResponse{
		Status:  "error",
		Code:    status,
		Message: message,
		Error:   &models.APIError{Type: "DatabaseError", Details: err.Error()},
	})
}

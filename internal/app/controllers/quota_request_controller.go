package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/app/services"
	"github.com/qfddxs/Hospital/internal/middleware"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

// QuotaRequestController handles quota request endpoints
type QuotaRequestController struct {
	quotaService services.QuotaRequestService
}

// NewQuotaRequestController creates a new QuotaRequestController
func NewQuotaRequestController(quotaService services.QuotaRequestService) *QuotaRequestController {
	return &QuotaRequestController{quotaService: quotaService}
}

// ListQuotaRequests lists quota requests
// @Summary List quota requests
// @Description Lists quota requests, newest first
// @Tags quota-requests
// @Produce json
// @Security BearerAuth
// @Param trainingCenterId query int false "Training center ID"
// @Param status query string false "Request status" Enums(pending, approved, rejected)
// @Param specialty query string false "Specialty, case insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.QuotaRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quota-requests [get]
func (c *QuotaRequestController) ListQuotaRequests(ctx *gin.Context) {
	q := newQueryFilters(ctx)
	filter := models.QuotaRequestFilter{
		TrainingCenterID: q.id("trainingCenterId"),
		Specialty:        q.text("specialty"),
	}
	if s := q.choice("status", func(v string) bool { return models.QuotaRequestStatus(v).Valid() }); s != nil {
		status := models.QuotaRequestStatus(*s)
		filter.Status = &status
	}
	if !q.ok() {
		return
	}

	requests, err := c.quotaService.ListQuotaRequests(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests))
}

// GetQuotaRequest retrieves a quota request
// @Summary Get quota request
// @Tags quota-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quota request ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuotaRequestResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Quota request not found"
// @Router /quota-requests/{id} [get]
func (c *QuotaRequestController) GetQuotaRequest(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrQuotaRequestNotFound)
	if !ok {
		return
	}

	request, err := c.quotaService.GetQuotaRequestByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request))
}

// CreateQuotaRequest creates a quota request
// @Summary Create quota request
// @Description The request date is set by the server
// @Tags quota-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuotaRequestRequest true "Quota request"
// @Success 201 {object} dto.APIResponse{data=dto.QuotaRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /quota-requests [post]
func (c *QuotaRequestController) CreateQuotaRequest(ctx *gin.Context) {
	var req dto.CreateQuotaRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	request, err := c.quotaService.CreateQuotaRequest(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request))
}

// ReplaceQuotaRequest fully updates a quota request
// @Summary Replace quota request
// @Description Status changes have no effect on center capacity
// @Tags quota-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quota request ID"
// @Param request body dto.UpdateQuotaRequestRequest true "Quota request"
// @Success 200 {object} dto.APIResponse{data=dto.QuotaRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Quota request not found"
// @Router /quota-requests/{id} [put]
func (c *QuotaRequestController) ReplaceQuotaRequest(ctx *gin.Context) {
	c.update(ctx, true)
}

// UpdateQuotaRequest partially updates a quota request
// @Summary Update quota request
// @Description Status changes have no effect on center capacity
// @Tags quota-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quota request ID"
// @Param request body dto.UpdateQuotaRequestRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.QuotaRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Quota request not found"
// @Router /quota-requests/{id} [patch]
func (c *QuotaRequestController) UpdateQuotaRequest(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *QuotaRequestController) update(ctx *gin.Context, full bool) {
	id, ok := pathID(ctx, apperrors.ErrQuotaRequestNotFound)
	if !ok {
		return
	}

	var req dto.UpdateQuotaRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	var (
		request *dto.QuotaRequestResponse
		err     error
	)
	if full {
		request, err = c.quotaService.ReplaceQuotaRequest(ctx, id, &req)
	} else {
		request, err = c.quotaService.UpdateQuotaRequest(ctx, id, &req)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request))
}

// DeleteQuotaRequest deletes a quota request
// @Summary Delete quota request
// @Tags quota-requests
// @Security BearerAuth
// @Param id path int true "Quota request ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Quota request not found"
// @Router /quota-requests/{id} [delete]
func (c *QuotaRequestController) DeleteQuotaRequest(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrQuotaRequestNotFound)
	if !ok {
		return
	}

	if err := c.quotaService.DeleteQuotaRequest(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

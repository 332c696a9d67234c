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

// ScheduleBlockController handles schedule block endpoints
type ScheduleBlockController struct {
	blockService services.ScheduleBlockService
}

// NewScheduleBlockController creates a new ScheduleBlockController
func NewScheduleBlockController(blockService services.ScheduleBlockService) *ScheduleBlockController {
	return &ScheduleBlockController{blockService: blockService}
}

// ListScheduleBlocks lists schedule blocks
// @Summary List schedule blocks
// @Tags schedule-blocks
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Student ID"
// @Param trainingCenterId query int false "Training center ID"
// @Param weekday query string false "Weekday, case insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleBlockResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedule-blocks [get]
func (c *ScheduleBlockController) ListScheduleBlocks(ctx *gin.Context) {
	q := newQueryFilters(ctx)
	filter := models.ScheduleBlockFilter{
		StudentID:        q.id("studentId"),
		TrainingCenterID: q.id("trainingCenterId"),
		Weekday:          q.text("weekday"),
	}
	if !q.ok() {
		return
	}

	blocks, err := c.blockService.ListScheduleBlocks(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(blocks))
}

// GetScheduleBlock retrieves a schedule block
// @Summary Get schedule block
// @Tags schedule-blocks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule block ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleBlockResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Schedule block not found"
// @Router /schedule-blocks/{id} [get]
func (c *ScheduleBlockController) GetScheduleBlock(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrScheduleBlockNotFound)
	if !ok {
		return
	}

	block, err := c.blockService.GetScheduleBlockByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(block))
}

// CreateScheduleBlock creates a schedule block
// @Summary Create schedule block
// @Description Overlapping blocks are accepted
// @Tags schedule-blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleBlockRequest true "Schedule block"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleBlockResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /schedule-blocks [post]
func (c *ScheduleBlockController) CreateScheduleBlock(ctx *gin.Context) {
	var req dto.CreateScheduleBlockRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	block, err := c.blockService.CreateScheduleBlock(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(block))
}

// ReplaceScheduleBlock fully updates a schedule block
// @Summary Replace schedule block
// @Tags schedule-blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule block ID"
// @Param request body dto.UpdateScheduleBlockRequest true "Schedule block"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleBlockResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Schedule block not found"
// @Router /schedule-blocks/{id} [put]
func (c *ScheduleBlockController) ReplaceScheduleBlock(ctx *gin.Context) {
	c.update(ctx, true)
}

// UpdateScheduleBlock partially updates a schedule block
// @Summary Update schedule block
// @Tags schedule-blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule block ID"
// @Param request body dto.UpdateScheduleBlockRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleBlockResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Schedule block not found"
// @Router /schedule-blocks/{id} [patch]
func (c *ScheduleBlockController) UpdateScheduleBlock(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *ScheduleBlockController) update(ctx *gin.Context, full bool) {
	id, ok := pathID(ctx, apperrors.ErrScheduleBlockNotFound)
	if !ok {
		return
	}

	var req dto.UpdateScheduleBlockRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	var (
		block *dto.ScheduleBlockResponse
		err   error
	)
	if full {
		block, err = c.blockService.ReplaceScheduleBlock(ctx, id, &req)
	} else {
		block, err = c.blockService.UpdateScheduleBlock(ctx, id, &req)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(block))
}

// DeleteScheduleBlock deletes a schedule block
// @Summary Delete schedule block
// @Tags schedule-blocks
// @Security BearerAuth
// @Param id path int true "Schedule block ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Schedule block not found"
// @Router /schedule-blocks/{id} [delete]
func (c *ScheduleBlockController) DeleteScheduleBlock(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrScheduleBlockNotFound)
	if !ok {
		return
	}

	if err := c.blockService.DeleteScheduleBlock(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

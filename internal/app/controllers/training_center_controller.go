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

// TrainingCenterController handles training center endpoints
type TrainingCenterController struct {
	centerService services.TrainingCenterService
}

// NewTrainingCenterController creates a new TrainingCenterController
func NewTrainingCenterController(centerService services.TrainingCenterService) *TrainingCenterController {
	return &TrainingCenterController{centerService: centerService}
}

// ListTrainingCenters lists training centers
// @Summary List training centers
// @Description Lists training centers ordered by name
// @Tags training-centers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in name and location"
// @Param status query string false "Derived status" Enums(active, complete)
// @Success 200 {object} dto.APIResponse{data=[]dto.TrainingCenterResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /training-centers [get]
func (c *TrainingCenterController) ListTrainingCenters(ctx *gin.Context) {
	q := newQueryFilters(ctx)
	filter := models.TrainingCenterFilter{Search: q.text("search")}
	if s := q.choice("status", func(v string) bool { return models.CenterStatus(v).Valid() }); s != nil {
		status := models.CenterStatus(*s)
		filter.Status = &status
	}
	if !q.ok() {
		return
	}

	centers, err := c.centerService.ListTrainingCenters(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(centers))
}

// GetTrainingCenter retrieves a training center
// @Summary Get training center
// @Tags training-centers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training center ID"
// @Success 200 {object} dto.APIResponse{data=dto.TrainingCenterResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Training center not found"
// @Router /training-centers/{id} [get]
func (c *TrainingCenterController) GetTrainingCenter(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrTrainingCenterNotFound)
	if !ok {
		return
	}

	center, err := c.centerService.GetTrainingCenterByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(center))
}

// CreateTrainingCenter creates a training center
// @Summary Create training center
// @Description Available capacity starts equal to total capacity
// @Tags training-centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTrainingCenterRequest true "Training center"
// @Success 201 {object} dto.APIResponse{data=dto.TrainingCenterResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /training-centers [post]
func (c *TrainingCenterController) CreateTrainingCenter(ctx *gin.Context) {
	var req dto.CreateTrainingCenterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	center, err := c.centerService.CreateTrainingCenter(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(center))
}

// ReplaceTrainingCenter fully updates a training center
// @Summary Replace training center
// @Description Changing total capacity keeps the number of occupied slots
// @Tags training-centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training center ID"
// @Param request body dto.UpdateTrainingCenterRequest true "Training center"
// @Success 200 {object} dto.APIResponse{data=dto.TrainingCenterResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Training center not found"
// @Router /training-centers/{id} [put]
func (c *TrainingCenterController) ReplaceTrainingCenter(ctx *gin.Context) {
	c.update(ctx, true)
}

// UpdateTrainingCenter partially updates a training center
// @Summary Update training center
// @Description Changing total capacity keeps the number of occupied slots
// @Tags training-centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training center ID"
// @Param request body dto.UpdateTrainingCenterRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.TrainingCenterResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Training center not found"
// @Router /training-centers/{id} [patch]
func (c *TrainingCenterController) UpdateTrainingCenter(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *TrainingCenterController) update(ctx *gin.Context, full bool) {
	id, ok := pathID(ctx, apperrors.ErrTrainingCenterNotFound)
	if !ok {
		return
	}

	var req dto.UpdateTrainingCenterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	var (
		center *dto.TrainingCenterResponse
		err    error
	)
	if full {
		center, err = c.centerService.ReplaceTrainingCenter(ctx, id, &req)
	} else {
		center, err = c.centerService.UpdateTrainingCenter(ctx, id, &req)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(center))
}

// DeleteTrainingCenter deletes a training center
// @Summary Delete training center
// @Description Students lose their center; quota requests and schedule blocks are removed
// @Tags training-centers
// @Security BearerAuth
// @Param id path int true "Training center ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Training center not found"
// @Router /training-centers/{id} [delete]
func (c *TrainingCenterController) DeleteTrainingCenter(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrTrainingCenterNotFound)
	if !ok {
		return
	}

	if err := c.centerService.DeleteTrainingCenter(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

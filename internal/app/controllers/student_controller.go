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

// StudentController handles student endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// ListStudents lists students
// @Summary List students
// @Description Lists students ordered by name, each with the name of its training center
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param trainingCenterId query int false "Training center ID"
// @Param status query string false "Student status" Enums(active, alert, inactive)
// @Param search query string false "Search in name, email and national id"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	q := newQueryFilters(ctx)
	filter := models.StudentFilter{
		TrainingCenterID: q.id("trainingCenterId"),
		Search:           q.text("search"),
	}
	if s := q.choice("status", func(v string) bool { return models.StudentStatus(v).Valid() }); s != nil {
		status := models.StudentStatus(*s)
		filter.Status = &status
	}
	if !q.ok() {
		return
	}

	students, err := c.studentService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// GetStudent retrieves a student
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrStudentNotFound)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// CreateStudent creates a student
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// ReplaceStudent fully updates a student
// @Summary Replace student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) ReplaceStudent(ctx *gin.Context) {
	c.update(ctx, true)
}

// UpdateStudent partially updates a student
// @Summary Update student
// @Description Nullable fields accept null to clear them
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [patch]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	c.update(ctx, false)
}

func (c *StudentController) update(ctx *gin.Context, full bool) {
	id, ok := pathID(ctx, apperrors.ErrStudentNotFound)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	var (
		student *dto.StudentResponse
		err     error
	)
	if full {
		student, err = c.studentService.ReplaceStudent(ctx, id, &req)
	} else {
		student, err = c.studentService.UpdateStudent(ctx, id, &req)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// DeleteStudent deletes a student
// @Summary Delete student
// @Description The student's schedule blocks are removed with it
// @Tags students
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, apperrors.ErrStudentNotFound)
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

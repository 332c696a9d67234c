// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/middleware"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/validation"
)

// pathID parses the :id path parameter. Ids that cannot name a row get the
// same 404 as a missing row.
func pathID(ctx *gin.Context, notFound error) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, notFound)
		return 0, false
	}
	return id, true
}

// queryFilters collects query string filters and their validation problems
type queryFilters struct {
	ctx  *gin.Context
	verr *apperrors.ValidationError
}

func newQueryFilters(ctx *gin.Context) *queryFilters {
	return &queryFilters{ctx: ctx, verr: &apperrors.ValidationError{}}
}

// id parses an optional positive integer filter
func (q *queryFilters) id(name string) *int64 {
	raw := strings.TrimSpace(q.ctx.Query(name))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		q.verr.Add(name, "Select a valid choice. That choice is not one of the available choices.")
		return nil
	}
	return &id
}

// text returns an optional trimmed text filter
func (q *queryFilters) text(name string) string {
	return strings.TrimSpace(q.ctx.Query(name))
}

// choice returns an optional filter restricted by valid
func (q *queryFilters) choice(name string, valid func(string) bool) *string {
	raw := strings.TrimSpace(q.ctx.Query(name))
	if raw == "" {
		return nil
	}
	if !valid(raw) {
		q.verr.Add(name, validation.ChoiceMessage(raw))
		return nil
	}
	return &raw
}

// ok writes the 400 response when any filter was invalid
func (q *queryFilters) ok() bool {
	if !q.verr.HasErrors() {
		return true
	}
	q.ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewValidationErrorDetail(q.verr)))
	return false
}

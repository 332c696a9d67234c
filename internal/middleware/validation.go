package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
)

// BindJSON decodes and validates the JSON body into obj. On failure it writes
// the 400 response and returns false. An empty body decodes as an empty
// object, so required fields are still reported by name.
func BindJSON(c *gin.Context, obj any) bool {
	var err error
	if c.Request.Body == nil {
		err = io.EOF
	} else {
		err = c.ShouldBindJSON(obj)
	}
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}

	verr := dto.HandleValidationError(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewValidationErrorDetail(verr)))
	return false
}

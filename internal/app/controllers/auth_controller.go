package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/middleware"
)

// TokenService issues and rotates token pairs
type TokenService interface {
	Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

// AuthController handles token endpoints
type AuthController struct {
	authService TokenService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService TokenService) *AuthController {
	return &AuthController{authService: authService}
}

// ObtainToken exchanges credentials for a token pair
// @Summary Obtain token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/token [post]
func (c *AuthController) ObtainToken(ctx *gin.Context) {
	var req dto.TokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// RefreshToken rotates a refresh token
// @Summary Refresh token pair
// @Description The presented refresh token is revoked
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unknown, revoked or expired refresh token"
// @Router /auth/token/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

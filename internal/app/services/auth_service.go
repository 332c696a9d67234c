package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/auth"
	"github.com/qfddxs/Hospital/internal/pkg/logger"
)

// UserRepository is the user storage used by AuthService
type UserRepository interface {
	UpsertUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenRepository is the refresh token storage used by AuthService
type TokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// TokenIssuer issues signed access tokens
type TokenIssuer interface {
	GenerateTokenPair(user *models.User) (*auth.TokenPair, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   UserRepository
	tokenRepo  TokenRepository
	jwtService TokenIssuer
	tx         db.Transactor
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserRepository, tokenRepo TokenRepository, jwtService TokenIssuer, tx db.Transactor) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		tx:         tx,
	}
}

// Login exchanges username and password for a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if req == nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn().Str("username", user.Username).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.generateTokenResponse(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and
// a new pair is issued in the same transaction.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	var resp *dto.TokenResponse
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		stored, err := s.tokenRepo.GetToken(ctx, refreshToken)
		if err != nil {
			return err
		}

		user, err := s.userRepo.GetUserByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return apperrors.ErrTokenInvalid
			}
			return err
		}
		if !user.IsActive {
			return apperrors.ErrAccountDisabled
		}

		// A concurrent refresh that already revoked the token loses here.
		if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
			return err
		}

		resp, err = s.generateTokenResponse(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// EnsureUser creates the account or resets its password, and revokes the
// sessions it had.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, fmt.Errorf("%w: username and password are required", apperrors.ErrValidationFailed)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	var id int64
	err = inTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		if id, err = s.userRepo.UpsertUser(ctx, username, hash); err != nil {
			return err
		}
		return s.tokenRepo.RevokeAllUserTokens(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CleanupTokens removes expired and long revoked refresh tokens
func (s *AuthService) CleanupTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.CleanupExpiredTokens(ctx)
}

func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             pair.ExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshExpiresIn,
	}, nil
}

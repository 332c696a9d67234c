package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := NewAuthService(users, tokens, newTestJWTService(), &fakeTx{})
	if _, err := svc.EnsureUser(context.Background(), "admin", "s3cret-pass"); err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	return svc, users, tokens
}

func TestLogin(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.TokenRequest{Username: "admin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.TokenType != "Bearer" {
		t.Errorf("got %+v", resp)
	}
	if _, ok := tokens.tokens[resp.RefreshToken]; !ok {
		t.Error("refresh token not stored")
	}
	if users.logins != 1 {
		t.Errorf("last login updates = %d", users.logins)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	for _, req := range []*dto.TokenRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "nobody", Password: "s3cret-pass"},
		{Username: "", Password: ""},
	} {
		if _, err := svc.Login(ctx, req); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Login(%q) error = %v, want invalid credentials", req.Username, err)
		}
	}

	users.users[1].IsActive = false
	if _, err := svc.Login(ctx, &dto.TokenRequest{Username: "admin", Password: "s3cret-pass"}); !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Errorf("disabled login error = %v", err)
	}
}

func TestRefreshToken_Rotates(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, &dto.TokenRequest{Username: "admin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	second, err := svc.RefreshToken(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh token was not rotated")
	}
	if !tokens.tokens[first.RefreshToken].IsRevoked {
		t.Error("old refresh token not revoked")
	}

	if _, err := svc.RefreshToken(ctx, first.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("reuse error = %v, want revoked", err)
	}
	if _, err := svc.RefreshToken(ctx, "unknown"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Errorf("unknown error = %v, want not found", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.TokenRequest{Username: "admin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	tokens.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	if _, err := svc.RefreshToken(ctx, resp.RefreshToken); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("error = %v, want expired", err)
	}
	if n, _ := svc.CleanupTokens(ctx); n != 1 {
		t.Errorf("cleaned %d tokens, want 1", n)
	}
}

func TestEnsureUser_ResetsSessions(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.TokenRequest{Username: "admin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	id, err := svc.EnsureUser(ctx, "admin", "new-pass-123")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if id != 1 || len(users.users) != 1 {
		t.Errorf("EnsureUser created a duplicate: id=%d users=%d", id, len(users.users))
	}
	if !tokens.tokens[resp.RefreshToken].IsRevoked {
		t.Error("existing sessions must be revoked")
	}
	if _, err := svc.Login(ctx, &dto.TokenRequest{Username: "admin", Password: "new-pass-123"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

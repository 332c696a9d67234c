package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qfddxs/Hospital/internal/app/models"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  5 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hospital.test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GenerateTokenPair(&models.User{ID: 7, Username: "coordinator"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair.ExpiresIn != 300 || pair.RefreshExpiresIn != 86400 {
		t.Errorf("unexpected lifetimes %d/%d", pair.ExpiresIn, pair.RefreshExpiresIn)
	}
	if pair.RefreshToken == "" || pair.RefreshToken == pair.AccessToken {
		t.Error("refresh token must be a distinct opaque value")
	}

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "coordinator" || claims.Subject != "7" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := newTestService()
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	pair, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "a"})
	if err != nil {
		t.Fatal(err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "a"})
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Minute, TokenIssuer: "hospital.test"})
	if _, err := other.ValidateToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: got %v", err)
	}

	wrongIssuer := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute, TokenIssuer: "elsewhere"})
	if _, err := wrongIssuer.ValidateToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong issuer: got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Username: "a"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateToken(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("alg none: got %v", err)
	}

	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty: got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def", "abc.def", false},
		{"bearer abc", "abc", false},
		{"  Bearer   abc  ", "abc", false},
		{"", "", true},
		{"abc.def", "", true},
		{"Basic dXNlcg==", "", true},
		{"Bearer ", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, %v", tt.header, got, err)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

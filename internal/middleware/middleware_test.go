package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/auth"
	"github.com/qfddxs/Hospital/internal/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinValidators(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

type stubValidator struct {
	claims *auth.Claims
	err    error
	seen   string
}

func (s *stubValidator) ValidateAndExtractClaims(token string) (*auth.Claims, error) {
	s.seen = token
	return s.claims, s.err
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code     string `json:"code"`
		Message  string `json:"message"`
		Field    string `json:"field"`
		Severity string `json:"severity"`
		Details  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestJWTAuth(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		err      error
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{"missing header", "", nil, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"invalid token", "Bearer nope", auth.ErrInvalidToken, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"expired token", "Bearer old", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"valid token", "Bearer good", nil, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &stubValidator{err: tt.err}
			if tt.err == nil {
				validator.claims = &auth.Claims{UserID: 7, Username: "admin"}
			}

			called := false
			router := gin.New()
			router.GET("/private", NewAuthMiddleware(validator).JWTAuth(), func(c *gin.Context) {
				called = true
				id, ok := GetUserID(c)
				if !ok || id != 7 {
					t.Errorf("GetUserID = %d, %v", id, ok)
				}
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantErr == "" {
				if !called {
					t.Error("handler not called")
				}
				return
			}
			if called {
				t.Error("handler must not run for rejected requests")
			}
			if body := decodeError(t, w); body.Error.Code != string(tt.wantErr) {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantErr)
			}
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  dto.ErrorCode
	}{
		{"not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", apperrors.ErrTrainingCenterNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"validation sentinel", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"disabled", apperrors.ErrAccountDisabled, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"token not found", apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			body := decodeError(t, w)
			if body.Success || body.Error.Code != string(tt.wantErr) {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestHandleAPIError_ValidationFields(t *testing.T) {
	verr := apperrors.NewValidationError("totalCapacity", "Ensure this value is greater than or equal to 0.")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)
	HandleAPIError(c, fmt.Errorf("create: %w", verr))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Error.Field != "totalCapacity" || len(body.Error.Details) != 1 {
		t.Errorf("body = %+v", body.Error)
	}
}

type bindTarget struct {
	Name     string `json:"name" binding:"required,max=5"`
	Capacity *int   `json:"totalCapacity" binding:"omitempty,min=0"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantFields []string
	}{
		{"valid", `{"name":"ok","totalCapacity":3}`, true, nil},
		{"empty body", ``, false, []string{"name"}},
		{"empty object", `{}`, false, []string{"name"}},
		{"rule violations", `{"name":"too long","totalCapacity":-1}`, false, []string{"name", "totalCapacity"}},
		{"wrong type", `{"name":"ok","totalCapacity":"x"}`, false, []string{"totalCapacity"}},
		{"malformed", `{"name":`, false, []string{dto.NonFieldErrors}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var target bindTarget
			if ok := BindJSON(c, &target); ok != tt.wantOK {
				t.Fatalf("BindJSON = %v, want %v (%s)", ok, tt.wantOK, w.Body.String())
			}
			if tt.wantOK {
				return
			}

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			got := map[string]bool{}
			for _, d := range decodeError(t, w).Error.Details {
				got[d.Field] = true
			}
			for _, f := range tt.wantFields {
				if !got[f] {
					t.Errorf("missing field %q in %s", f, w.Body.String())
				}
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("caller id not kept: header %q body %q", got, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	router.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("oversized id should be replaced, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeError(t, w); body.Error.Code != string(dto.ErrorCodeInternalServer) {
		t.Errorf("code = %s", body.Error.Code)
	}
}

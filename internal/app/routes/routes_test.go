package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qfddxs/Hospital/internal/app/controllers"
	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/app/services"
	"github.com/qfddxs/Hospital/internal/middleware"
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

// centerService records calls and serves a single center with id 1
type centerService struct {
	calls   []string
	filter  models.TrainingCenterFilter
	lastErr error
}

func (s *centerService) record(name string) { s.calls = append(s.calls, name) }

func (s *centerService) ListTrainingCenters(_ context.Context, filter models.TrainingCenterFilter) ([]dto.TrainingCenterResponse, error) {
	s.record("list")
	s.filter = filter
	return []dto.TrainingCenterResponse{{ID: 1, Name: "Hospital Regional", Specialties: []string{}, Status: models.CenterStatusComplete}}, nil
}

func (s *centerService) GetTrainingCenterByID(_ context.Context, id int64) (*dto.TrainingCenterResponse, error) {
	s.record("get")
	if id != 1 {
		return nil, apperrors.ErrTrainingCenterNotFound
	}
	return &dto.TrainingCenterResponse{ID: 1, Name: "Hospital Regional", Specialties: []string{}}, nil
}

func (s *centerService) CreateTrainingCenter(_ context.Context, req *dto.CreateTrainingCenterRequest) (*dto.TrainingCenterResponse, error) {
	s.record("create")
	total := 0
	if req.TotalCapacity != nil {
		total = *req.TotalCapacity
	}
	return &dto.TrainingCenterResponse{
		ID: 2, Name: req.Name, Specialties: []string{},
		TotalCapacity: total, AvailableCapacity: total,
		Status: models.CapacityStatus(total, total),
	}, nil
}

func (s *centerService) ReplaceTrainingCenter(_ context.Context, id int64, _ *dto.UpdateTrainingCenterRequest) (*dto.TrainingCenterResponse, error) {
	s.record("replace")
	if s.lastErr != nil {
		return nil, s.lastErr
	}
	return &dto.TrainingCenterResponse{ID: id}, nil
}

func (s *centerService) UpdateTrainingCenter(_ context.Context, id int64, _ *dto.UpdateTrainingCenterRequest) (*dto.TrainingCenterResponse, error) {
	s.record("update")
	return &dto.TrainingCenterResponse{ID: id}, nil
}

func (s *centerService) DeleteTrainingCenter(_ context.Context, id int64) error {
	s.record("delete")
	if id != 1 {
		return apperrors.ErrTrainingCenterNotFound
	}
	return nil
}

// Unused services panic if a route reaches them
type studentService struct{ services.StudentService }
type quotaService struct{ services.QuotaRequestService }
type blockService struct{ services.ScheduleBlockService }

type tokenService struct{}

func (tokenService) Login(_ context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if req.Password != "secret" {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &dto.TokenResponse{AccessToken: "a", TokenType: "Bearer", RefreshToken: "r"}, nil
}

func (tokenService) RefreshToken(_ context.Context, token string) (*dto.TokenResponse, error) {
	return nil, apperrors.ErrTokenRevoked
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type testServer struct {
	router  *gin.Engine
	centers *centerService
	token   string
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  5 * time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "hospital-test",
	})
	pair, err := jwtService.GenerateTokenPair(&models.User{ID: 1, Username: "admin", IsActive: true})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	centers := &centerService{}
	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:           controllers.NewAuthController(tokenService{}),
		Health:         controllers.NewHealthController(pinger{err: pingErr}),
		TrainingCenter: controllers.NewTrainingCenterController(centers),
		Student:        controllers.NewStudentController(studentService{}),
		QuotaRequest:   controllers.NewQuotaRequestController(quotaService{}),
		ScheduleBlock:  controllers.NewScheduleBlockController(blockService{}),
	}, middleware.NewAuthMiddleware(jwtService))

	return &testServer{router: router, centers: centers, token: pair.AccessToken}
}

func (s *testServer) do(method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Error == nil {
		t.Fatalf("not an error response: %s", w.Body.String())
	}
	return string(body.Error.Code)
}

func TestResourceRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{
		"/api/v1/training-centers",
		"/api/v1/students",
		"/api/v1/quota-requests",
		"/api/v1/schedule-blocks",
	} {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			w := s.do(method, path, `{}`, false)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("%s %s = %d, want 401", method, path, w.Code)
			}
		}
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			w := s.do(method, path+"/1", `{}`, false)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("%s %s/1 = %d, want 401", method, path, w.Code)
			}
		}
	}

	if len(s.centers.calls) != 0 {
		t.Errorf("service reached without a token: %v", s.centers.calls)
	}
}

func TestTrainingCenterRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/v1/training-centers?status=complete&search=%20regional%20", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d: %s", w.Code, w.Body.String())
	}
	if s.centers.filter.Status == nil || *s.centers.filter.Status != models.CenterStatusComplete || s.centers.filter.Search != "regional" {
		t.Errorf("filter = %+v", s.centers.filter)
	}

	w = s.do(http.MethodPost, "/api/v1/training-centers", `{"name":"Hospital Base","totalCapacity":5}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data dto.TrainingCenterResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Data.AvailableCapacity != 5 || created.Data.Status != models.CenterStatusActive {
		t.Errorf("created = %+v", created.Data)
	}

	if w = s.do(http.MethodGet, "/api/v1/training-centers/1", "", true); w.Code != http.StatusOK {
		t.Errorf("get = %d", w.Code)
	}
	if w = s.do(http.MethodPatch, "/api/v1/training-centers/1", `{"totalCapacity":8}`, true); w.Code != http.StatusOK {
		t.Errorf("patch = %d", w.Code)
	}
	if w = s.do(http.MethodDelete, "/api/v1/training-centers/1", "", true); w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("delete = %d %q", w.Code, w.Body.String())
	}
}

func TestTrainingCenterRoutes_NotFound(t *testing.T) {
	s := newTestServer(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/training-centers/99"},
		{http.MethodDelete, "/api/v1/training-centers/99"},
		{http.MethodGet, "/api/v1/training-centers/abc"},
		{http.MethodGet, "/api/v1/training-centers/0"},
		{http.MethodPatch, "/api/v1/training-centers/-3"},
	} {
		w := s.do(tc.method, tc.path, `{"name":"x"}`, true)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s = %d, want 404", tc.method, tc.path, w.Code)
			continue
		}
		if code := errorCode(t, w); code != string(dto.ErrorCodeResourceNotFound) {
			t.Errorf("%s %s code = %s", tc.method, tc.path, code)
		}
	}

	for _, call := range s.centers.calls {
		if call == "update" {
			t.Error("unparseable ids must not reach the service")
		}
	}
}

func TestTrainingCenterRoutes_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/v1/training-centers", "", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty body = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"field":"name"`) {
		t.Errorf("name not reported: %s", w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/v1/training-centers", `{"name":"A","totalCapacity":-1}`, true)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "totalCapacity") {
		t.Errorf("negative capacity = %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/v1/training-centers?status=full", "", true)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"field":"status"`) {
		t.Errorf("bad status filter = %d %s", w.Code, w.Body.String())
	}

	s.centers.lastErr = apperrors.NewValidationError("name", "This field is required.")
	w = s.do(http.MethodPut, "/api/v1/training-centers/1", `{}`, true)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"field":"name"`) {
		t.Errorf("replace = %d %s", w.Code, w.Body.String())
	}

	for _, call := range s.centers.calls {
		if call == "create" || call == "list" {
			t.Errorf("invalid input reached the service: %v", s.centers.calls)
		}
	}
}

func TestStudentRoutes_FilterValidation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/v1/students?trainingCenterId=abc&status=gone", "", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"field":"trainingCenterId"`) || !strings.Contains(body, `"field":"status"`) {
		t.Errorf("both filters should be reported: %s", body)
	}
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/v1/auth/token", `{"username":"admin","password":"secret"}`, false)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"tokenType":"Bearer"`) {
		t.Errorf("token = %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/v1/auth/token", `{"username":"admin","password":"wrong"}`, false)
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != string(dto.ErrorCodeInvalidCredentials) {
		t.Errorf("bad password = %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/v1/auth/token", `{"username":"admin"}`, false)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"field":"password"`) {
		t.Errorf("missing password = %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/v1/auth/token/refresh", `{"refreshToken":"used"}`, false)
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != string(dto.ErrorCodeInvalidToken) {
		t.Errorf("refresh = %d %s", w.Code, w.Body.String())
	}
}

func TestHealthRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	if w := s.do(http.MethodGet, "/ping", "", false); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Errorf("ping = %d %s", w.Code, w.Body.String())
	}
	if w := s.do(http.MethodGet, "/api/v1/health", "", false); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"database":"up"`) {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}

	down := newTestServer(t, errors.New("connection refused"))
	if w := down.do(http.MethodGet, "/api/v1/health", "", false); w.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded health = %d", w.Code)
	}
}

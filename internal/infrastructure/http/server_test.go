package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/celebigilfatih/omt/internal/adapter/repository"
	"github.com/celebigilfatih/omt/internal/config"
	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/infrastructure/metrics"
	"github.com/celebigilfatih/omt/internal/infrastructure/storage"
	"github.com/celebigilfatih/omt/internal/middleware/auth"
	"github.com/celebigilfatih/omt/internal/testutil"
	"github.com/celebigilfatih/omt/internal/usecase"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	db := testutil.NewDB(t, clock)
	log := zap.NewNop()

	cfg := &config.Config{
		Server: config.ServerConfig{HTTP: config.HTTPConfig{BodyLimit: "6M"}},
		Auth: config.AuthConfig{
			LoginRateLimit: config.RateLimitConfig{Rate: 100, Burst: 100, Expires: time.Minute},
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	deps := usecase.Deps{
		Repos:  repository.NewRepositories(db, log),
		Clock:  clock,
		Logger: log,
	}
	tokens := auth.NewTokenIssuer("test-secret", "omt", time.Hour, clock)
	store := storage.NewLocalStore(t.TempDir(), "/uploads", log)

	services := Services{
		Applications: usecase.NewApplicationService(deps),
		Teams:        usecase.NewTeamService(deps, 10, 100),
		Payments:     usecase.NewPaymentService(deps),
		Admins: usecase.NewAdminService(deps, tokens, usecase.LegacyCredential{
			Enabled:    true,
			Identifier: "admin",
			Password:   "admin123",
		}, bcrypt.MinCost),
		Settings: usecase.NewSettingsService(deps),
		Uploads:  usecase.NewUploadService(deps, store, 5*1024*1024),
		Health:   usecase.NewHealthService(deps, store, "test"),
	}

	server := NewServer(cfg, log, services, tokens, metrics.NewRegistry(), &StaticDir{Prefix: "/uploads", Root: store.Dir()})
	return &testServer{t: t, handler: server.Handler()}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login() {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/admin/login", map[string]string{"identifier": "admin", "password": "admin123"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var result usecase.LoginResult
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(s.t, result.Success)
	require.NotEmpty(s.t, result.Token)
	s.token = result.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_ApprovalAndReversalScenario(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/applications", map[string]interface{}{
		"teamName":           "X",
		"coachName":          "Y",
		"phoneNumber":        "0500",
		"stage":              "STAGE_1",
		"ageGroups":          []string{"Y2012"},
		"ageGroupTeamCounts": map[string]int{"Y2012": 2},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	application := decode[entity.TeamApplication](t, rec)
	assert.Equal(t, entity.ApplicationStatusPending, application.Status)
	assert.False(t, application.CreatedAt.IsZero())

	rec = s.do(http.MethodPatch, "/applications/"+application.ID, map[string]string{"action": "approve"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.login()

	rec = s.do(http.MethodPatch, "/applications/"+application.ID, map[string]string{"action": "approve"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, entity.ApplicationStatusApproved, decode[entity.TeamApplication](t, rec).Status)
	teamID := rec.Header().Get("X-Team-Id")
	require.NotEmpty(t, teamID)

	rec = s.do(http.MethodGet, "/teams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	teams := decode[entity.PaginatedTeams](t, rec)
	require.Len(t, teams.Data, 1)
	assert.Equal(t, entity.AgeGroupCounts{"Y2012": 2}, teams.Data[0].AgeGroupTeamCounts)
	assert.Equal(t, int64(1), teams.Pagination.Total)

	rec = s.do(http.MethodDelete, "/teams/"+teamID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	deleted := decode[map[string]interface{}](t, rec)
	assert.Equal(t, true, deleted["reverted"])
	assert.Equal(t, application.ID, deleted["applicationId"])

	rec = s.do(http.MethodGet, "/applications/"+application.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.ApplicationStatusPending, decode[entity.TeamApplication](t, rec).Status)
}

func TestServer_PaymentSummaryScenario(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.do(http.MethodPost, "/applications", map[string]interface{}{
		"teamName":    "Kartal SK",
		"coachName":   "Ali Veli",
		"phoneNumber": "0532",
		"stage":       "FINAL",
		"ageGroups":   []string{"Y2015"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	application := decode[entity.TeamApplication](t, rec)

	rec = s.do(http.MethodPatch, "/applications/"+application.ID, map[string]string{"action": "approve"})
	require.Equal(t, http.StatusOK, rec.Code)
	teamID := rec.Header().Get("X-Team-Id")

	for i := 0; i < 2; i++ {
		rec = s.do(http.MethodPost, "/payments", map[string]interface{}{
			"teamId":        teamID,
			"paymentMethod": "CASH",
			"amount":        150.50,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/payments/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[entity.PaymentSummary](t, rec)
	require.Len(t, summary.Teams, 1)
	assert.Equal(t, "301.00", summary.Teams[0].TotalAmount.StringFixed(2))
	assert.Equal(t, 2, summary.Teams[0].PaymentCount)
	assert.Equal(t, []entity.PaymentMethod{entity.PaymentMethodCash}, summary.Teams[0].Methods)

	rec = s.do(http.MethodDelete, "/teams/"+teamID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.ErrFailedPrecondition, decode[apperrors.Response](t, rec).Code)
}

func TestServer_ErrorResponses(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/applications", map[string]interface{}{"stage": "STAGE_9"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[apperrors.Response](t, rec)
	assert.Equal(t, apperrors.ErrInvalidArgument, body.Code)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.Subset(t, fields, []string{"teamName", "coachName", "phoneNumber", "stage", "ageGroups"})

	rec = s.do(http.MethodGet, "/applications", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_AUTH_HEADER", decode[apperrors.Response](t, rec).Code)

	rec = s.do(http.MethodPost, "/admin/login", map[string]string{"identifier": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.ErrUnauthenticated, decode[apperrors.Response](t, rec).Code)

	s.login()

	rec = s.do(http.MethodPatch, "/applications/missing", map[string]string{"action": "approve"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/applications/missing", map[string]string{"action": "archive"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.ErrInvalidAction, decode[apperrors.Response](t, rec).Code)

	rec = s.do(http.MethodGet, "/teams?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/teams?page=922337203685477582&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[entity.PaginatedTeams](t, rec)
	assert.Empty(t, page.Data)
}

func TestServer_AdminUsers(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.do(http.MethodPost, "/admin/users", map[string]string{
		"email": "Ops@Example.com", "name": "Ops", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[entity.Admin](t, rec)
	assert.Equal(t, "ops@example.com", created.Email)
	assert.NotContains(t, rec.Body.String(), "secret1")

	rec = s.do(http.MethodPatch, "/admin/users/"+created.ID, map[string]string{"action": "change_password", "password": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/admin/login", map[string]string{"identifier": "ops@example.com", "password": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPatch, "/admin/users/"+created.ID, map[string]string{"name": "Operations"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Operations", decode[entity.Admin](t, rec).Name)

	rec = s.do(http.MethodPatch, "/admin/users/"+created.ID, map[string]string{"action": "promote"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/admin/users/"+created.ID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "last admin cannot be deleted")

	rec = s.do(http.MethodGet, "/admin/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decode[entity.Principal](t, rec).ID)
}

func TestServer_UploadAndHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[usecase.HealthReport](t, rec)
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "connected", report.Database)
	assert.Equal(t, "accessible", report.Uploads)

	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	rec = s.upload("logo.gif", gif)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[usecase.UploadResult](t, rec)
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.gif$`, result.URL)

	req := httptest.NewRequest(http.MethodGet, result.URL, nil)
	served := httptest.NewRecorder()
	s.handler.ServeHTTP(served, req)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, gif, served.Body.Bytes())

	rec = s.upload("notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func (s *testServer) upload(filename string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("logo", filename)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/auth"
	"github.com/shenikar/municipal_incidents/internal/config"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/shenikar/municipal_incidents/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	incidents *mocks.MockIncidentService
	directory *mocks.MockDirectoryService
	router    *gin.Engine
	actor     *models.Actor
	auth      map[string]string
}

// newTestEnv создает роутер с мокированными сервисами и настоящим токеном пользователя
func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	env := &testEnv{
		incidents: mocks.NewMockIncidentService(ctrl),
		directory: mocks.NewMockDirectoryService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{EvidenceMaxBytes: 1024}
	tokens := auth.NewTokenService("test-secret", "test-issuer", time.Hour)

	profileID := uuid.New()
	env.actor = &models.Actor{
		UserID:    uuid.New(),
		Username:  "pperez",
		FullName:  "Pedro Pérez",
		Email:     "pperez@municipalidad.local",
		Groups:    []string{"Territorial"},
		ProfileID: &profileID,
	}
	token, err := tokens.Issue(env.actor.UserID)
	require.NoError(t, err)
	env.auth = map[string]string{"Authorization": "Bearer " + token}
	env.directory.EXPECT().LoadActor(gomock.Any(), env.actor.UserID).Return(env.actor, nil).AnyTimes()

	handler := NewHandler(env.incidents, env.directory, tokens, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	api := env.router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return env
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHealthCheck_Public(t *testing.T) {
	env := newTestEnv(t)

	w := makeRequest(env.router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAuth_Rejections(t *testing.T) {
	env := newTestEnv(t)
	otherIssuer := auth.NewTokenService("test-secret", "someone-else", time.Hour)
	foreign, err := otherIssuer.Issue(env.actor.UserID)
	require.NoError(t, err)

	unknownUser := uuid.New()
	tokens := auth.NewTokenService("test-secret", "test-issuer", time.Hour)
	unknownToken, err := tokens.Issue(unknownUser)
	require.NoError(t, err)
	env.directory.EXPECT().LoadActor(gomock.Any(), unknownUser).Return(nil, apperrors.ErrActorNotFound)

	env.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	tests := []struct {
		name    string
		headers map[string]string
		message string
	}{
		{"missing header", map[string]string{}, "authorization token required"},
		{"not a bearer", map[string]string{"Authorization": "Basic abc"}, "authorization token required"},
		{"wrong issuer", map[string]string{"Authorization": "Bearer " + foreign}, "invalid token"},
		{"garbage", map[string]string{"Authorization": "Bearer not-a-jwt"}, "invalid token"},
		{"unknown user", map[string]string{"Authorization": "Bearer " + unknownToken}, "unknown user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := makeRequest(env.router, "GET", "/api/v1/incidents", nil, tt.headers)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestCreateIncident_Success(t *testing.T) {
	env := newTestEnv(t)
	incidentID := uuid.New()
	reqBody := CreateIncidentRequest{
		Title:         "Pothole on Main St",
		Description:   "Bache profundo",
		ReporterEmail: "vecino@correo.cl",
	}

	env.incidents.EXPECT().
		CreateIncident(gomock.Any(), env.actor, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Actor, inc *models.Incident) error {
			assert.Equal(t, reqBody.Title, inc.Title)
			inc.ID = incidentID
			inc.State = models.StatePending
			inc.Priority = models.PriorityMedium
			return nil
		})

	w := makeRequest(env.router, "POST", "/api/v1/incidents", jsonBody(t, reqBody), env.auth)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, incidentID, resp.ID)
	assert.Equal(t, "pending", resp.State)
	assert.Equal(t, "medium", resp.Priority)
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	env.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(env.router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"title": "test"`), env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	reqBody := CreateIncidentRequest{ // Отсутствует Title
		ReporterEmail: "vecino@correo.cl",
	}

	env.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "POST", "/api/v1/incidents", jsonBody(t, reqBody), env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Title' failed on the 'required' tag")
}

func TestCreateIncident_DuplicateTitle(t *testing.T) {
	env := newTestEnv(t)

	env.incidents.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("wrap: %w", apperrors.NewValidationError("title", "an incident with this title already exists")))

	w := makeRequest(env.router, "POST", "/api/v1/incidents",
		jsonBody(t, CreateIncidentRequest{Title: "Bache", ReporterEmail: "a@b.cl"}), env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestGetEvidenceFile(t *testing.T) {
	incidentID, evidenceID := uuid.New(), uuid.New()
	url := fmt.Sprintf("/api/v1/incidents/%s/evidence/%s", incidentID, evidenceID)

	t.Run("serves local file", func(t *testing.T) {
		env := newTestEnv(t)
		filePath := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, os.WriteFile(filePath, []byte("contenido"), 0o644))
		env.incidents.EXPECT().GetEvidence(gomock.Any(), env.actor, incidentID, evidenceID).
			Return(&models.Evidence{ID: evidenceID, URL: "/media/evidencias/a.txt"}, filePath, nil)

		w := makeRequest(env.router, "GET", url, nil, env.auth)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "contenido", w.Body.String())
	})

	t.Run("redirects to external evidence", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetEvidence(gomock.Any(), env.actor, incidentID, evidenceID).
			Return(&models.Evidence{ID: evidenceID, URL: "https://cdn.example.com/b.jpg"}, "", nil)

		w := makeRequest(env.router, "GET", url, nil, env.auth)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://cdn.example.com/b.jpg", w.Header().Get("Location"))
	})

	t.Run("not visible", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetEvidence(gomock.Any(), env.actor, incidentID, evidenceID).
			Return(nil, "", apperrors.ErrForbidden)

		w := makeRequest(env.router, "GET", url, nil, env.auth)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetEvidence(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(env.router, "GET", url, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid evidence id", func(t *testing.T) {
		env := newTestEnv(t)

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/incidents/%s/evidence/nope", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid evidence ID")
	})
}

func TestGetIncident(t *testing.T) {
	incidentID := uuid.New()

	t.Run("success with evidence", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetIncident(gomock.Any(), env.actor, incidentID).Return(&models.Incident{
			ID:       incidentID,
			Title:    "Luminaria apagada",
			State:    models.StateInProgress,
			Evidence: []*models.Evidence{{ID: uuid.New(), URL: "/media/evidencias/a.png", Category: "image", Format: "png"}},
		}, nil)

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/incidents/%s", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp IncidentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "in_progress", resp.State)
		require.Len(t, resp.Evidence, 1)
		assert.Equal(t, "png", resp.Evidence[0].Format)
		assert.Contains(t, resp.Evidence[0].DownloadURL, "/api/v1/incidents/")
	})

	t.Run("invalid id", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(env.router, "GET", "/api/v1/incidents/invalid-uuid", nil, env.auth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid incident ID")
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), incidentID).
			Return(nil, fmt.Errorf("service: could not get incident: %w", apperrors.ErrIncidentNotFound))

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/incidents/%s", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "incident not found")
	})

	t.Run("outside visibility", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), incidentID).Return(nil, apperrors.ErrForbidden)

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/incidents/%s", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("database error", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), incidentID).Return(nil, errors.New("database error"))

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/incidents/%s", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
		assert.NotContains(t, w.Body.String(), "database error")
	})
}

func TestListIncidents_Success(t *testing.T) {
	env := newTestEnv(t)
	deptID := uuid.New()
	expected := []*models.Incident{
		{ID: uuid.New(), Title: "Incidencia 1", State: models.StatePending},
		{ID: uuid.New(), Title: "Incidencia 2", State: models.StateDone},
	}

	env.incidents.EXPECT().ListIncidents(gomock.Any(), env.actor, models.IncidentFilter{
		Query:        "bache",
		State:        models.StatePending,
		DepartmentID: &deptID,
		Page:         2,
		PageSize:     10,
	}).Return(expected, 12, nil)

	url := fmt.Sprintf("/api/v1/incidents?q=bache&state=pending&department=%s&page=2&pageSize=10", deptID)
	w := makeRequest(env.router, "GET", url, nil, env.auth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ListIncidentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, expected[0].Title, resp.Items[0].Title)
}

func TestListIncidents_ReportsEffectivePageSize(t *testing.T) {
	env := newTestEnv(t)

	env.incidents.EXPECT().ListIncidents(gomock.Any(), env.actor, models.IncidentFilter{
		Page:     1,
		PageSize: models.DefaultPageSize,
	}).Return([]*models.Incident{}, 0, nil)

	w := makeRequest(env.router, "GET", "/api/v1/incidents?page=-3&pageSize=500", nil, env.auth)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ListIncidentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, models.DefaultPageSize, resp.PageSize)
}

func TestListIncidents_InvalidDepartment(t *testing.T) {
	env := newTestEnv(t)
	env.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "GET", "/api/v1/incidents?department=nope", nil, env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid department ID")
}

func TestUpdateIncident_WithStateChange(t *testing.T) {
	env := newTestEnv(t)
	incidentID := uuid.New()
	body := `{"title": "Nuevo título", "state": "rejected", "rejection_reason": "Trabajo incompleto", "priority": "low"}`

	env.incidents.EXPECT().
		UpdateIncident(gomock.Any(), env.actor, incidentID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Actor, _ uuid.UUID, update models.IncidentUpdate) (*models.Incident, error) {
			require.NotNil(t, update.Title)
			assert.Equal(t, "Nuevo título", *update.Title)
			require.NotNil(t, update.State)
			assert.Equal(t, models.StateRejected, *update.State)
			require.NotNil(t, update.Priority)
			assert.Equal(t, models.PriorityLow, *update.Priority)
			assert.Equal(t, "Trabajo incompleto", update.Extra.RejectionReason)
			assert.Nil(t, update.Description)
			return &models.Incident{ID: incidentID, Title: *update.Title, State: *update.State}, nil
		})

	w := makeRequest(env.router, "PUT", fmt.Sprintf("/api/v1/incidents/%s", incidentID), bytes.NewBufferString(body), env.auth)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"rejected"`)
}

func TestUpdateIncident_InvalidPriority(t *testing.T) {
	env := newTestEnv(t)
	env.incidents.EXPECT().UpdateIncident(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "PUT", fmt.Sprintf("/api/v1/incidents/%s", uuid.New()),
		bytes.NewBufferString(`{"priority": "urgent"}`), env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'oneof' tag")
}

func TestDeleteIncident(t *testing.T) {
	incidentID := uuid.New()

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().DeleteIncident(gomock.Any(), env.actor, incidentID).Return(nil)

		w := makeRequest(env.router, "DELETE", fmt.Sprintf("/api/v1/incidents/%s", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.incidents.EXPECT().DeleteIncident(gomock.Any(), gomock.Any(), incidentID).Return(apperrors.ErrForbidden)

		w := makeRequest(env.router, "DELETE", fmt.Sprintf("/api/v1/incidents/%s", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "action not permitted")
	})
}

func TestTransitionIncident_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "illegal transition",
			err:     &apperrors.TransitionError{From: "validated", To: "rejected"},
			status:  http.StatusConflict,
			message: "allowed transitions are: none",
		},
		{
			name:    "role not permitted",
			err:     apperrors.ErrUnauthorizedTransition,
			status:  http.StatusForbidden,
			message: "role does not permit",
		},
		{
			name:    "missing evidence",
			err:     apperrors.ErrMissingEvidence,
			status:  http.StatusUnprocessableEntity,
			message: "evidence",
		},
		{
			name:    "missing rejection reason",
			err:     apperrors.ErrMissingRejectionReason,
			status:  http.StatusBadRequest,
			message: "rejection reason is required",
		},
		{
			name:    "unknown state",
			err:     apperrors.NewValidationError("state", "unknown state 'archived'"),
			status:  http.StatusBadRequest,
			message: "unknown state",
		},
		{
			name:    "delivery failure",
			err:     &apperrors.DeliveryError{Recipient: "jefe@municipalidad.local", Err: errors.New("smtp: 421")},
			status:  http.StatusBadGateway,
			message: "not applied",
		},
		{
			name:    "not found",
			err:     apperrors.ErrIncidentNotFound,
			status:  http.StatusNotFound,
			message: "incident not found",
		},
		{
			name:    "unexpected",
			err:     errors.New("tx aborted"),
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			incidentID := uuid.New()
			env.incidents.EXPECT().
				RequestTransition(gomock.Any(), env.actor, incidentID, models.StateRejected, models.TransitionExtra{RejectionReason: "x"}).
				Return(nil, fmt.Errorf("service: transition to rejected: %w", tt.err))

			w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/transition", incidentID),
				bytes.NewBufferString(`{"state": "rejected", "rejection_reason": "x"}`), env.auth)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestTransitionIncident_StateRequired(t *testing.T) {
	env := newTestEnv(t)
	env.incidents.EXPECT().RequestTransition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/transition", uuid.New()),
		bytes.NewBufferString(`{}`), env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinalizeIncident_WithoutBody(t *testing.T) {
	env := newTestEnv(t)
	incidentID := uuid.New()
	env.incidents.EXPECT().
		RequestTransition(gomock.Any(), env.actor, incidentID, models.StateDone, models.TransitionExtra{}).
		Return(&models.Incident{ID: incidentID, State: models.StateDone}, nil)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/finalize", incidentID), nil, env.auth)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"done"`)
}

func TestFinalizeIncident_WithComment(t *testing.T) {
	env := newTestEnv(t)
	incidentID := uuid.New()
	env.incidents.EXPECT().
		RequestTransition(gomock.Any(), gomock.Any(), incidentID, models.StateDone, models.TransitionExtra{Comment: "Reparado"}).
		Return(nil, apperrors.ErrMissingEvidence)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/finalize", incidentID),
		bytes.NewBufferString(`{"comment": "Reparado"}`), env.auth)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func multipartBody(t *testing.T, name string, files map[string][]byte) (io.Reader, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	for filename, data := range files {
		part, err := mw.CreateFormFile("files", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAttachEvidence_Success(t *testing.T) {
	env := newTestEnv(t)
	incidentID := uuid.New()
	body, contentType := multipartBody(t, "Foto del bache", map[string][]byte{"bache.png": []byte("png-bytes")})

	env.incidents.EXPECT().
		AttachEvidence(gomock.Any(), env.actor, incidentID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Actor, _ uuid.UUID, files []models.EvidenceFile) ([]*models.Evidence, error) {
			require.Len(t, files, 1)
			assert.Equal(t, "bache.png", files[0].FileName)
			assert.Equal(t, "Foto del bache", files[0].DisplayName)
			assert.Equal(t, []byte("png-bytes"), files[0].Data)
			return []*models.Evidence{{ID: uuid.New(), Name: "Foto del bache", URL: "/media/evidencias/x_bache.png", Category: "image", Format: "png"}}, nil
		})

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/incidents/%s/evidence", incidentID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", env.auth["Authorization"])
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp []EvidenceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "/media/evidencias/x_bache.png", resp[0].URL)
}

func TestAttachEvidence_FileTooLarge(t *testing.T) {
	env := newTestEnv(t)
	body, contentType := multipartBody(t, "", map[string][]byte{"grande.png": bytes.Repeat([]byte("a"), 2048)})
	env.incidents.EXPECT().AttachEvidence(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/incidents/%s/evidence", uuid.New()), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", env.auth["Authorization"])
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds the maximum size")
}

func TestAttachEvidence_NotMultipart(t *testing.T) {
	env := newTestEnv(t)
	env.incidents.EXPECT().AttachEvidence(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/incidents/%s/evidence", uuid.New()),
		bytes.NewBufferString(`{}`), env.auth)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid multipart form")
}

func TestAttachEvidence_NotInProgress(t *testing.T) {
	env := newTestEnv(t)
	incidentID := uuid.New()
	body, contentType := multipartBody(t, "", map[string][]byte{"a.png": []byte("x")})
	env.incidents.EXPECT().AttachEvidence(gomock.Any(), gomock.Any(), incidentID, gomock.Any()).
		Return(nil, fmt.Errorf("service: could not attach evidence: %w", apperrors.ErrNotInProgress))

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/incidents/%s/evidence", incidentID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", env.auth["Authorization"])
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDirectoryEndpoints(t *testing.T) {
	deptID := uuid.New()

	t.Run("department crews", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().ListCrewsByDepartment(gomock.Any(), deptID).
			Return([]*models.Crew{{ID: uuid.New(), Name: "Cuadrilla Norte", DepartmentID: &deptID}}, nil)

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/departments/%s/crews", deptID), nil, env.auth)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Cuadrilla Norte")
	})

	t.Run("unknown department", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().ListCrewsByDepartment(gomock.Any(), deptID).Return(nil, apperrors.ErrDepartmentNotFound)

		w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/departments/%s/crews", deptID), nil, env.auth)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("incident types", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().ListIncidentTypes(gomock.Any()).
			Return([]*models.IncidentType{{ID: uuid.New(), Name: "Alumbrado"}}, nil)

		w := makeRequest(env.router, "GET", "/api/v1/incident-types", nil, env.auth)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alumbrado")
	})
}

func TestCrewAPI_RequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	env.directory.EXPECT().CrewsForActor(gomock.Any(), env.actor).Return(nil, apperrors.ErrNotCrewMember)
	env.incidents.EXPECT().ListCrewIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "GET", "/api/v1/crew/incidents", nil, env.auth)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not a member of any crew")
}

func TestCrewAPI_Operations(t *testing.T) {
	incidentID := uuid.New()
	crew := []*models.Crew{{ID: uuid.New()}}

	t.Run("list with state", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().CrewsForActor(gomock.Any(), env.actor).Return(crew, nil)
		env.incidents.EXPECT().ListCrewIncidents(gomock.Any(), env.actor, models.StateDone).
			Return([]*models.Incident{{ID: incidentID, State: models.StateDone}}, nil)

		w := makeRequest(env.router, "GET", "/api/v1/crew/incidents?state=done", nil, env.auth)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []IncidentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
	})

	t.Run("start work on unassigned incident", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().CrewsForActor(gomock.Any(), env.actor).Return(crew, nil)
		env.incidents.EXPECT().StartWork(gomock.Any(), env.actor, incidentID).Return(nil, apperrors.ErrForbidden)

		w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/crew/incidents/%s/start", incidentID), nil, env.auth)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	for _, method := range []string{"POST", "PATCH"} {
		t.Run("resolve via "+method, func(t *testing.T) {
			env := newTestEnv(t)
			env.directory.EXPECT().CrewsForActor(gomock.Any(), env.actor).Return(crew, nil)
			env.incidents.EXPECT().
				ResolveWithEvidence(gomock.Any(), env.actor, incidentID, []string{"https://cdn/a.jpg", ""}, "Listo").
				Return(&models.Incident{ID: incidentID, State: models.StateDone, ResolutionComment: "Listo"}, nil)

			w := makeRequest(env.router, method, fmt.Sprintf("/api/v1/crew/incidents/%s/resolve", incidentID),
				bytes.NewBufferString(`{"evidence_urls": ["https://cdn/a.jpg", ""], "comment": "Listo"}`), env.auth)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"resolution_comment":"Listo"`)
		})
	}

	t.Run("resolve with a non http url", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().CrewsForActor(gomock.Any(), env.actor).Return(crew, nil)
		env.incidents.EXPECT().ResolveWithEvidence(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(env.router, http.MethodPost, fmt.Sprintf("/api/v1/crew/incidents/%s/resolve", incidentID),
			bytes.NewBufferString(`{"evidence_urls": ["javascript:alert(1)"]}`), env.auth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reject without reason", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.EXPECT().CrewsForActor(gomock.Any(), env.actor).Return(crew, nil)
		env.incidents.EXPECT().RejectByCrew(gomock.Any(), env.actor, incidentID, "").
			Return(nil, apperrors.ErrMissingRejectionReason)

		w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/crew/incidents/%s/reject", incidentID),
			bytes.NewBufferString(`{}`), env.auth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rejection reason is required")
	})
}

package routes

import (
	"DentalCenter/config"
	"DentalCenter/repositories"
	"DentalCenter/services"
	"DentalCenter/storage"
	"DentalCenter/utils"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *gin.Engine
	store  *storage.MemoryStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := storage.NewMemoryStorage()
	cfg := &config.AppConfig{
		Env:            "test",
		StorageBackend: config.BackendMemory,
		SymmetricKey:   "0123456789abcdef0123456789abcdef",
		AdminEmail:     "admin@entnt.in",
		AdminPassword:  "admin123",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		ReminderWindow: 72 * time.Hour,
	}
	router, err := SetupRoutes(context.Background(), Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
		Store:  store,
		Mailer: utils.NewLogMailer(zap.NewNop()),
		Clock: services.Clock{
			Now:      func() time.Time { return time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC) },
			Location: time.UTC,
		},
	})
	require.NoError(t, err)
	return &testServer{router: router, store: store}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.AccessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	return cookie.Value
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/", "/me", "/admin", "/admin/patients", "/incidents", "/calendar", "/session"} {
		rec := s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}

	rec := s.do(http.MethodGet, "/", "garbage", "")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRoleMismatchRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)
	patient := s.login(t, "john@entnt.in", "patient123")
	admin := s.login(t, "admin@entnt.in", "admin123")

	for _, path := range []string{"/admin/patients", "/incidents", "/calendar"} {
		rec := s.do(http.MethodGet, path, patient, "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	}
	rec := s.do(http.MethodGet, "/me", admin, "")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/login", "", `{"email":"admin@entnt.in","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")

	rec = s.do(http.MethodPost, "/login", "", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token := s.login(t, "john@entnt.in", "patient123")
	rec = s.do(http.MethodGet, "/session", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"patientId":"p1"`)

	raw, err := s.store.Get(context.Background(), repositories.AuthUserStorageKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "john@entnt.in")

	rec = s.do(http.MethodPost, "/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	raw, err = s.store.Get(context.Background(), repositories.AuthUserStorageKey)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestAdminDashboard(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@entnt.in", "admin123")

	rec := s.do(http.MethodGet, "/", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Role      string                  `json:"role"`
		Dashboard services.AdminDashboard `json:"dashboard"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "Admin", body.Role)
	assert.Equal(t, 1, body.Dashboard.TotalPatients)
	assert.Equal(t, 80.0, body.Dashboard.TotalRevenue)
	assert.Len(t, body.Dashboard.RevenueTrend, 6)
	require.Len(t, body.Dashboard.TopPatients, 1)
	assert.Equal(t, "John Doe", body.Dashboard.TopPatients[0].Name)
}

func TestPatientSelfViewAndPasswordChange(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "john@entnt.in", "patient123")

	rec := s.do(http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	var self services.PatientSelfView
	decode(t, rec, &self)
	assert.Equal(t, "John Doe", self.Profile.Name)
	assert.Equal(t, 80.0, self.TotalSpent)

	rec = s.do(http.MethodPut, "/me/password", token, `{"currentPassword":"wrong","newPassword":"newpass1","confirmPassword":"newpass1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/me/password", token, `{"currentPassword":"patient123","newPassword":"newpass1","confirmPassword":"newpass1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	s.login(t, "john@entnt.in", "newpass1")
}

func TestPatientAndIncidentManagement(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@entnt.in", "admin123")

	rec := s.do(http.MethodPost, "/admin/patients", admin, `{"name":"Jane Roe","dob":"1992-03-04","contact":"555","email":"jane@example.com","password":"secret1","confirmPassword":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var jane struct {
		ID string `json:"id"`
	}
	decode(t, rec, &jane)

	rec = s.do(http.MethodPost, "/admin/patients", admin, `{"name":"Jane Again","dob":"1992-03-04","contact":"555","email":"JANE@example.com","password":"secret1","confirmPassword":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/admin/patients", admin, `{"name":"","dob":"1992-03-04","contact":"555","email":"x@example.com","password":"secret1","confirmPassword":"secret2"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirmPassword")

	rec = s.do(http.MethodPost, "/incidents", admin, `{"patientId":"`+jane.ID+`","title":"Cleaning","appointmentDate":"2025-06-22T09:30","cost":"45","treatment":"ignored"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Treatment string `json:"treatment"`
	}
	decode(t, rec, &created)
	assert.Equal(t, "Scheduled", created.Status)
	assert.Empty(t, created.Treatment)

	rec = s.do(http.MethodPost, "/incidents", admin, `{"patientId":"p404","title":"x","appointmentDate":"2025-06-22T09:30"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/incidents?patientId="+jane.ID, admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"patientName":"Jane Roe"`)

	rec = s.do(http.MethodPost, "/incidents/reminders", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sent":1,"skipped":0,"failed":0}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/incidents/"+created.ID, admin, `{"patientId":"`+jane.ID+`","title":"Cleaning","appointmentDate":"2025-06-22T09:30","status":"Completed","cost":45,"treatment":"Scaling"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"treatment":"Scaling"`)

	rec = s.do(http.MethodDelete, "/admin/patients/"+jane.ID+"/related", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"incidentsDeleted":1`)

	rec = s.do(http.MethodGet, "/incidents/"+created.ID, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodDelete, "/admin/patients/"+jane.ID, admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendar(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@entnt.in", "admin123")

	rec := s.do(http.MethodGet, "/calendar?day=2025-07-01", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page services.CalendarPage
	decode(t, rec, &page)
	assert.Equal(t, "2025-07", page.Month)
	require.NotNil(t, page.Selected)
	require.Len(t, page.Selected.Incidents, 1)
	assert.Equal(t, "John Doe", page.Selected.Incidents[0].PatientName)

	rec = s.do(http.MethodGet, "/calendar", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	assert.Equal(t, "2025-06", page.Month)

	rec = s.do(http.MethodGet, "/calendar?month=2025-13", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dental_center_http_requests_total")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLogoutKeepsAnotherUsersSession(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@entnt.in", "admin123")
	patient := s.login(t, "john@entnt.in", "patient123")

	rec := s.do(http.MethodPost, "/logout", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/session", patient, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		LastSignIn *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"lastSignIn"`
	}
	decode(t, rec, &body)
	require.NotNil(t, body.LastSignIn)
	assert.Equal(t, "john@entnt.in", body.LastSignIn.Email)

	rec = s.do(http.MethodPost, "/logout", patient, "")
	require.Equal(t, http.StatusOK, rec.Code)
	raw, err := s.store.Get(context.Background(), repositories.AuthUserStorageKey)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestMetricsExposeCollectionSizes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dental_center_collection_records{collection="patients"} 1`)
	assert.Contains(t, rec.Body.String(), `dental_center_collection_records{collection="incidents"} 1`)
}

package middlewares

import (
	"DentalCenter/models"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthorizer struct {
	tokens map[string]models.User
}

func (f fakeAuthorizer) Authorize(token string, roles ...models.Role) (models.User, error) {
	user, ok := f.tokens[token]
	if !ok {
		return models.User{}, errors.New("unknown token")
	}
	if len(roles) == 0 {
		return user, nil
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
	}
	return models.User{}, errors.New("insufficient permissions")
}

func protectedRouter(roles ...models.Role) *gin.Engine {
	auth := fakeAuthorizer{tokens: map[string]models.User{
		"admin-token":   {ID: "1", Role: models.RoleAdmin, Email: "admin@entnt.in"},
		"patient-token": {ID: "p1", Role: models.RolePatient, Email: "john@entnt.in", PatientID: "p1"},
	}}
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/private", TokenAuthMiddleware(auth, roles...), func(c *gin.Context) {
		user, err := ExtractUserFromContext(c.Request.Context())
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.ID)
	})
	return r
}

func TestTokenAuthMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		roles    []models.Role
		prepare  func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{"no token", nil, func(*http.Request) {}, http.StatusFound, ""},
		{"bad token", nil, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusFound, ""},
		{"cookie", nil, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: "patient-token"})
		}, http.StatusOK, "p1"},
		{"bearer", []models.Role{models.RoleAdmin}, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer admin-token")
		}, http.StatusOK, "1"},
		{"query", nil, func(r *http.Request) {
			r.URL.RawQuery = "accessToken=admin-token"
		}, http.StatusOK, "1"},
		{"wrong role", []models.Role{models.RoleAdmin}, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: "patient-token"})
		}, http.StatusFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()
			protectedRouter(tc.roles...).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantCode == http.StatusFound {
				assert.Equal(t, LoginPath, rec.Header().Get("Location"))
			} else {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestExtractToken_CookieWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?accessToken=query", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie"})
	req.Header.Set("Authorization", "Bearer header")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	assert.Equal(t, "cookie", extractToken(c))
}

func TestRateLimiterIsPerClient(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2"))
}

func TestHttpError(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HttpError(c, "not found", http.StatusNotFound, errors.New("missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	assert.True(t, c.IsAborted())
}

func TestCorsPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware([]string{"http://localhost:3000"}), SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/42", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/things/:id"`)
}

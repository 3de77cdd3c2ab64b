package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewdesk/models"
	"reviewdesk/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zap.NewNop())
}

type fakeUsers struct {
	items   map[string]models.User
	lookups int
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.lookups++
	u, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) UpdateRating(context.Context, string, models.Role, models.RatingSummary) error {
	return nil
}

func newAuthRouter(users *fakeUsers, cache *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthUserMiddleware(users, cache))
	r.GET("/me", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func doAuth(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthUserMiddleware(t *testing.T) {
	users := &fakeUsers{items: map[string]models.User{"alice": {ID: "alice"}}}
	r := newAuthRouter(users, nil)

	token, err := utils.GenerateToken("alice", "alice@example.com", time.Hour)
	require.NoError(t, err)
	w := doAuth(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "Bearer not-a-jwt").Code)

	unknown, err := utils.GenerateToken("mallory", "m@example.com", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "Bearer "+unknown).Code)
}

func TestJWTAuthUserMiddlewareUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	users := &fakeUsers{items: map[string]models.User{"alice": {ID: "alice"}}}
	r := newAuthRouter(users, cache)

	token, err := utils.GenerateToken("alice", "alice@example.com", time.Hour)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, doAuth(r, "Bearer "+token).Code)
	require.Equal(t, http.StatusOK, doAuth(r, "Bearer "+token).Code)
	assert.Equal(t, 1, users.lookups, "second request is served from cache")

	require.NoError(t, mr.Set(RevokedTokenPrefix+utils.HashToken(token), "1"))
	assert.Equal(t, http.StatusUnauthorized, doAuth(r, "Bearer "+token).Code)
}

func TestSessionMiddlewareIssuesAndKeepsID(t *testing.T) {
	r := gin.New()
	r.Use(SessionMiddleware(3600))
	r.GET("/s", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSessionID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
	issued := w.Body.String()
	require.NotEmpty(t, issued)
	assert.Equal(t, issued, w.Header().Get(utils.SessionHeader))
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, utils.SessionCookieName, w.Result().Cookies()[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: issued})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, issued, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/s", nil)
	req.Header.Set(utils.SessionHeader, "../../etc/passwd")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "../../etc/passwd", w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLoggerSetsLoggerAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"garbage header falls back", map[string]string{"X-Forwarded-For": "not-an-ip"}, "192.0.2.1"},
		{"socket address", nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c.Request = req
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestIPLimiterDropsIdleVisitors(t *testing.T) {
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := newIPLimiter(1)
	l.now = func() time.Time { return clock }

	require.True(t, l.allow("10.0.0.1"))
	require.False(t, l.allow("10.0.0.1"))

	clock = clock.Add(idleLimiterTTL + time.Second)
	require.True(t, l.allow("10.0.0.2"))
	_, kept := l.visitors["10.0.0.1"]
	assert.False(t, kept)
	assert.Len(t, l.visitors, 1)
}

func TestRateLimitedResponseCarriesCode(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	var w *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.9")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"rate_limited"`)
}

package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/school-records/internal/models"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
	got    string
}

func (s *stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	s.got = token
	return s.claims, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.POST("/students", append(handlers, func(c *gin.Context) { c.Status(http.StatusCreated) })...)
	r.GET("/students", append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })...)
	return r
}

func serve(r *gin.Engine, method, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/students", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWT(t *testing.T) {
	admin := &stubValidator{claims: &models.JWTClaims{Email: "admin@school.local", Role: models.RoleAdmin}}
	r := newRouter(JWT(admin), RequireRoles(models.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "Bearer ").Code)

	rec := serve(r, http.MethodPost, "bearer token-1")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "token-1", admin.got)

	rejected := &stubValidator{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}
	rec = serve(newRouter(JWT(rejected)), http.MethodPost, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestRequireRoles(t *testing.T) {
	viewer := &stubValidator{claims: &models.JWTClaims{Role: models.UserRole("VIEWER")}}

	rec := serve(newRouter(JWT(viewer), RequireRoles(models.RoleAdmin)), http.MethodPost, "Bearer t")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newRouter(RequireRoles(models.RoleAdmin)), http.MethodPost, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type recordingObserver struct {
	method, path string
	status       int
}

func (o *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	o.method, o.path, o.status = method, path, status
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/students/:index", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/4", nil))

	assert.Equal(t, "/students/:index", obs.path)
	assert.Equal(t, http.StatusNoContent, obs.status)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, "unmatched", obs.path)
	assert.Equal(t, http.StatusNotFound, obs.status)
}

func TestAuditLogsSuccessfulMutationsOnly(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	claims := &stubValidator{claims: &models.JWTClaims{Email: "admin@school.local", Role: models.RoleAdmin}}

	r := gin.New()
	r.POST("/ok", JWT(claims), Audit(logger, "register_student"), func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/fail", Audit(logger, "register_student"), func(c *gin.Context) { c.Status(http.StatusConflict) })

	req := httptest.NewRequest(http.MethodPost, "/ok", bytes.NewBufferString("{}"))
	req.Header.Set("Authorization", "Bearer t")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/fail", nil))

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "register_student", fields["action"])
	assert.Equal(t, "admin@school.local", fields["actor"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
}

func TestResponseMeta(t *testing.T) {
	var meta map[string]interface{}
	r := gin.New()
	r.Use(ResponseMeta())
	r.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = Meta(c)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
	assert.NotContains(t, meta, "started_at")
}

func TestClaimsFromContextWithoutJWT(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ClaimsFromContext(c))

	c.Set(ContextUserKey, errors.New("not claims"))
	assert.Nil(t, ClaimsFromContext(c))
}

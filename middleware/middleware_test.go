package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func identityRouter() *gin.Engine {
	r := gin.New()
	r.Use(ClientIdentityMiddleware(false))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, ClientID(c))
	})
	return r
}

func TestClientIdentity_MintsAndPersists(t *testing.T) {
	r := identityRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	minted := w.Body.String()
	_, err := uuid.Parse(minted)
	require.NoError(t, err)
	assert.Equal(t, minted, w.Header().Get(ClientIDHeader))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientIDCookie, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, minted, w.Body.String())
}

func TestClientIdentity_HeaderWins(t *testing.T) {
	r := identityRouter()
	id := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(ClientIDHeader, id)
	req.AddCookie(&http.Cookie{Name: ClientIDCookie, Value: uuid.New().String()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(ClientIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "41.90.1.1, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "196.201.214.10:5555"
	assert.Equal(t, "196.201.214.10", GetClientIP(c))

	c.Request.Header.Set("X-Real-IP", "41.90.1.2")
	assert.Equal(t, "41.90.1.2", GetClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "41.90.1.1, 10.0.0.1")
	assert.Equal(t, "41.90.1.1", GetClientIP(c))
}

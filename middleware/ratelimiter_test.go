package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newLimitedRouter(burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	// Refill slow enough that only the burst matters within a test run
	router.Use(RateLimit(rate.Every(time.Hour), burst))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func get(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRateLimit(t *testing.T) {
	t.Run("Requests beyond the burst get 429", func(t *testing.T) {
		router := newLimitedRouter(2)

		require.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)
		require.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)

		recorder := get(router, "10.0.0.1:1234")

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Rate limit exceeded")
	})

	t.Run("Each client IP has its own budget", func(t *testing.T) {
		router := newLimitedRouter(1)

		require.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)
		require.Equal(t, http.StatusTooManyRequests, get(router, "10.0.0.1:1234").Code)

		assert.Equal(t, http.StatusOK, get(router, "10.0.0.2:1234").Code)
	})
}

func TestLimiterForReusesBuckets(t *testing.T) {
	l := newIPLimiter(rate.Every(time.Minute), 5)

	first := l.limiterFor("10.0.0.1")
	second := l.limiterFor("10.0.0.1")
	other := l.limiterFor("10.0.0.2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

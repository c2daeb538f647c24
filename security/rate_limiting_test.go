package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimitedEcho(limiter *RateLimiter) *echo.Echo {
	e := echo.New()
	e.POST("/start", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, limiter.ControlRateLimit())
	return e
}

func doRequest(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/start", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestControlRateLimit_AllowsUnderLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)
	e := setupLimitedEcho(limiter)

	mock.ExpectIncr("ratelimit:control:10.0.0.1").SetVal(1)
	mock.ExpectExpire("ratelimit:control:10.0.0.1", time.Minute).SetVal(true)

	rec := doRequest(e)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestControlRateLimit_BlocksOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)
	e := setupLimitedEcho(limiter)

	mock.ExpectIncr("ratelimit:control:10.0.0.1").SetVal(31)

	rec := doRequest(e)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestControlRateLimit_PassesThroughWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, 30, time.Minute)
	e := setupLimitedEcho(limiter)

	for i := 0; i < 100; i++ {
		rec := doRequest(e)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestControlRateLimit_RedisFailureDoesNotBlock(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)
	e := setupLimitedEcho(limiter)

	mock.ExpectIncr("ratelimit:control:10.0.0.1").SetErr(assert.AnError)

	rec := doRequest(e)
	assert.Equal(t, http.StatusOK, rec.Code)
}

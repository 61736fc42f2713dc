package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/api/middleware"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func generateRSAKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, method jwt.SigningMethod, claims middleware.OrganizerClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateRSAKey(t)
	otherKey, _ := generateRSAKey(t)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"door-staff-key", " "},
	})
	require.NoError(t, err)

	valid := middleware.OrganizerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "organizer@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{middleware.ORGANIZER_ROLE},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	attendee := valid
	attendee.Roles = []string{"attendee"}
	noExpiry := valid
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name        string
		header      string
		wantErr     bool
		wantType    string
		wantSubject string
	}{
		{name: "valid jwt", header: "Bearer " + signToken(t, key, jwt.SigningMethodRS256, valid), wantType: middleware.AuthTypeJWT, wantSubject: "organizer@example.com"},
		{name: "valid api key", header: "ApiKey door-staff-key", wantType: middleware.AuthTypeAPIKey},
		{name: "missing header", header: "", wantErr: true},
		{name: "no scheme", header: "door-staff-key", wantErr: true},
		{name: "unknown scheme", header: "Basic Zm9vOmJhcg==", wantErr: true},
		{name: "wrong api key", header: "ApiKey nope", wantErr: true},
		{name: "blank configured key is not accepted", header: "ApiKey  ", wantErr: true},
		{name: "expired jwt", header: "Bearer " + signToken(t, key, jwt.SigningMethodRS256, expired), wantErr: true},
		{name: "jwt without expiry", header: "Bearer " + signToken(t, key, jwt.SigningMethodRS256, noExpiry), wantErr: true},
		{name: "jwt without organizer role", header: "Bearer " + signToken(t, key, jwt.SigningMethodRS256, attendee), wantErr: true},
		{name: "jwt from another key", header: "Bearer " + signToken(t, otherKey, jwt.SigningMethodRS256, valid), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.Authenticate(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, result.AuthType)
			assert.Equal(t, tt.wantSubject, result.AuthSubject)
		})
	}
}

func TestAuthenticate_NothingConfigured(t *testing.T) {
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)

	_, err = auth.Authenticate("ApiKey anything")
	assert.Error(t, err)

	_, err = auth.Authenticate("Bearer a.b.c")
	assert.Error(t, err)
}

func TestNewAuthenticator_BadPEM(t *testing.T) {
	_, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "not a key"})
	assert.Error(t, err)
}

func newRateLimitedRouter(limiter adapter.RedisRateLimiter) *gin.Engine {
	router := gin.New()
	router.GET("/limited", middleware.RateLimit(limiter, middleware.RateLimitConfig{
		Scope:             "public",
		RequestsPerMinute: 30,
		Burst:             5,
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		limiter := mocks.NewMockRedisRateLimiter(gomock.NewController(t))
		limiter.EXPECT().AllowPerMinute(gomock.Any(), "ratelimit:public:192.0.2.1", 30, 5).
			Return(adapter.RateDecision{Allowed: true, Remaining: 4}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		newRateLimitedRouter(limiter).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "4", w.Header().Get(middleware.RATE_LIMIT_REMAINING_HEADER))
	})

	t.Run("limited", func(t *testing.T) {
		limiter := mocks.NewMockRedisRateLimiter(gomock.NewController(t))
		limiter.EXPECT().AllowPerMinute(gomock.Any(), gomock.Any(), 30, 5).
			Return(adapter.RateDecision{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil)

		w := httptest.NewRecorder()
		newRateLimitedRouter(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
	})

	t.Run("limiter down lets requests through", func(t *testing.T) {
		limiter := mocks.NewMockRedisRateLimiter(gomock.NewController(t))
		limiter.EXPECT().AllowPerMinute(gomock.Any(), gomock.Any(), 30, 5).
			Return(adapter.RateDecision{}, errors.New("dial tcp: connection refused"))

		w := httptest.NewRecorder()
		newRateLimitedRouter(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disabled without limiter", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRateLimitedRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, w.Header().Get(middleware.REQUEST_ID_HEADER), 26)
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, "door-tablet-3")
		router.ServeHTTP(w, req)
		assert.Equal(t, "door-tablet-3", w.Header().Get(middleware.REQUEST_ID_HEADER))
	})
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

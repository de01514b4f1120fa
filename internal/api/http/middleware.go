package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/security"
	"krayaa-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "krayaa_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "krayaa_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// AuthMiddleware verifies the bearer token, enforces the institutional
// email domain, and lazily provisions the profile row for first-time
// callers.
type AuthMiddleware struct {
	verifier      security.TokenVerifier
	userSvc       service.UserService
	allowedDomain string
}

func NewAuthMiddleware(verifier security.TokenVerifier, userSvc service.UserService, allowedDomain string) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:      verifier,
		userSvc:       userSvc,
		allowedDomain: allowedDomain,
	}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token, authorization denied")
			return
		}

		// Institutional gate: only campus accounts get past this point.
		if identity.Email == "" || !strings.HasSuffix(identity.Email, "@"+m.allowedDomain) {
			respondWithError(w, http.StatusForbidden, "Only "+m.allowedDomain+" accounts are allowed")
			return
		}

		user, err := m.userSvc.EnsureUser(r.Context(), identity.UID, identity.Email)
		if err != nil {
			logger.Error("Failed to ensure user profile", "uid", identity.UID, "error", err)
			respondWithError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.Header.Get("x-auth-token")
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records request counts and latency per route template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues(r.Method, endpoint))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		timer.ObserveDuration()

		httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
	})
}

// LoggingMiddleware logs each request at debug level with its outcome.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"agromopomulo.id/bankpohon/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// RequestLogger writes one http log entry per request. The user id is read
// from the claims the JWT middleware stored further down the chain.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		var userID string
		next.ServeHTTP(rec, r.WithContext(withUserSlot(r.Context(), &userID)))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		entry := logger.HTTP().WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"bytes":       rec.bytes,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          logger.ClientIP(r),
			"user_id":     userID,
		})
		switch {
		case rec.status >= 500:
			entry.Error("request failed")
		case rec.status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	})
}

type userSlotKey struct{}

func withUserSlot(ctx context.Context, id *string) context.Context {
	return context.WithValue(ctx, userSlotKey{}, id)
}

// fillUserSlot hands the authenticated user id back to RequestLogger.
func fillUserSlot(ctx context.Context, id string) {
	if p, ok := ctx.Value(userSlotKey{}).(*string); ok {
		*p = id
	}
}

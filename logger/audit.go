package logger

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ctxUserIDKey lets the auth middleware hand the caller's id to audit logging
// without this package importing middleware.
type ctxUserIDKey struct{}

// UserIDKey is the context key under which the authenticated user id is stored.
var UserIDKey = ctxUserIDKey{}

// LogAction writes one audit entry for a request.
func LogAction(action string, r *http.Request, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	userID, _ := r.Context().Value(UserIDKey).(string)

	Audit().WithFields(logrus.Fields{
		"action":     action,
		"user_id":    userID,
		"ip":         ClientIP(r),
		"user_agent": r.UserAgent(),
		"path":       r.URL.Path,
		"details":    details,
		"timestamp":  time.Now().Format(time.RFC3339),
	}).Info("Audit log")
}

// LogCRUD records a create/update/delete on an admin-managed resource.
func LogCRUD(operation, resourceType, resourceID string, r *http.Request, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, r, details)
}

// LogAuth records login and signup attempts.
func LogAuth(action string, r *http.Request, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, r, details)
}

// ClientIP extracts the caller address: X-Forwarded-For, then X-Real-IP, then RemoteAddr.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

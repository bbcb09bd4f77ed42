package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// EnsureAuth gates a route behind a bearer token. The token must
// decode, must not be expired, and its subject must resolve to an
// existing user, which is then attached to the request context. Each
// failure is terminal for the request; nothing is retried.
func EnsureAuth(db *gorm.DB, lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"status":   "Please log in",
					"redirect": "login",
				})
				return
			}
			raw := strings.TrimPrefix(h, "Bearer ")
			claims, err := Verify(raw)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"status":   err.Error(),
					"redirect": "login",
				})
				return
			}
			// The codec leaves expiry alone; the comparison lives here.
			if time.Now().After(claims.ExpiresAt) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"status":   "token expired",
					"redirect": "login",
				})
				return
			}
			var user models.User
			if err := db.First(&user, claims.Subject).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					writeJSON(w, http.StatusUnauthorized, map[string]string{
						"status":   "User doesn't exist",
						"redirect": "login",
					})
					return
				}
				lg.Errorw("auth user lookup failed", "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "Internal Error"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
		})
	}
}

// RequireJobOwner verifies that the {job_id} in the path belongs to the
// authenticated caller before allowing the request through. A job that
// does not exist passes the gate untouched; the downstream handler
// decides what a missing job means. That fail-open is inherited
// behavior, kept on purpose.
func RequireJobOwner(db *gorm.DB, lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jobID := chi.URLParam(r, "job_id")
			user := CurrentUser(r.Context())
			if user == nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "Please log in"})
				return
			}
			var job models.Job
			err := db.First(&job, "id = ?", jobID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				next.ServeHTTP(w, r)
			case err != nil:
				lg.Errorw("job ownership lookup failed", "job_id", jobID, "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Error"})
			case job.UserID != user.ID:
				writeJSON(w, http.StatusUnauthorized, fmt.Sprintf("you do not have permission to view this job: %s", jobID))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"p9e.in/inspectly/config"
	"p9e.in/inspectly/models"
	"p9e.in/inspectly/pkg/access"
)

// Guard enforces the route table on every request behind it. It builds
// the caller's session from the parsed claims, loads the profile, and
// maps the guard verdict onto HTTP. Precedence is access.Evaluate's:
// unresolved state is Pending (503, retryable), never a login bounce.
func Guard(routes access.RouteTable) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, profile := buildSession(r)
			req := routes.RequirementFor(r.URL.Path)

			decision := access.Evaluate(sess, req, r.URL.Path)
			switch decision.Action {
			case access.Pending:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session still resolving", http.StatusServiceUnavailable)
			case access.RedirectToLogin:
				writeRedirect(w, http.StatusUnauthorized, "/auth", decision.ReturnPath)
			case access.RedirectToHome:
				config.Log.Info("route denied by role guard",
					zap.String("path", r.URL.Path),
					zap.String("userID", sess.Principal.ID),
					zap.String("role", string(sess.Principal.Role)))
				writeRedirect(w, http.StatusForbidden, "/", "")
			case access.Allow:
				next.ServeHTTP(w, withProfile(r, profile))
			}
		})
	}
}

// buildSession resolves claims into a guard session. A claims-bearing
// request whose profile row cannot be read transiently stays
// authenticated-without-profile, which the guard treats as Pending
// rather than denying; a missing row means the identity is stale.
func buildSession(r *http.Request) (access.Session, *models.Profile) {
	claims := GetClaims(r)
	if claims == nil {
		return access.Session{State: access.StateUnauthenticated}, nil
	}

	var profile models.Profile
	err := config.DB.First(&profile, "id = ?", claims.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Session{State: access.StateUnauthenticated}, nil
		}
		config.Log.Warn("profile load failed during guard evaluation",
			zap.String("userID", claims.UserID), zap.Error(err))
		return access.Session{State: access.StateAuthenticated}, nil
	}

	return access.Session{
		State:     access.StateAuthenticated,
		Principal: profile.Principal(),
	}, &profile
}

func writeRedirect(w http.ResponseWriter, status int, to, from string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"redirect": to}
	if from != "" {
		body["from"] = from
	}
	json.NewEncoder(w).Encode(body)
}

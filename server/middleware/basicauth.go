package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/kbukum/flairscribe/logger"
)

// BasicAuthConfig holds the single credential pair the API accepts.
type BasicAuthConfig struct {
	Username string
	Password string
	Realm    string
}

// unauthorizedBody is the 401 payload existing API clients parse.
var unauthorizedBody = map[string]string{"msg": "Bad username or password"}

// BasicAuth admits only requests whose Basic credentials equal the configured
// pair. With no credentials configured every request is refused.
func BasicAuth(cfg BasicAuthConfig, log *logger.Logger) Middleware {
	realm := cfg.Realm
	if realm == "" {
		realm = "flairscribe"
	}
	configured := cfg.Username != "" && cfg.Password != ""

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !configured || !credentialsMatch(user, pass, cfg) {
				log.WithContext(r.Context()).Warn("authentication failed", logger.Fields(
					"path", r.URL.Path,
					"credentials_present", ok,
				))
				w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
				writeJSON(w, http.StatusUnauthorized, unauthorizedBody)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// credentialsMatch compares both fields without short-circuiting.
func credentialsMatch(user, pass string, cfg BasicAuthConfig) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username))
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password))
	return userOK&passOK == 1
}

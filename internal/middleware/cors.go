package middleware

import (
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/auth"
)

// Cors answers preflight requests and sets the CORS headers for the configured origins.
// Requests carrying an Origin that is not allowed are rejected with 403; requests without
// an Origin (curl, MCP clients) pass through.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
			auth.TokenHeader, "MCP-Protocol-Version", "MCP-Session-Id",
		},
		ExposedHeaders: []string{"Content-Disposition", "MCP-Session-Id"},
		MaxAge:         600,
	})

	return func(next http.Handler) http.Handler {
		withCors := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !c.OriginAllowed(r) {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}
			withCors.ServeHTTP(w, r)
		})
	}
}

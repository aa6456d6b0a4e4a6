package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/pkg"
)

// LogRequest traces every routed request. The query string is left out, it may carry the timer ws token.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.IsLevelEnabled(log.TraceLevel) {
				ip, _ := pkg.ReadUserIP(r)
				log.WithFields(log.Fields{
					"method": r.Method,
					"route":  routeName(r),
					"path":   r.URL.Path,
					"ip":     ip,
					"ua":     r.Header.Get("User-Agent"),
				}).Trace("request")
			}
			next.ServeHTTP(w, r)
		})
	}
}

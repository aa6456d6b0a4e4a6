package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a 500, marks the request span as failed and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// client went away, let net/http drop the connection silently
					panic(rec)
				}

				route := routeName(req)
				log.WithFields(log.Fields{
					"route":  route,
					"method": req.Method,
				}).Errorf("http: panic serving %s: %v\n%s", req.URL.Path, rec, debug.Stack())

				span := trace.SpanFromContext(req.Context())
				span.RecordError(fmt.Errorf("panic: %v", rec))
				span.SetStatus(codes.Error, "panic")

				metricsManager.CounterHandleRequestPanic.Inc()
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}

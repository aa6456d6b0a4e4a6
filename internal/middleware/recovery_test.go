package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
)

type panicRecTestHandler struct {
	panicWith any
	called    bool
}

func (p *panicRecTestHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	p.called = true
	if p.panicWith != nil {
		panic(p.panicWith)
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestPanicRecovery(t *testing.T) {
	for caseName, tc := range map[string]struct {
		panicWith      any
		expectedStatus int
		expectedPanics float64
	}{
		"no panic":     {panicWith: nil, expectedStatus: http.StatusNoContent, expectedPanics: 0},
		"string panic": {panicWith: "YOLO", expectedStatus: http.StatusInternalServerError, expectedPanics: 1},
		"error panic": {
			panicWith:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedPanics: 1,
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			metricsManager := metrics.NewTestManager()
			next := &panicRecTestHandler{panicWith: tc.panicWith}

			r := mux.NewRouter()
			r.Handle("/workouts/{id}", next).Name("get-workout")
			r.Use(PanicRecovery(metricsManager))

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest("GET", "/workouts/w-1", nil))

			assert.True(t, next.called)
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedPanics, testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
		})
	}
}

func TestPanicRecovery_AbortHandlerIsRethrown(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	handler := PanicRecovery(metricsManager)(&panicRecTestHandler{panicWith: http.ErrAbortHandler})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

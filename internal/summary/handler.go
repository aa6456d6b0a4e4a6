package summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.summary.weekly")
	defer span.End()

	startDate := mux.Vars(r)["startDate"]
	weekly, err := handler.service.GetWeeklySummary(ctx, startDate)
	if errors.Is(err, ErrInvalidPeriod) {
		http.Error(w, "error, invalid start date", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to get weekly summary from %s: %s", startDate, err)
		http.Error(w, "failed to get weekly summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, weekly, http.StatusOK)
}

func (handler *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.summary.monthly")
	defer span.End()

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "error, year NaN", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		http.Error(w, "error, month NaN", http.StatusBadRequest)
		return
	}

	monthly, err := handler.service.GetMonthlySummary(ctx, year, month)
	if errors.Is(err, ErrInvalidPeriod) {
		http.Error(w, "error, invalid month", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to get monthly summary for %d-%d: %s", year, month, err)
		http.Error(w, "failed to get monthly summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, monthly, http.StatusOK)
}

package datasync

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/pkg"
)

const maxImportBodyBytes = 10 << 20

type SyncCodeRequest struct {
	Code string `json:"code"`
}

type SyncCodeResponse struct {
	Code string `json:"code"`
}

type ShareableLinkResponse struct {
	Link string `json:"link"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.export")
	defer span.End()

	data, err := handler.service.Export(ctx)
	if err != nil {
		log.Errorf("failed to export data: %s", err)
		http.Error(w, "failed to export data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, ExportFileName(time.Now())))
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, data, http.StatusOK)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.import")
	defer span.End()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBodyBytes))
	if err != nil {
		http.Error(w, "failed to read import data", http.StatusBadRequest)
		return
	}

	writeImportResult(w, handler.service.Import(ctx, data))
}

func (handler *Handler) HandleGetSyncCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.code.get")
	defer span.End()

	code, err := handler.service.GenerateSyncCode(ctx)
	if err != nil {
		log.Errorf("failed to generate sync code: %s", err)
		http.Error(w, "failed to generate sync code", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, SyncCodeResponse{Code: code}, http.StatusOK)
}

func (handler *Handler) HandleImportSyncCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.code.import")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SyncCodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxImportBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid sync code request", http.StatusBadRequest)
		return
	}

	writeImportResult(w, handler.service.ImportFromSyncCode(ctx, req.Code))
}

// HandleShareableLink builds the link for the ?origin= query param, or the request's own origin.
func (handler *Handler) HandleShareableLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.link")
	defer span.End()

	origin := r.URL.Query().Get("origin")
	if origin == "" {
		origin = r.Header.Get("Origin")
	}
	if origin == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		origin = scheme + "://" + r.Host
	}

	link, err := handler.service.GenerateShareableLink(ctx, origin)
	if err != nil {
		log.Errorf("failed to generate shareable link: %s", err)
		http.Error(w, "failed to generate shareable link", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, ShareableLinkResponse{Link: link}, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.stats")
	defer span.End()

	stats, err := handler.service.GetDataStats(ctx)
	if err != nil {
		log.Errorf("failed to get data stats: %s", err)
		http.Error(w, "failed to get data stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, stats, http.StatusOK)
}

func writeImportResult(w http.ResponseWriter, result ImportResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	pkg.WriteJSON(w, result, status)
}

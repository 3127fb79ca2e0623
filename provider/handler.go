package provider

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/keystored/attestation-appid/interfaces"
	"github.com/keystored/attestation-appid/metrics"
)

// Handler serves the package-metadata lookup endpoint.
type Handler struct {
	source interfaces.PackageSource
	log    *slog.Logger
}

// NewHandler creates a handler backed by the given package source.
func NewHandler(source interfaces.PackageSource, log *slog.Logger) *Handler {
	return &Handler{
		source: source,
		log:    log,
	}
}

// RegisterRoutes configures the router with the provider endpoint:
//   - GET /api/provider/v1/appid/{uid} - package metadata for a UID
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/provider/v1/appid/{uid}", h.HandleAppID)
}

// HandleAppID looks up the packages registered for a UID.
//
// Response: JSON-encoded interfaces.KeyAttestationAppID.
//
// Status codes:
//   - 200 OK: metadata found
//   - 400 Bad Request: malformed UID
//   - 404 Not Found: no packages for the UID (ServiceError body)
//   - 500 Internal Server Error: lookup or encoding failure
func (h *Handler) HandleAppID(w http.ResponseWriter, r *http.Request) {
	uid, err := strconv.ParseUint(r.PathValue("uid"), 10, 32)
	if err != nil {
		h.log.Error("Invalid uid", "err", err, "uid", r.PathValue("uid"))
		metrics.CountLookup(metrics.LookupBadRequest)
		http.Error(w, "Invalid uid format", http.StatusBadRequest)
		return
	}

	appID, err := h.source.AppIDForUID(uint32(uid))
	if err != nil {
		if errors.Is(err, ErrUnknownUID) {
			h.log.Warn("Lookup for unregistered uid", "uid", uid)
			metrics.CountLookup(metrics.LookupUnknownUID)
			writeServiceError(w, http.StatusNotFound, ServiceError{
				Code:    ErrorCodeUnknownUID,
				Message: err.Error(),
			})
			return
		}

		h.log.Error("Package lookup failed", "err", err, "uid", uid)
		metrics.CountLookup(metrics.LookupError)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(appID); err != nil {
		h.log.Error("Failed to encode response", "err", err)
		metrics.CountLookup(metrics.LookupError)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	metrics.CountLookup(metrics.LookupOK)
}

func writeServiceError(w http.ResponseWriter, status int, svcErr ServiceError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(svcErr)
}

// Package handlers provides HTTP request handlers for the MedXchange API
// endpoints: brand-name autocomplete, brand resolution, and health checks,
// with dependency injection for the store, validator and resolver.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Prakhar-Bhagat/MedXchange/engine"
	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
	"github.com/Prakhar-Bhagat/MedXchange/logging"
	"github.com/Prakhar-Bhagat/MedXchange/metrics"
	"github.com/go-chi/chi/v5"
)

// brandSuggestionLimit caps autocomplete responses.
const brandSuggestionLimit = 10

// HTTPHandler holds the handler dependencies
type HTTPHandler struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	resolver      *engine.Resolver
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator,
	resolver *engine.Resolver, healthChecker interfaces.HealthChecker) *HTTPHandler {
	return &HTTPHandler{
		dataStore:     dataStore,
		validator:     validator,
		resolver:      resolver,
		healthChecker: healthChecker,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandler) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandler) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// SearchBrands returns up to ten distinct brand names matching the query
// prefix, for autocomplete. Always 200 with an array, empty if nothing
// matches.
func (h *HTTPHandler) SearchBrands(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	if query == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing search term")
		return
	}

	if err := h.validator.ValidateInput(query); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	names := h.dataStore.SearchBrandNames(query, brandSuggestionLimit)
	h.RespondWithJSON(w, http.StatusOK, names)
}

// ResolveBrand resolves a brand name to its composition and cheaper
// equivalents. An unresolved brand is a normal 200 response with
// found=false, not an error.
func (h *HTTPHandler) ResolveBrand(w http.ResponseWriter, r *http.Request) {
	brandName := chi.URLParam(r, "brandName")
	if brandName == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing brand name")
		return
	}

	if err := h.validator.ValidateInput(brandName); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.resolver.Resolve(brandName)
	metrics.BrandResolutionsTotal.WithLabelValues(resolutionOutcome(result)).Inc()

	h.RespondWithJSON(w, http.StatusOK, result)
}

// resolutionOutcome maps a result onto a bounded metrics label.
func resolutionOutcome(result engine.ResolutionResult) string {
	switch {
	case !result.Found:
		return "not_found"
	case result.Substitute != nil && result.GovMatch != nil:
		return "both"
	case result.Substitute != nil:
		return "substitute_only"
	case result.GovMatch != nil:
		return "generic_only"
	default:
		return "no_alternatives"
	}
}

// HealthCheck returns server health information
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	response := map[string]any{
		"status": status,
	}
	for key, value := range details {
		response[key] = value
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// Index returns a service banner for the root path
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "MedXchange API is running",
	})
}

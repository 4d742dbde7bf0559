package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evyataryagoni/ipdata/internal/ipstack"
	"github.com/evyataryagoni/ipdata/internal/models"
	"github.com/evyataryagoni/ipdata/internal/service"
	"github.com/evyataryagoni/ipdata/internal/store"
	"github.com/go-chi/chi/v5"
)

// Response messages. The provider message points callers at the manual-entry
// endpoint, which keeps working while the provider is down.
const (
	msgIPExists           = "IP already exists in the database"
	msgIPNotFound         = "IP not found in the database"
	msgServiceUnavailable = "Service is unavailable. Please try again later."
	msgProviderProblem    = "There is a problem with connection to the external service. Please try again later or try to use POST /ipdata/manual endpoint."
)

// IPDataHandler handles HTTP requests for ipdata records. It parses
// requests, calls the service, and renders JSON; no business logic here.
type IPDataHandler struct {
	service *service.IPDataService
}

// NewIPDataHandler creates a new handler with the given service.
func NewIPDataHandler(service *service.IPDataService) *IPDataHandler {
	return &IPDataHandler{
		service: service,
	}
}

// Create handles POST /v1/ipdata
// @Summary      Create IP data from provider lookup
// @Description  Resolve an IP address through the external geolocation provider and persist the result
// @Tags         IP Data
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateRequest  true  "IP address to resolve"
// @Success      200   {object}  models.IPDataResponse
// @Failure      400   {object}  models.ErrorResponse  "IP already exists or provider rejected the request"
// @Failure      422   {object}  models.ErrorResponse  "Malformed IP address"
// @Failure      502   {object}  models.ErrorResponse  "Provider unavailable"
// @Failure      503   {object}  models.ErrorResponse  "Datastore unavailable"
// @Router       /v1/ipdata [post]
func (h *IPDataHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	resp, err := h.service.CreateFromLookup(r.Context(), req.IP)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// CreateManual handles POST /v1/ipdata/manual
// @Summary      Create IP data manually
// @Description  Persist a caller-supplied geolocation record, bypassing the external provider
// @Tags         IP Data
// @Accept       json
// @Produce      json
// @Param        body  body      models.ManualCreateRequest  true  "Full IP data record"
// @Success      200   {object}  models.IPDataResponse
// @Failure      400   {object}  models.ErrorResponse  "IP already exists"
// @Failure      422   {object}  models.ErrorResponse  "Missing required fields or malformed IP"
// @Failure      503   {object}  models.ErrorResponse  "Datastore unavailable"
// @Router       /v1/ipdata/manual [post]
func (h *IPDataHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req models.ManualCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	resp, err := h.service.CreateManual(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Get handles GET /v1/ipdata/{ip}
// @Summary      Get IP data by address
// @Tags         IP Data
// @Produce      json
// @Param        ip   path      string  true  "IP address (IPv4 or IPv6)"  example(172.68.213.129)
// @Success      200  {object}  models.IPDataResponse
// @Failure      404  {object}  models.ErrorResponse  "IP not found"
// @Failure      422  {object}  models.ErrorResponse  "Malformed IP address"
// @Failure      503  {object}  models.ErrorResponse  "Datastore unavailable"
// @Router       /v1/ipdata/{ip} [get]
func (h *IPDataHandler) Get(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")

	resp, err := h.service.Get(r.Context(), ip)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /v1/ipdata/{ip}
// @Summary      Delete IP data by address
// @Description  Delete the record; its location row is removed too unless shared with another IP
// @Tags         IP Data
// @Produce      json
// @Param        ip   path      string  true  "IP address (IPv4 or IPv6)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  models.ErrorResponse  "IP not found"
// @Failure      422  {object}  models.ErrorResponse  "Malformed IP address"
// @Failure      503  {object}  models.ErrorResponse  "Datastore unavailable"
// @Router       /v1/ipdata/{ip} [delete]
func (h *IPDataHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")

	if err := h.service.Delete(r.Context(), ip); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondServiceError is the single mapping layer between the service's
// error taxonomy and HTTP statuses.
func (h *IPDataHandler) respondServiceError(w http.ResponseWriter, err error) {
	var apiErr *ipstack.APIError

	switch {
	case errors.Is(err, service.ErrInvalidIP):
		h.respondError(w, http.StatusUnprocessableEntity, service.ErrInvalidIP.Error())

	case errors.Is(err, service.ErrValidation):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, store.ErrIPExists):
		h.respondError(w, http.StatusBadRequest, msgIPExists)

	case errors.Is(err, store.ErrIPNotFound):
		h.respondError(w, http.StatusNotFound, msgIPNotFound)

	case errors.Is(err, store.ErrUnavailable):
		h.respondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)

	case errors.As(err, &apiErr):
		switch apiErr.Code {
		case ipstack.CodeInvalidAccessKey:
			h.respondError(w, http.StatusBadGateway, msgProviderProblem)
		case ipstack.CodeUsageLimitReached:
			h.respondError(w, http.StatusBadRequest, msgProviderProblem)
		case ipstack.CodeInvalidAddress:
			// The provider's own message is the most precise one here.
			h.respondError(w, http.StatusBadRequest, apiErr.Info)
		default:
			h.respondError(w, http.StatusBadGateway, msgProviderProblem)
		}

	default:
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON writes a JSON response with the given status code.
func (h *IPDataHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, the status code can't change since headers are already sent
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes an error response with consistent formatting.
func (h *IPDataHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}

package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_policy/internal/adapters/observability"
	"hotel_policy/internal/app"
	"hotel_policy/internal/domain"
)

type Handlers struct {
	Payments  *app.PaymentMethodService
	CxlPolicy *app.CancellationPolicyService
	Amenities *app.AmenityService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels/{hotelID}/payment-methods", h.listPaymentMethods)
	s.mux.Get("/v1/hotels/{hotelID}/cancellation-policy", h.getCancellationPolicy)
	s.mux.Get("/v1/hotels/{hotelID}/rate-plans/{code}/extras", h.listExtras)
}

func selectLang(al string) string {
	s := strings.ToLower(al)
	if strings.HasPrefix(s, "fr") {
		return "fr"
	}
	if strings.HasPrefix(s, "es") {
		return "es"
	}
	return "en"
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeResolutionError(w http.ResponseWriter, capability string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		observability.ObserveResolution(capability, "error")
		writeProblem(w, http.StatusBadRequest, "Invalid Range", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveResolution(capability, "absent")
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		observability.ObserveResolution(capability, "error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "resolution failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// stayQuery pulls the shared hotel/ratePlanCodes/fromDate/toDate inputs.
// fromDate/toDate are arrival-inclusive; callers with departure-exclusive
// semantics subtract one day before calling this API.
func stayQuery(r *http.Request) (hotelID int64, ratePlanCodes []string, fromDate, toDate string, err error) {
	hotelID, err = strconv.ParseInt(chi.URLParam(r, "hotelID"), 10, 64)
	if err != nil {
		return 0, nil, "", "", errors.New("hotelID must be a number")
	}
	if raw := r.URL.Query().Get("ratePlanCodes"); raw != "" {
		ratePlanCodes = strings.Split(raw, ",")
	}
	fromDate = r.URL.Query().Get("fromDate")
	toDate = r.URL.Query().Get("toDate")
	if fromDate == "" || toDate == "" {
		return 0, nil, "", "", errors.New("fromDate and toDate are required")
	}
	return hotelID, ratePlanCodes, fromDate, toDate, nil
}

func (h *Handlers) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	hotelID, codes, from, to, err := stayQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(codes) == 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "ratePlanCodes is required")
		return
	}
	resp, err := h.Payments.ListEligibleMethods(r.Context(), hotelID, codes, from, to)
	if err != nil {
		writeResolutionError(w, "payment_term", err)
		return
	}
	observability.ObserveResolution("payment_term", "ok")
	writeJSON(w, r, resp)
}

func (h *Handlers) getCancellationPolicy(w http.ResponseWriter, r *http.Request) {
	hotelID, codes, from, to, err := stayQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if len(codes) == 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "ratePlanCodes is required")
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = selectLang(r.Header.Get("Accept-Language"))
	}
	resp, err := h.CxlPolicy.ResolveMostBeneficial(r.Context(), hotelID, codes, from, to, lang)
	if err != nil {
		writeResolutionError(w, "cxl_policy", err)
		return
	}
	observability.ObserveResolution("cxl_policy", "ok")
	w.Header().Set("Content-Language", resp.Language)
	writeJSON(w, r, resp)
}

func (h *Handlers) listExtras(w http.ResponseWriter, r *http.Request) {
	hotelID, _, from, to, err := stayQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	code := chi.URLParam(r, "code")
	resp, err := h.Amenities.ListAmenities(r.Context(), hotelID, code, from, to)
	if err != nil {
		writeResolutionError(w, "extra_service", err)
		return
	}
	observability.ObserveResolution("extra_service", "ok")
	writeJSON(w, r, resp)
}

package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	deliveryservice "mercurio/contexts/commerce-operations/delivery-service"
	deliveryerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
	deliveryhttp "mercurio/contexts/commerce-operations/delivery-service/transport/http"
	onboardingservice "mercurio/contexts/identity-access/onboarding-service"
	onboardingerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
	onboardinghttp "mercurio/contexts/identity-access/onboarding-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "mercurio/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	onboarding onboardingservice.Module
	delivery   deliveryservice.Module
}

func New(
	onboarding onboardingservice.Module,
	delivery deliveryservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		onboarding: onboarding,
		delivery:   delivery,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /auth/signup", s.handleSignupClient)
	s.mux.HandleFunc("POST /auth/sellers", s.handleOnboardSeller)

	s.mux.HandleFunc("POST /delivery/routes/generate", s.handleGenerateRoutes)
	s.mux.HandleFunc("GET /delivery/shipments/{order_id}", s.handleGetShipment)
}

func (s *Server) handleSignupClient(w http.ResponseWriter, r *http.Request) {
	var req onboardinghttp.SignupClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOnboardingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.onboarding.Handler.SignupClientHandler(r.Context(), req)
	if err != nil {
		writeOnboardingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleOnboardSeller(w http.ResponseWriter, r *http.Request) {
	var req onboardinghttp.OnboardSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOnboardingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.onboarding.Handler.OnboardSellerHandler(r.Context(), req)
	if err != nil {
		writeOnboardingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGenerateRoutes(w http.ResponseWriter, r *http.Request) {
	var req deliveryhttp.GenerateRoutesRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDeliveryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}

	resp, err := s.delivery.Handler.GenerateRoutesHandler(r.Context(), req)
	if err != nil {
		writeDeliveryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("order_id")
	resp, err := s.delivery.Handler.GetShipmentHandler(r.Context(), orderID)
	if err != nil {
		writeDeliveryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeOnboardingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, onboardingerrors.ErrEmailTaken):
		writeOnboardingError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, onboardingerrors.ErrWeakPassword):
		writeOnboardingError(w, http.StatusBadRequest, "weak_password", err.Error())
	case errors.Is(err, onboardingerrors.ErrInvalidSignupRequest):
		writeOnboardingError(w, http.StatusBadRequest, "invalid_signup_request", err.Error())
	case errors.Is(err, onboardingerrors.ErrIdentityUnavailable):
		writeOnboardingError(w, http.StatusServiceUnavailable, "identity_unavailable", err.Error())
	case errors.Is(err, onboardingerrors.ErrRegistrationFailed):
		writeOnboardingError(w, http.StatusBadGateway, "registration_failed", err.Error())
	default:
		writeOnboardingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDeliveryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deliveryerrors.ErrShipmentNotFound):
		writeDeliveryError(w, http.StatusNotFound, "shipment_not_found", err.Error())
	case errors.Is(err, deliveryerrors.ErrNoVehicles):
		writeDeliveryError(w, http.StatusConflict, "no_vehicles_available", err.Error())
	case errors.Is(err, deliveryerrors.ErrNothingToPlan):
		writeDeliveryError(w, http.StatusConflict, "nothing_to_plan", err.Error())
	default:
		writeDeliveryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeOnboardingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, onboardinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeDeliveryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, deliveryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dan9191/customer360/internal/analytics"
	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/middleware"
	"github.com/Dan9191/customer360/internal/repository"
	"github.com/Dan9191/customer360/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validate
	log      *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, validate: validator.New(), log: log}
}

// NewRouter wires every endpoint. Everything under /api/v1 except registration and
// login requires a bearer token.
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	// Public routes
	api.HandleFunc("/auth", h.Register).Methods("POST")
	api.HandleFunc("/auth/token", h.Login).Methods("POST")

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.HandleFunc("/auth/me", h.Me).Methods("GET")
	protected.HandleFunc("/auth/logout", h.Logout).Methods("POST")

	protected.HandleFunc("/kpi/summary", h.Summary).Methods("GET")
	protected.HandleFunc("/kpi/delivery-rate", h.DeliveryRate).Methods("GET")
	protected.HandleFunc("/kpi/failed-message", h.FailedMessages).Methods("GET")
	protected.HandleFunc("/kpi/active-escalations", h.ActiveEscalations).Methods("GET")
	protected.HandleFunc("/kpi/csat-score", h.CSATScore).Methods("GET")
	protected.HandleFunc("/kpi/average-resolution", h.AverageResolution).Methods("GET")

	protected.HandleFunc("/channel-performance", h.ChannelPerformance).Methods("GET")
	protected.HandleFunc("/dashboard/delivery-status", h.DeliveryStatus).Methods("GET")
	protected.HandleFunc("/volume-trends", h.VolumeTrends).Methods("GET")
	protected.HandleFunc("/resolution-time-trend", h.ResolutionTrend).Methods("GET")
	protected.HandleFunc("/top-issues", h.TopIssues).Methods("GET")

	protected.HandleFunc("/customers", h.ListCustomers).Methods("GET")
	protected.HandleFunc("/customers/{customer_id}", h.CustomerByID).Methods("GET")
	protected.HandleFunc("/customers/{customer_id}/loans/{lan}/payment-behaviour", h.PaymentBehaviour).Methods("GET")
	protected.HandleFunc("/customer-details", h.CustomerDetails).Methods("GET")

	return r
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps service and calculation errors onto HTTP statuses
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.RequestIDFromContext(r.Context())

	var calcErr *analytics.CalculationError
	switch {
	case errors.As(err, &calcErr):
		writeMessage(w, http.StatusInternalServerError, calcErr.Error())
	case errors.Is(err, analytics.ErrInvalidPeriod),
		errors.Is(err, analytics.ErrInvalidSortKey),
		errors.Is(err, service.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeMessage(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, service.ErrEmployeeExists):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrLoanNotFound),
		errors.Is(err, repository.ErrEmployeeNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		h.log.WithField("request_id", requestID).Errorf("Unhandled error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage flattens validator errors into one readable line
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag()+" validation")
	}
	return strings.Join(parts, "; ")
}

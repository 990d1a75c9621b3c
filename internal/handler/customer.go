package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Dan9191/customer360/internal/service"
	"github.com/gorilla/mux"
)

// ListCustomers handles GET /customers?search=&limit=&offset=
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit", service.DefaultCustomerLimit)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := intParam(q, "offset", 0)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.ListCustomers(r.Context(), service.CustomerQuery{
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// CustomerByID handles GET /customers/{customer_id}
func (h *Handler) CustomerByID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.CustomerByID(r.Context(), mux.Vars(r)["customer_id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// PaymentBehaviour handles GET /customers/{customer_id}/loans/{lan}/payment-behaviour
func (h *Handler) PaymentBehaviour(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	result, err := h.svc.PaymentBehaviour(r.Context(), vars["customer_id"], vars["lan"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CustomerDetails handles GET /customer-details
func (h *Handler) CustomerDetails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	details, err := h.svc.CustomerDetails(r.Context(), service.DetailsQuery{
		CustomerID: q.Get("customer_id"),
		Name:       q.Get("name"),
		Mobile:     q.Get("mobile"),
		Email:      q.Get("email"),
		PAN:        q.Get("pan"),
		LANs:       q["lan"],
		FilterType: q.Get("filter_type"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}

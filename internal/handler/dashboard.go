package handler

import (
	"net/http"

	"github.com/Dan9191/customer360/internal/models"
)

// Summary returns every KPI tile for today
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	h.tile(w, r, func(s models.TodaySummary) interface{} { return s })
}

// DeliveryRate returns today's delivery rate percentage
func (h *Handler) DeliveryRate(w http.ResponseWriter, r *http.Request) {
	h.tile(w, r, func(s models.TodaySummary) interface{} { return s.DeliveryRate })
}

// FailedMessages returns today's failed message count
func (h *Handler) FailedMessages(w http.ResponseWriter, r *http.Request) {
	h.tile(w, r, func(s models.TodaySummary) interface{} { return s.FailedMessages })
}

// ActiveEscalations returns today's unresolved escalations
func (h *Handler) ActiveEscalations(w http.ResponseWriter, r *http.Request) {
	h.tile(w, r, func(s models.TodaySummary) interface{} { return s.ActiveEscalations })
}

// CSATScore returns today's mean CSAT score
func (h *Handler) CSATScore(w http.ResponseWriter, r *http.Request) {
	h.tile(w, r, func(s models.TodaySummary) interface{} { return s.CSATScore })
}

// AverageResolution returns today's mean resolution time in seconds
func (h *Handler) AverageResolution(w http.ResponseWriter, r *http.Request) {
	h.tile(w, r, func(s models.TodaySummary) interface{} { return s.AvgResolutionTime })
}

func (h *Handler) tile(w http.ResponseWriter, r *http.Request, pick func(models.TodaySummary) interface{}) {
	summary, err := h.svc.TodaySummary(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pick(summary))
}

// ChannelPerformance handles GET /channel-performance?sort_by=volume|delivery_rate
func (h *Handler) ChannelPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.svc.ChannelPerformance(r.Context(), r.URL.Query().Get("sort_by"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

// DeliveryStatus handles GET /dashboard/delivery-status
func (h *Handler) DeliveryStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.DeliveryStatus(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// VolumeTrends handles GET /volume-trends?period=&channels=
func (h *Handler) VolumeTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trends, err := h.svc.VolumeTrends(r.Context(), q.Get("period"), q["channels"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

// ResolutionTrend handles GET /resolution-time-trend?timeline=&channel=
func (h *Handler) ResolutionTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trend, err := h.svc.ResolutionTrend(r.Context(), q.Get("timeline"), q.Get("channel"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

// TopIssues handles GET /top-issues
func (h *Handler) TopIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := h.svc.TopIssues(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

package handlers

import "net/http"

// HandleAnalyticsSummary serves GET /api/analytics
func (h *Handler) HandleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.facade.AnalyticsSummary(r.Context())
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: report})
}

// HandleAnalyticsPerformance serves GET /api/analytics/performance?start=&end=
func (h *Handler) HandleAnalyticsPerformance(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "start and end query parameters are required"})
		return
	}

	report, err := h.facade.AnalyticsPerformance(r.Context(), start, end)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: report})
}

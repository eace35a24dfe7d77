package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/entryline/visitdesk/internal/http/response"
)

func (h *Handlers) DailyReport(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	rows, err := h.reportService.Daily(r.Context(), days)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, rows, "")
}

func (h *Handlers) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	weeks, _ := strconv.Atoi(r.URL.Query().Get("weeks"))

	rows, err := h.reportService.Weekly(r.Context(), weeks)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, rows, "")
}

func (h *Handlers) AccessSummaryReport(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(w, "Invalid from parameter")
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(w, "Invalid to parameter")
			return
		}
		to = parsed
	}

	rows, err := h.reportService.AccessSummary(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, rows, "")
}

func (h *Handlers) FrequentVisitorsReport(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.reportService.FrequentVisitors(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, rows, "")
}

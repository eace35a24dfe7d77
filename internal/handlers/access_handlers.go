package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/http/response"
)

// CheckAccess evaluates an access attempt against a visit. A denial is
// a successful response with accessGranted=false, not an error.
func (h *Handlers) CheckAccess(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid visit id")
		return
	}

	var req struct {
		Department string `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	decision, err := h.accessService.CheckAccess(r.Context(), id, req.Department)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, decision, "")
}

type accessLogPage struct {
	AccessLogs []domain.AccessLogEntry `json:"accessLogs"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	HasMore    bool                    `json:"hasMore"`
}

// ListAccessLogs returns the audit trail for a visit, newest first.
func (h *Handlers) ListAccessLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid visit id")
		return
	}

	page, limit := parsePageLimit(r)

	entries, hasMore, err := h.accessService.ListAccessLogs(r.Context(), id, page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.AccessLogEntry{}
	}

	response.OK(w, accessLogPage{
		AccessLogs: entries,
		Page:       page,
		Limit:      limit,
		HasMore:    hasMore,
	}, "")
}

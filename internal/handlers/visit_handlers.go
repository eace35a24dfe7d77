package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/http/response"
)

// RegisterVisit handles front-desk check-in: visitor upsert plus a new
// active visit.
func (h *Handlers) RegisterVisit(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterVisitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	result, err := h.registrationService.RegisterVisit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Created(w, result, "Visit registered successfully")
}

func (h *Handlers) GetVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid visit id")
		return
	}

	visit, err := h.visitService.GetVisit(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, visit, "")
}

func (h *Handlers) ListVisits(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var statusPtr *domain.VisitStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, ok := domain.ParseVisitStatus(raw)
		if !ok {
			response.BadRequest(w, "Invalid status parameter")
			return
		}
		statusPtr = &st
	}

	visits, err := h.visitService.ListVisits(r.Context(), limit, offset, statusPtr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, visits, "")
}

// CheckOutVisit performs the one-shot active -> completed transition.
func (h *Handlers) CheckOutVisit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid visit id")
		return
	}

	visit, err := h.visitService.CheckOut(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, visit, "Visit checked out successfully")
}

func (h *Handlers) UpdateStickerStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid visit id")
		return
	}

	var req struct {
		Printed bool `json:"printed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	visit, err := h.visitService.UpdateStickerStatus(r.Context(), id, req.Printed)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, visit, "Sticker status updated")
}

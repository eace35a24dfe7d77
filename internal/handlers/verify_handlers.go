package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/entryline/visitdesk/internal/http/response"
)

// VerifyPass resolves a scanned QR badge token to its visit, so the
// badge can be validated from a phone without front-desk credentials.
func (h *Handlers) VerifyPass(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	verification, err := h.visitService.VerifyPass(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, verification, "")
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/http/response"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	res, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.OK(w, res, "Logged in successfully")
}

// CreateUser is admin-only; the router enforces the role.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.authService.CreateUser(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Created(w, user, "User created successfully")
}

package handlers

import (
	"encoding/json"
	"net/http"

	"autoClassifieds/internal/service"
)

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req CheckEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		badRequest(w, "invalid email")
		return
	}

	exists, err := h.AuthService.CheckEmail(r.Context(), req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, CheckEmailResponse{Exists: exists}, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		badRequest(w, "email and password are required")
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

// Me returns the account of the authenticated caller.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.AuthService.CurrentAccount(r.Context(), service.IdentityFromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, account, http.StatusOK)
}

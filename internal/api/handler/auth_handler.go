package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"stateless_auth/internal/app/service"
	"stateless_auth/internal/common"

	"github.com/go-chi/chi/v5"
)

// unknownCredentials is the single message for both a missing account and a
// wrong password hash, so responses cannot enumerate usernames.
const unknownCredentials = "unknown username and password"

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/salt/{username}", h.getSalt)
	r.Post("/login", h.login)
}

func (h *AuthHandler) getSalt(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	resp, err := h.authService.GetSalt(r.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, unknownCredentials)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ErrInternalServer.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, unknownCredentials)
		case errors.Is(err, common.ErrBadRequest):
			common.RespondWithError(w, http.StatusBadRequest, common.ErrBadRequest.Error())
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), common.ErrInternalServer.Error())
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

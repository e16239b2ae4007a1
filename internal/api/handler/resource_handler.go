package handler

import (
	"net/http"

	"stateless_auth/internal/api/middleware"
	"stateless_auth/internal/common"
	"stateless_auth/internal/common/security"
	"stateless_auth/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// ResourceHandler exposes the protected sample resources. Each route
// declares its required role set statically; the RestrictAccess guard runs
// before the handler.
type ResourceHandler struct {
	codec *security.TokenCodec
}

func NewResourceHandler(codec *security.TokenCodec) *ResourceHandler {
	return &ResourceHandler{codec: codec}
}

func (h *ResourceHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RestrictAccess(h.codec, model.RoleUser)).Get("/limited", h.limited)
	r.With(middleware.RestrictAccess(h.codec, model.RoleAdministrator)).Get("/admin", h.admin)
}

func (h *ResourceHandler) limited(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Welcome"})
}

func (h *ResourceHandler) admin(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Welcome"})
}

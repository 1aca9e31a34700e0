package handler

import (
	"net/http"

	"beautify/internal/auth"
	"beautify/internal/users/service"
	apperrors "beautify/pkg/errors"
	httputil "beautify/pkg/http"
	"beautify/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// adminSegment is the first path segment of the role routes,
// /user/admin/:email. httprouter cannot register it beside /user/:email, so
// those routes are matched as /user/:email/:target and dispatched here.
const adminSegment = "admin"

type UserHandler struct {
	service service.UserService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, gate *auth.Gate, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/user", h.gate.Authenticated(h.List))
	router.PUT("/user/:email", h.Upsert)
	router.DELETE("/user/:email", h.gate.Admin(h.Remove))
	router.PUT("/user/:email/:target", h.roleRoute(h.gate.Admin(h.Promote)))
	router.GET("/user/:email/:target", h.roleRoute(h.gate.Authenticated(h.CheckAdmin)))
}

func (h *UserHandler) roleRoute(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if ps.ByName("email") != adminSegment {
			h.writeError(w, "roleRoute", apperrors.NotFound("Route"))
			return
		}
		next(w, r, ps)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

// Upsert stores the request body as the user's profile and returns a fresh
// credential alongside the upsert result.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var profile map[string]any
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &profile); err != nil {
			h.writeError(w, "Upsert", err)
			return
		}
	}

	resp, err := h.service.Upsert(r.Context(), ps.ByName("email"), profile)
	if err != nil {
		h.writeError(w, "Upsert", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")
	if err := h.service.Remove(r.Context(), email); err != nil {
		h.writeError(w, "Remove", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"email": email, "deleted": true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Remove", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("target")
	if err := h.service.Promote(r.Context(), email); err != nil {
		h.writeError(w, "Promote", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"email": email, "role": "admin"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Promote", "operation", "WriteSuccess", "error", err)
	}
}

// CheckAdmin answers for the requester's own credential; the email in the
// path is accepted but not consulted.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	isAdmin, err := h.service.IsAdmin(r.Context(), identity.Email)
	if err != nil {
		h.writeError(w, "CheckAdmin", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]bool{"admin": isAdmin}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAdmin", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

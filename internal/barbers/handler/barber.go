package handler

import (
	"net/http"

	"beautify/internal/auth"
	"beautify/internal/barbers/service"
	httputil "beautify/pkg/http"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BarberHandler struct {
	service service.BarberService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewBarberHandler(service service.BarberService, gate *auth.Gate, log *logger.Logger) *BarberHandler {
	return &BarberHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

// RegisterRoutes registers the roster routes. Every route is admin-only.
func (h *BarberHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/barber", h.gate.Admin(h.Add))
	router.GET("/barber", h.gate.Admin(h.List))
	router.DELETE("/barber/:email", h.gate.Admin(h.Remove))
}

func (h *BarberHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var barber model.Barber
	if err := httputil.DecodeJSON(r, &barber); err != nil {
		h.writeError(w, "Add", err)
		return
	}

	if err := h.service.Add(r.Context(), &barber); err != nil {
		h.writeError(w, "Add", err)
		return
	}

	if err := httputil.WriteCreated(w, &barber); err != nil {
		h.log.Error("failed to write success response", "handler", "Add", "operation", "WriteCreated", "error", err)
	}
}

func (h *BarberHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	barbers, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, barbers); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BarberHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")
	if err := h.service.Remove(r.Context(), email); err != nil {
		h.writeError(w, "Remove", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"email": email, "deleted": true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Remove", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BarberHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

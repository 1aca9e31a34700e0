package handler

import (
	"net/http"

	"beautify/internal/auth"
	"beautify/internal/bookings/service"
	apperrors "beautify/pkg/errors"
	httputil "beautify/pkg/http"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Literal second segments under /booking. httprouter does not allow
// /booking/review/:id beside /booking/:id, so both shapes are registered as
// /booking/:id/:ref and dispatched on the first segment.
const (
	reviewSegment = "review"
	emailSegment  = "email"
)

type BookingHandler struct {
	service service.BookingService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, gate *auth.Gate, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

// RegisterRoutes registers the booking routes. PATCH /booking/:id belongs to
// the payments handler.
func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/booking", h.gate.Authenticated(h.ListByPatient))
	router.POST("/booking", h.Create)
	router.GET("/booking/:id", h.Get)
	router.GET("/booking/:id/:ref", h.getNested)
	router.PATCH("/booking/:id/:ref", h.patchNested)
}

func (h *BookingHandler) getNested(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case reviewSegment:
		h.Get(w, r, httprouter.Params{{Key: "id", Value: ps.ByName("ref")}})
	case emailSegment:
		h.ListByEmail(w, r, ps)
	default:
		h.writeError(w, "getNested", apperrors.NotFound("Route"))
	}
}

func (h *BookingHandler) patchNested(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") != reviewSegment {
		h.writeError(w, "patchNested", apperrors.NotFound("Route"))
		return
	}
	h.gate.Authenticated(h.SetReview)(w, r, httprouter.Params{{Key: "id", Value: ps.ByName("ref")}})
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, &booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

// ListByPatient lists the bookings of ?patient=, which must be the caller.
func (h *BookingHandler) ListByPatient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	patient := r.URL.Query().Get("patient")
	identity, _ := auth.IdentityFromContext(r.Context())
	if err := auth.RequireSelf(identity, patient); err != nil {
		h.writeError(w, "ListByPatient", err)
		return
	}

	h.writeList(w, r, "ListByPatient", patient)
}

// ListByEmail lists the bookings of the email in the path without
// authentication.
func (h *BookingHandler) ListByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.writeList(w, r, "ListByEmail", ps.ByName("ref"))
}

func (h *BookingHandler) writeList(w http.ResponseWriter, r *http.Request, handler, email string) {
	bookings, err := h.service.ListByPatient(r.Context(), email)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) SetReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.ReviewUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "SetReview", err)
		return
	}

	id := ps.ByName("id")
	if err := h.service.SetReview(r.Context(), id, update.Review); err != nil {
		h.writeError(w, "SetReview", err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"id": id, "review": update.Review}); err != nil {
		h.log.Error("failed to write success response", "handler", "SetReview", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

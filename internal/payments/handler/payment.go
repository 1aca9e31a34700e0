package handler

import (
	"net/http"

	"beautify/internal/auth"
	"beautify/internal/payments/service"
	httputil "beautify/pkg/http"
	"beautify/pkg/logger"
	"beautify/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	gate    *auth.Gate
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, gate *auth.Gate, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/create-payment-intent", h.gate.Authenticated(h.CreateIntent))
	router.PATCH("/booking/:id", h.Confirm)
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PaymentIntentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "CreateIntent", err)
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CreateIntent", err)
		return
	}

	if err := httputil.WriteSuccess(w, intent); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateIntent", "operation", "WriteSuccess", "error", err)
	}
}

// Confirm records an externally processed payment for the booking in the
// path. The body is stored verbatim and must carry transactionId.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload map[string]any
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		h.writeError(w, "Confirm", err)
		return
	}

	id := ps.ByName("id")
	payment, err := h.service.ConfirmPayment(r.Context(), id, payload)
	if err != nil {
		h.writeError(w, "Confirm", err)
		return
	}

	resp := map[string]any{
		"bookingId":     id,
		"paymentId":     payment.ID,
		"transactionId": payment.TransactionID,
		"paid":          true,
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Confirm", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

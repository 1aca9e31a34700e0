package handler

import (
	"net/http"

	"beautify/internal/catalog/service"
	httputil "beautify/pkg/http"
	"beautify/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/service", h.ListNames)
}

func (h *CatalogHandler) ListNames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	services, err := h.service.ListNames(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListNames", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, services); err != nil {
		h.log.Error("failed to write success response", "handler", "ListNames", "operation", "WriteSuccess", "error", err)
	}
}

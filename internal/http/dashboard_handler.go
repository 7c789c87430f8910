package http

import (
	"net/http"
)

type dashboardHandler struct {
	svc *Service
	inv InventoryService
}

func newDashboardHandler(svc *Service, inv InventoryService) *dashboardHandler {
	return &dashboardHandler{svc: svc, inv: inv}
}

func (h *dashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	h.svc.respondJSON(w, r, http.StatusOK, h.inv.Stats())
}

package http

import (
	"net/http"

	"github.com/ihirwe/stockroom/internal/model"
)

type historyHandler struct {
	svc *Service
	inv InventoryService
}

func newHistoryHandler(svc *Service, inv InventoryService) *historyHandler {
	return &historyHandler{svc: svc, inv: inv}
}

func (h *historyHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.inv.History(r.Context())
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respondJSON(w, r, http.StatusOK, map[string][]model.HistoryEntry{
		"entries": entries,
	})
}

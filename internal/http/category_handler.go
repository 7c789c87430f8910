package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ihirwe/stockroom/internal/apperr"
)

type categoryHandler struct {
	svc *Service
	inv InventoryService
}

func newCategoryHandler(svc *Service, inv InventoryService) *categoryHandler {
	return &categoryHandler{svc: svc, inv: inv}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *categoryHandler) list(w http.ResponseWriter, r *http.Request) {
	h.svc.respondJSON(w, r, http.StatusOK, map[string][]string{
		"categories": h.inv.Categories(),
	})
}

func (h *categoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := h.svc.decodeJSON(r, &req); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	if err := h.inv.AddCategory(r.Context(), req.Name); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respondJSON(w, r, http.StatusCreated, categoryRequest{Name: req.Name})
}

func (h *categoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		h.svc.respondError(w, r, apperr.ValidationErr.WithMsg("invalid category name"))
		return
	}

	if err := h.inv.DeleteCategory(r.Context(), name); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

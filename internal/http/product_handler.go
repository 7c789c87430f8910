package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ihirwe/stockroom/internal/apperr"
	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/model"
)

type productHandler struct {
	svc *Service
	inv InventoryService
}

func newProductHandler(svc *Service, inv InventoryService) *productHandler {
	return &productHandler{svc: svc, inv: inv}
}

type productRequest struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
}

type productListResponse struct {
	Products []model.Product `json:"products"`
	Loading  bool            `json:"loading"`
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	h.svc.respondJSON(w, r, http.StatusOK, productListResponse{
		Products: h.inv.Products(),
		Loading:  h.inv.Loading(),
	})
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := h.svc.decodeJSON(r, &req); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	product, err := h.inv.AddProduct(r.Context(), inventory.ProductParams{
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    req.Price,
	})
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respondJSON(w, r, http.StatusCreated, product)
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	var req productRequest
	if err := h.svc.decodeJSON(r, &req); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	product := model.Product{
		ID:       id,
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    req.Price,
	}
	if err := h.inv.UpdateProduct(r.Context(), product); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respondJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	if err := h.inv.DeleteProduct(r.Context(), id); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *productHandler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.inv.Fetch(r.Context()); err != nil {
		h.svc.respondError(w, r, err)
		return
	}

	h.svc.respondJSON(w, r, http.StatusOK, productListResponse{
		Products: h.inv.Products(),
		Loading:  h.inv.Loading(),
	})
}

func (h *productHandler) export(w http.ResponseWriter, r *http.Request) {
	csv := h.inv.ExportCSV()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", inventory.ExportFilename))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(csv)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.ValidationErr.WithMsg("invalid product id").WrapParent(err)
	}
	return id, nil
}

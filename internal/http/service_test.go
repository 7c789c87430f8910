package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihirwe/stockroom/internal/apperr"
	"github.com/ihirwe/stockroom/internal/config"
	internalhttp "github.com/ihirwe/stockroom/internal/http"
	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/pkg/ptr"
)

// fakeInventory satisfies InventoryService with canned state and errors.
type fakeInventory struct {
	products   []model.Product
	categories []string
	entries    []model.HistoryEntry
	loading    bool

	fetchErr          error
	addErr            error
	updateErr         error
	deleteErr         error
	addCategoryErr    error
	deleteCategoryErr error
	historyErr        error

	deletedID uuid.UUID
}

func (f *fakeInventory) Fetch(context.Context) error { return f.fetchErr }

func (f *fakeInventory) AddProduct(_ context.Context, params inventory.ProductParams) (model.Product, error) {
	if f.addErr != nil {
		return model.Product{}, f.addErr
	}
	product := model.Product{
		ID:       uuid.New(),
		Name:     params.Name,
		Category: params.Category,
		Stock:    params.Stock,
		Price:    params.Price,
	}
	f.products = append(f.products, product)
	return product, nil
}

func (f *fakeInventory) UpdateProduct(context.Context, model.Product) error { return f.updateErr }

func (f *fakeInventory) DeleteProduct(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeInventory) AddCategory(context.Context, string) error    { return f.addCategoryErr }
func (f *fakeInventory) DeleteCategory(context.Context, string) error { return f.deleteCategoryErr }

func (f *fakeInventory) History(context.Context) ([]model.HistoryEntry, error) {
	return f.entries, f.historyErr
}

func (f *fakeInventory) Products() []model.Product { return f.products }
func (f *fakeInventory) Categories() []string      { return f.categories }
func (f *fakeInventory) Loading() bool             { return f.loading }

func (f *fakeInventory) Stats() inventory.Stats { return inventory.ComputeStats(f.products) }
func (f *fakeInventory) ExportCSV() []byte      { return inventory.ExportCSV(f.products) }

func newTestRouter(t *testing.T, inv internalhttp.InventoryService) chi.Router {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	svc := internalhttp.New(config.HTTP{}, logger, inv, nil, prometheus.NewRegistry())

	r := chi.NewRouter()
	svc.RegisterHandlers(r)
	return r
}

func TestProductEndpoints(t *testing.T) {
	t.Run("Should list the current product mirror", func(t *testing.T) {
		inv := &fakeInventory{
			products: []model.Product{
				{ID: uuid.New(), Name: "Widget", Category: ptr.New("Tools"), Stock: 3, Price: 1000},
			},
		}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/products", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusOK, resp.Code)

		var body struct {
			Products []model.Product `json:"products"`
			Loading  bool            `json:"loading"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.Len(t, body.Products, 1)
		assert.Equal(t, "Widget", body.Products[0].Name)
		assert.False(t, body.Loading)
	})

	t.Run("Should create a product", func(t *testing.T) {
		inv := &fakeInventory{}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products",
			strings.NewReader(`{"name":"Widget","category":"Tools","stock":3,"price":1000}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusCreated, resp.Code)

		var product model.Product
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &product))
		assert.Equal(t, "Widget", product.Name)
		assert.NotEqual(t, uuid.Nil, product.ID)
	})

	t.Run("Should map validation failures to 400", func(t *testing.T) {
		inv := &fakeInventory{addErr: apperr.ValidationErr}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products",
			strings.NewReader(`{"name":"","stock":-1,"price":1}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.ValidationErrorCode)
	})

	t.Run("Should reject a malformed body without calling the service", func(t *testing.T) {
		inv := &fakeInventory{}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/products",
			strings.NewReader(`{"name":`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusBadRequest, resp.Code)
		assert.Empty(t, inv.products)
	})

	t.Run("Should delete by id", func(t *testing.T) {
		inv := &fakeInventory{}
		r := newTestRouter(t, inv)
		id := uuid.New()

		req := httptest.NewRequest(nethttp.MethodDelete, "/api/v1/products/"+id.String(), nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusNoContent, resp.Code)
		assert.Equal(t, id, inv.deletedID)
	})

	t.Run("Should reject a malformed id", func(t *testing.T) {
		r := newTestRouter(t, &fakeInventory{})

		req := httptest.NewRequest(nethttp.MethodDelete, "/api/v1/products/not-a-uuid", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusBadRequest, resp.Code)
	})

	t.Run("Should map a missing product to 404", func(t *testing.T) {
		inv := &fakeInventory{updateErr: apperr.ProductNotFoundErr}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodPut, "/api/v1/products/"+uuid.NewString(),
			strings.NewReader(`{"name":"Widget","stock":1,"price":1}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusNotFound, resp.Code)
	})

	t.Run("Should serve the CSV export as a download", func(t *testing.T) {
		inv := &fakeInventory{
			products: []model.Product{
				{ID: uuid.New(), Name: "Widget", Category: ptr.New("Tools"), Stock: 3, Price: 1000},
			},
		}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/products/export", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusOK, resp.Code)
		assert.Contains(t, resp.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, resp.Header().Get("Content-Disposition"), inventory.ExportFilename)
		assert.Contains(t, resp.Body.String(), "Name,Category,Price (RWF),Stock")
		assert.Contains(t, resp.Body.String(), "Widget,Tools,1,000,3")
	})
}

func TestCategoryEndpoints(t *testing.T) {
	t.Run("Should list categories", func(t *testing.T) {
		inv := &fakeInventory{categories: []string{"Tools", "Office"}}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/categories", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusOK, resp.Code)
		assert.JSONEq(t, `{"categories":["Tools","Office"]}`, resp.Body.String())
	})

	t.Run("Should map a category conflict to 409", func(t *testing.T) {
		inv := &fakeInventory{addCategoryErr: apperr.CategoryExistsErr}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/categories",
			strings.NewReader(`{"name":"Tools"}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.CategoryExistsCode)
	})

	t.Run("Should map an in-use category to 409", func(t *testing.T) {
		inv := &fakeInventory{deleteCategoryErr: apperr.CategoryInUseErr}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodDelete, "/api/v1/categories/Tools", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusConflict, resp.Code)
	})
}

func TestHistoryAndStatsEndpoints(t *testing.T) {
	t.Run("Should list history entries", func(t *testing.T) {
		inv := &fakeInventory{
			entries: []model.HistoryEntry{
				{ID: uuid.New(), ItemID: uuid.New(), Action: model.ActionAdded, ProductName: "Widget", Quantity: 3},
			},
		}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/history", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"product_name":"Widget"`)
	})

	t.Run("Should map a store failure to 502", func(t *testing.T) {
		inv := &fakeInventory{historyErr: apperr.StoreErr}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/history", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusBadGateway, resp.Code)
	})

	t.Run("Should compute stats from the product mirror", func(t *testing.T) {
		inv := &fakeInventory{
			products: []model.Product{
				{Name: "A", Price: 100, Stock: 2},
				{Name: "B", Price: 50, Stock: 1},
			},
		}
		r := newTestRouter(t, inv)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/stats", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, nethttp.StatusOK, resp.Code)

		var stats inventory.Stats
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
		assert.Equal(t, 2, stats.TotalProducts)
		assert.Equal(t, float64(250), stats.TotalValue)
		assert.Equal(t, 2, stats.LowStockCount)
		assert.Zero(t, stats.RecentOrders)
	})
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, &fakeInventory{})

	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, nethttp.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

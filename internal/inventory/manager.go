package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ihirwe/stockroom/internal/apperr"
	"github.com/ihirwe/stockroom/internal/event"
	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/internal/notify"
	"github.com/ihirwe/stockroom/internal/repository"
	"github.com/ihirwe/stockroom/pkg/validator"
)

// ProductParams carries validated input for creating or replacing a product.
type ProductParams struct {
	Name     string `validate:"required"`
	Category *string
	Stock    int     `validate:"gte=0"`
	Price    float64 `validate:"gte=0"`
}

// Manager owns the in-memory mirror of the product list and the category set
// and mediates every read and write against the store. Local state mutates
// only after the corresponding store call succeeds, so the mirror never runs
// ahead of the store.
//
// Mutating operations are serialized by an operation mutex held across the
// store round trip, which closes the rapid double-submit race. Fetch results
// are dropped when a mutation lands while the fetch is in flight.
type Manager struct {
	logger    *slog.Logger
	notifier  notify.Notifier
	validate  validator.Validator
	products  repository.ProductRepository
	history   repository.HistoryRepository
	publisher event.Publisher // nil when event publishing is disabled

	opMu sync.Mutex

	mu         sync.RWMutex
	items      []model.Product
	categories []string
	loading    bool
	gen        uint64
}

func NewManager(
	logger *slog.Logger,
	notifier notify.Notifier,
	validate validator.Validator,
	products repository.ProductRepository,
	history repository.HistoryRepository,
	publisher event.Publisher,
) *Manager {
	return &Manager{
		logger:     logger.With(slog.String("service", "inventory")),
		notifier:   notifier,
		validate:   validate,
		products:   products,
		history:    history,
		publisher:  publisher,
		items:      []model.Product{},
		categories: []string{},
		loading:    true,
	}
}

// Fetch loads all products from the store and recomputes the derived category
// set. Prior state is left untouched on failure. The loading flag clears when
// the first fetch finishes, successful or not.
func (m *Manager) Fetch(ctx context.Context) error {
	m.mu.RLock()
	gen := m.gen
	m.mu.RUnlock()

	defer m.markLoaded()

	items, err := m.products.ListAll(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to load products", slog.Any("error", err))
		m.notifier.Notify(ctx, notify.Notification{
			Title:       "Failed to load products",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})
		return apperr.StoreErr.WithMsg("failed to load products").WrapParent(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != gen {
		// A write landed while the fetch was in flight; applying this
		// response would overwrite newer state.
		m.logger.WarnContext(ctx, "discarding stale fetch result")
		return nil
	}

	m.items = items
	m.categories = DeriveCategories(items, m.categories)
	return nil
}

// AddProduct validates the input locally, generates the product id, inserts
// the row and appends a best-effort history entry. Invalid input never
// reaches the store.
func (m *Manager) AddProduct(ctx context.Context, params ProductParams) (model.Product, error) {
	if err := m.validateParams(ctx, params); err != nil {
		return model.Product{}, err
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	product := model.Product{
		ID:       id,
		Name:     params.Name,
		Category: normalizeCategory(params.Category),
		Stock:    params.Stock,
		Price:    params.Price,
	}

	if err := m.products.Create(ctx, product); err != nil {
		m.notifyStoreFailure(ctx, "Failed to add product", err)
		return model.Product{}, apperr.StoreErr.WithMsg("failed to add product").WrapParent(err)
	}

	m.recordChange(ctx, product, model.ActionAdded)

	m.mu.Lock()
	m.items = append(m.items, product)
	if product.Category != nil && !slices.Contains(m.categories, *product.Category) {
		m.categories = append(m.categories, *product.Category)
	}
	m.gen++
	m.mu.Unlock()

	m.notifier.Notify(ctx, notify.Notification{
		Title:       "Product added",
		Description: "The new product has been added to inventory.",
	})
	return product, nil
}

// UpdateProduct replaces the stored product by id and mirrors the change
// locally. Validation matches AddProduct.
func (m *Manager) UpdateProduct(ctx context.Context, product model.Product) error {
	params := ProductParams{
		Name:     product.Name,
		Category: product.Category,
		Stock:    product.Stock,
		Price:    product.Price,
	}
	if err := m.validateParams(ctx, params); err != nil {
		return err
	}
	product.Category = normalizeCategory(product.Category)

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			m.notifyStoreFailure(ctx, "Failed to update product", err)
			return apperr.ProductNotFoundErr.WrapParent(err)
		}
		m.notifyStoreFailure(ctx, "Failed to update product", err)
		return apperr.StoreErr.WithMsg("failed to update product").WrapParent(err)
	}

	m.recordChange(ctx, product, model.ActionUpdated)

	m.mu.Lock()
	for i := range m.items {
		if m.items[i].ID == product.ID {
			m.items[i] = product
			break
		}
	}
	if product.Category != nil && !slices.Contains(m.categories, *product.Category) {
		m.categories = append(m.categories, *product.Category)
	}
	m.gen++
	m.mu.Unlock()

	m.notifier.Notify(ctx, notify.Notification{
		Title:       "Product updated",
		Description: "The product details have been updated.",
	})
	return nil
}

// DeleteProduct removes the history entries for the product first and only
// then the product row. If the history cleanup fails the product row is left
// alone, so history rows can never outlive a missing product.
func (m *Manager) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.history.DeleteByItemID(ctx, id); err != nil {
		m.notifyStoreFailure(ctx, "Failed to delete product", err)
		return apperr.StoreErr.WithMsg("failed to delete product history").WrapParent(err)
	}

	if err := m.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			m.notifyStoreFailure(ctx, "Failed to delete product", err)
			return apperr.ProductNotFoundErr.WrapParent(err)
		}
		m.notifyStoreFailure(ctx, "Failed to delete product", err)
		return apperr.StoreErr.WithMsg("failed to delete product").WrapParent(err)
	}

	m.mu.Lock()
	var deleted model.Product
	m.items = slices.DeleteFunc(m.items, func(p model.Product) bool {
		if p.ID == id {
			deleted = p
			return true
		}
		return false
	})
	m.gen++
	m.mu.Unlock()

	m.publishChange(ctx, deleted, model.ActionDeleted)

	m.notifier.Notify(ctx, notify.Notification{
		Title:       "Product deleted",
		Description: "The product and its history have been removed.",
	})
	return nil
}

// AddCategory declares a category locally so it can exist before any product
// uses it. Categories are not a stored entity.
func (m *Manager) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		m.notifier.Notify(ctx, notify.Notification{
			Title:       "Invalid category",
			Description: "Category name must not be empty.",
			Variant:     notify.VariantDestructive,
		})
		return apperr.ValidationErr.WithMsg("category name must not be empty")
	}

	m.mu.Lock()
	if slices.Contains(m.categories, name) {
		m.mu.Unlock()
		m.notifier.Notify(ctx, notify.Notification{
			Title:       "Category exists",
			Description: "This category already exists in the list.",
			Variant:     notify.VariantDestructive,
		})
		return apperr.CategoryExistsErr
	}
	m.categories = append(m.categories, name)
	m.mu.Unlock()

	m.notifier.Notify(ctx, notify.Notification{
		Title:       "Category added",
		Description: fmt.Sprintf("%q has been added to categories.", name),
	})
	return nil
}

// DeleteCategory removes a category from the local list. It refuses while any
// product still references the category and reports how many do. Removing an
// absent category is a no-op.
func (m *Manager) DeleteCategory(ctx context.Context, name string) error {
	m.mu.Lock()
	inUse := 0
	for _, p := range m.items {
		if p.Category != nil && *p.Category == name {
			inUse++
		}
	}
	if inUse > 0 {
		m.mu.Unlock()
		m.notifier.Notify(ctx, notify.Notification{
			Title:       "Cannot delete category",
			Description: fmt.Sprintf("There are %d products using this category. Please reassign them first.", inUse),
			Variant:     notify.VariantDestructive,
		})
		return apperr.CategoryInUseErr.WithMsg(
			fmt.Sprintf("%d products use this category", inUse))
	}
	m.categories = slices.DeleteFunc(m.categories, func(c string) bool {
		return c == name
	})
	m.mu.Unlock()

	m.notifier.Notify(ctx, notify.Notification{
		Title:       "Category deleted",
		Description: fmt.Sprintf("%q has been removed from categories.", name),
	})
	return nil
}

// History reads the full change history from the store, joined with the
// current product rows for display.
func (m *Manager) History(ctx context.Context) ([]model.HistoryEntry, error) {
	entries, err := m.history.ListAll(ctx)
	if err != nil {
		m.notifier.Notify(ctx, notify.Notification{
			Title:       "Failed to load history",
			Description: err.Error(),
			Variant:     notify.VariantDestructive,
		})
		return nil, apperr.StoreErr.WithMsg("failed to load history").WrapParent(err)
	}
	return entries, nil
}

// Products returns a copy of the in-memory product mirror.
func (m *Manager) Products() []model.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

// Categories returns a copy of the current category list.
func (m *Manager) Categories() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.categories)
}

// Loading reports whether the first fetch has finished yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Stats computes the dashboard aggregates from the current product mirror.
func (m *Manager) Stats() Stats {
	return ComputeStats(m.Products())
}

// ExportCSV renders the current product mirror for download.
func (m *Manager) ExportCSV() []byte {
	return ExportCSV(m.Products())
}

func (m *Manager) markLoaded() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) validateParams(ctx context.Context, params ProductParams) error {
	err := m.validate.Validate(params)
	if err == nil {
		return nil
	}

	m.notifier.Notify(ctx, notify.Notification{
		Title:       "Invalid product input",
		Description: err.Error(),
		Variant:     notify.VariantDestructive,
	})
	return apperr.ValidationErr.WrapParent(err)
}

// recordChange appends a history entry and publishes the change event.
// Both are secondary to the product write: failures are logged, never
// propagated, and nothing is rolled back.
func (m *Manager) recordChange(ctx context.Context, product model.Product, action model.Action) {
	if err := m.history.Create(ctx, product.ID, action); err != nil {
		m.logger.WarnContext(ctx, "failed to record history entry",
			slog.String("item_id", product.ID.String()),
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
	}

	m.publishChange(ctx, product, action)
}

func (m *Manager) publishChange(ctx context.Context, product model.Product, action model.Action) {
	if m.publisher == nil {
		return
	}

	ev := event.StockChangedEvent{
		ItemID: product.ID.String(),
		Action: string(action),
		Name:   product.Name,
		Stock:  product.Stock,
	}
	if err := m.publisher.PublishStockChanged(ctx, ev); err != nil {
		m.logger.WarnContext(ctx, "failed to publish stock changed event",
			slog.String("item_id", ev.ItemID),
			slog.Any("error", err),
		)
	}
}

func (m *Manager) notifyStoreFailure(ctx context.Context, title string, err error) {
	m.logger.ErrorContext(ctx, title, slog.Any("error", err))
	m.notifier.Notify(ctx, notify.Notification{
		Title:       title,
		Description: err.Error(),
		Variant:     notify.VariantDestructive,
	})
}

func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

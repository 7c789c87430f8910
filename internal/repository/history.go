package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/internal/storage/db"
)

type HistoryRepository interface {
	WithDB(db db.DB) HistoryRepository
	// Create appends an entry for the given product. The store assigns the
	// entry id and timestamp.
	Create(ctx context.Context, itemID uuid.UUID, action model.Action) error
	DeleteByItemID(ctx context.Context, itemID uuid.UUID) error
	ListAll(ctx context.Context) ([]model.HistoryEntry, error)
}

type historyRepository struct {
	db db.DB
}

func NewHistoryRepository(db db.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r historyRepository) WithDB(db db.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r historyRepository) Create(ctx context.Context, itemID uuid.UUID, action model.Action) error {
	if err := action.Validate(); err != nil {
		return fmt.Errorf("validate action: %w", err)
	}

	query := `INSERT INTO stock_history (item_id, action) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, query, itemID, string(action)); err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	return nil
}

func (r historyRepository) DeleteByItemID(ctx context.Context, itemID uuid.UUID) error {
	query := `DELETE FROM stock_history WHERE item_id = $1`

	if _, err := r.db.Exec(ctx, query, itemID); err != nil {
		return fmt.Errorf("delete history entries: %w", err)
	}

	return nil
}

func (r historyRepository) ListAll(ctx context.Context) ([]model.HistoryEntry, error) {
	query := `
		SELECT h.id, h.item_id, h.action, h.created_at, s.name, s.quantity
		FROM stock_history h
		JOIN stock_items s ON s.id = h.item_id
		ORDER BY h.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query history entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.HistoryEntry, 0)
	for rows.Next() {
		var (
			entry  model.HistoryEntry
			action string
		)
		if err := rows.Scan(
			&entry.ID, &entry.ItemID, &action, &entry.CreatedAt,
			&entry.ProductName, &entry.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Action = model.Action(action)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}

	return entries, nil
}

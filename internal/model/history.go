package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action tags a history entry with the kind of change it records.
type Action string

const (
	ActionAdded    Action = "added"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionAdjusted Action = "adjusted"
)

func (a Action) Validate() error {
	switch a {
	case ActionAdded, ActionUpdated, ActionDeleted, ActionAdjusted:
		return nil
	default:
		return fmt.Errorf("unknown action: %s", a)
	}
}

// HistoryEntry is an immutable audit record of an action taken on a product.
// CreatedAt is assigned by the store at insert time. ProductName and Quantity
// are joined in from the product row at read time, never stored.
type HistoryEntry struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	Action      Action    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

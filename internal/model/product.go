package model

import (
	"github.com/google/uuid"
)

// Product is an inventory item. Category is a denormalized string tag, not a
// reference to a separate table; nil means uncategorized.
type Product struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category *string   `json:"category"`
	Stock    int       `json:"stock"`
	Price    float64   `json:"price"`
}

package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one product/variant/quantity entry within a cart. Product fields
// are a snapshot taken when the line was added, so carts render without a
// second product lookup.
type Line struct {
	ID           uint      `json:"id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	UnitPrice    float64   `json:"unit_price"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	Quantity     int       `json:"quantity"` // always >= 1
	AddedAt      time.Time `json:"added_at"`
}

// Snapshot is the full cart contents at one point in time. Item order is
// insertion order; it carries no meaning beyond display.
type Snapshot struct {
	Items []Line `json:"items"`
}

// Total recomputes the cart total from scratch on every call. It is never
// cached: a stale total after a mutation is a bug. Decimal math keeps
// 19.99-style prices exact across large quantities.
func (s Snapshot) Total() float64 {
	total := decimal.Zero
	for _, line := range s.Items {
		price := decimal.NewFromFloat(line.UnitPrice)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	f, _ := total.Float64()
	return f
}

// IsEmpty reports whether the cart has no lines. An empty cart is still a
// valid snapshot, not an error state.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// ClampQuantity enforces the floor of 1. A decrement that would drop a line
// below one unit is clamped, never treated as a removal.
func ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

package domain

import "github.com/shopspring/decimal"

// CartLine pairs a product with a quantity. A cart holds at most one line per
// product id.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NoticeKind identifies a user-facing cart notification.
type NoticeKind string

const (
	NoticeAdded   NoticeKind = "added"
	NoticeUpdated NoticeKind = "updated"
	NoticeRemoved NoticeKind = "removed"
	NoticeCleared NoticeKind = "cleared"
)

// Notice is a short message shown to the visitor after a cart mutation.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contact identifies the person asking for a quotation.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Country string `json:"country,omitempty"`
	Message string `json:"message,omitempty"`
}

// QuotationItem is one requested product in a quotation.
type QuotationItem struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    Category        `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// QuotationRequest is the payload handed to the quotation email collaborator:
// contact details plus either a single product line or a cart snapshot.
// CartTotal is set only for cart snapshots.
type QuotationRequest struct {
	ID          string           `json:"id"`
	Contact     Contact          `json:"contact"`
	Items       []QuotationItem  `json:"items"`
	FromCart    bool             `json:"from_cart"`
	CartTotal   *decimal.Decimal `json:"cart_total,omitempty"`
	RequestedAt time.Time        `json:"requested_at"`
}

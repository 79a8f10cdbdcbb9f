package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPaid OrderStatus = "paid"
)

// ShippingDetails is where and to whom an order is delivered.
type ShippingDetails struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,max=30"`
	Address    string `json:"address" validate:"required,max=300"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
}

// FullName joins first and last name.
func (s ShippingDetails) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Order is the outcome of a successful checkout.
type Order struct {
	ID               string          `json:"id"`
	SessionID        string          `json:"-"`
	Lines            []CartLine      `json:"lines"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Currency         string          `json:"currency"`
	Shipping         ShippingDetails `json:"shipping"`
	PaymentReference string          `json:"payment_reference"`
	CardLast4        string          `json:"card_last4"`
	Status           OrderStatus     `json:"status"`
	PlacedAt         time.Time       `json:"placed_at"`
}

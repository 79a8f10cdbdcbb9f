package http

import (
	"log/slog"
	"net/http"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/provider"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/service"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httputil"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/validator"
)

// CheckoutHandler places orders.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// PaymentRequest carries the card fields of the checkout form.
type PaymentRequest struct {
	CardNumber string `json:"card_number" validate:"required,credit_card"`
	Expiry     string `json:"expiry" validate:"required,len=5"`
	CVC        string `json:"cvc" validate:"required,numeric,min=3,max=4"`
	CardHolder string `json:"card_holder" validate:"required,max=100"`
}

// CheckoutRequest is the body of POST /api/v1/checkout.
type CheckoutRequest struct {
	Shipping domain.ShippingDetails `json:"shipping"`
	Payment  PaymentRequest         `json:"payment"`
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), sessionID(r), service.CheckoutInput{
		Shipping: req.Shipping,
		Card: provider.Card{
			Number: req.Payment.CardNumber,
			Expiry: req.Payment.Expiry,
			CVC:    req.Payment.CVC,
			Holder: req.Payment.CardHolder,
		},
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, order)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/service"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httputil"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/validator"
)

// FormsHandler serves the newsletter, quotation and chat endpoints.
type FormsHandler struct {
	newsletter *service.NewsletterService
	quotations *service.QuotationService
	chat       *service.ChatService
	logger     *slog.Logger
}

// NewFormsHandler creates the handler for the site's forms.
func NewFormsHandler(
	newsletter *service.NewsletterService,
	quotations *service.QuotationService,
	chat *service.ChatService,
	logger *slog.Logger,
) *FormsHandler {
	return &FormsHandler{
		newsletter: newsletter,
		quotations: quotations,
		chat:       chat,
		logger:     logger,
	}
}

// --- Request DTOs ---

// SubscribeRequest is the body of POST /api/v1/newsletter.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// QuotationRequest is the body of POST /api/v1/quotations. Either from_cart
// is set or product_id and quantity name a single product.
type QuotationRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"max=30"`
	Company   string `json:"company" validate:"max=200"`
	Country   string `json:"country" validate:"max=100"`
	Message   string `json:"message" validate:"max=2000"`
	FromCart  bool   `json:"from_cart"`
	ProductID int    `json:"product_id" validate:"omitempty,gt=0"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=300,lte=30000"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// --- Handlers ---

// Subscribe handles POST /api/v1/newsletter
func (h *FormsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sub, err := h.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, sub)
}

// RequestQuotation handles POST /api/v1/quotations
func (h *FormsHandler) RequestQuotation(w http.ResponseWriter, r *http.Request) {
	var req QuotationRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if !req.FromCart && (req.ProductID == 0 || req.Quantity == 0) {
		httputil.WriteError(w, r,
			apperrors.InvalidInput("product_id and quantity are required unless from_cart is set"), h.logger)
		return
	}

	q, err := h.quotations.RequestQuotation(r.Context(), sessionID(r), service.QuotationInput{
		Contact: domain.Contact{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Company: req.Company,
			Country: req.Country,
			Message: req.Message,
		},
		FromCart:  req.FromCart,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusAccepted, q)
}

// Chat handles POST /api/v1/chat
func (h *FormsHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	reply, err := h.chat.Reply(r.Context(), req.Message)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ChatResponse{Reply: reply})
}

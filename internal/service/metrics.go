package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartNoticesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_notices_total",
		Help: "Cart notices shown to visitors, by kind.",
	}, []string{"kind"})

	ordersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders placed after an approved payment.",
	})

	orderValueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_value_total",
		Help: "Sum of placed order subtotals.",
	})

	paymentsDeclinedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_payments_declined_total",
		Help: "Declined checkout payments, by reason.",
	}, []string{"reason"})

	subscriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_newsletter_subscriptions_total",
		Help: "Newsletter signup attempts, by result.",
	}, []string{"result"})

	quotationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_quotations_requested_total",
		Help: "Quotation requests handed to the sender, by source and result.",
	}, []string{"source", "result"})

	chatRepliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_chat_replies_total",
		Help: "Chat replies, by outcome.",
	}, []string{"outcome"})

	confirmationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_confirmations_total",
		Help: "Order confirmations processed by the worker, by result.",
	}, []string{"result"})
)

package redis

import (
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProduct() domain.Product {
	return domain.Product{
		ID:       4,
		Name:     "Mixed Spray Roses",
		Price:    decimal.RequireFromString("38"),
		Category: domain.CategorySprayRoses,
		InStock:  true,
	}
}

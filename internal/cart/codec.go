package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// PayloadVersion is written into every persisted cart.
const PayloadVersion = 1

// ErrMalformed marks persisted data that cannot be turned back into a cart.
var ErrMalformed = errors.New("malformed cart payload")

type payload struct {
	Version int               `json:"version"`
	Items   []domain.CartLine `json:"items"`
}

// Encode serializes lines as a version 1 payload.
func Encode(lines []domain.CartLine) (string, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	b, err := json.Marshal(payload{Version: PayloadVersion, Items: lines})
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted cart and reports the payload version it found.
// A bare JSON array is the unversioned layout and decodes as version 0.
// Every failure wraps ErrMalformed.
func Decode(data string) ([]domain.CartLine, int, error) {
	trimmed := bytes.TrimSpace([]byte(data))
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("%w: empty", ErrMalformed)
	}

	var (
		lines   []domain.CartLine
		version int
	)
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case '{':
		var p payload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if p.Version != PayloadVersion {
			return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrMalformed, p.Version)
		}
		lines, version = p.Items, p.Version
	default:
		return nil, 0, fmt.Errorf("%w: unexpected %q", ErrMalformed, trimmed[0])
	}

	seen := make(map[int]bool, len(lines))
	for i, l := range lines {
		if l.Product.ID <= 0 {
			return nil, 0, fmt.Errorf("%w: line %d has no product id", ErrMalformed, i)
		}
		if l.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: line %d has quantity %d", ErrMalformed, i, l.Quantity)
		}
		if seen[l.Product.ID] {
			return nil, 0, fmt.Errorf("%w: duplicate product %d", ErrMalformed, l.Product.ID)
		}
		seen[l.Product.ID] = true
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, version, nil
}

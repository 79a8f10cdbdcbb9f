package cart

import (
	"context"
	"sync"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// Storage is a string key/value store with local-storage semantics. GetItem
// reports found=false for a missing key rather than an error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Notifier receives a notice after each mutation that the visitor should see.
type Notifier interface {
	Notify(n domain.Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(domain.Notice)

func (f NotifierFunc) Notify(n domain.Notice) { f(n) }

// Collector buffers notices for one request.
type Collector struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (c *Collector) Notify(n domain.Notice) {
	c.mu.Lock()
	c.notices = append(c.notices, n)
	c.mu.Unlock()
}

// Notices returns the buffered notices in emission order.
func (c *Collector) Notices() []domain.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

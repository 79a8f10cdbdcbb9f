package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/blog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/catalog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/chat"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/event"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/provider"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/memory"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender/logsender"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/service"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/health"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/middleware"
)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type stubChat struct{}

func (stubChat) Reply(_ context.Context, message string) (string, chat.Outcome) {
	return "You asked: " + message, chat.OutcomeOK
}

// testClient talks to a router backed by in-memory storage and keeps the
// session cookie between requests.
type testClient struct {
	t      *testing.T
	server *httptest.Server
	http   *http.Client
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	logger := testLogger()

	products, err := catalog.Load()
	require.NoError(t, err)
	posts, err := blog.Load()
	require.NoError(t, err)

	events := event.NewProducer(event.NewNopPublisher(logger), logger)
	carts := service.NewCartService(memory.NewCartStorage(time.Hour), products, events, logger)
	snd := logsender.New(0, logger)

	svc := Services{
		Catalog:    products,
		Blog:       posts,
		Renderer:   blog.NewRenderer(),
		Cart:       carts,
		Checkout:   service.NewCheckoutService(carts, provider.NewSimulated(0, logger), events, logger),
		Newsletter: service.NewNewsletterService(memory.NewSubscriptionRepository(), events, logger),
		Quotations: service.NewQuotationService(carts, products, snd, events, logger),
		Chat:       service.NewChatService(stubChat{}, logger),
	}
	cfg := RouterConfig{
		CORS:          middleware.DefaultCORSConfig(),
		Sessions:      middleware.NewCookieStore(middleware.SessionConfig{Secret: "0123456789abcdef0123456789abcdef", MaxAge: 3600}),
		SessionCookie: "kranian_session",
		CacheMaxAge:   300,
	}

	srv := httptest.NewServer(NewRouter(svc, health.NewHandler(), cfg, logger))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, server: srv, http: &http.Client{Jar: jar}}
}

func (c *testClient) do(method, path string, body any) (*http.Response, envelope) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type cartBody struct {
	Lines []struct {
		Product struct {
			ID int `json:"id"`
		} `json:"product"`
		Quantity int `json:"quantity"`
	} `json:"lines"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
	Notices   []struct {
		Kind  string `json:"kind"`
		Title string `json:"title"`
	} `json:"notices"`
}

func validCheckout(card string) map[string]any {
	return map[string]any{
		"shipping": map[string]any{
			"first_name": "Jane", "last_name": "Wambui", "email": "jane@example.co.ke",
			"phone": "+254700000000", "address": "Moi South Lake Rd", "city": "Naivasha",
			"postal_code": "20117", "country": "Kenya",
		},
		"payment": map[string]any{
			"card_number": card, "expiry": "12/30", "cvc": "123", "card_holder": "Jane Wambui",
		},
	}
}

func decodeJSON(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

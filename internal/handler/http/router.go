package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/blog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/catalog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/service"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/health"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/middleware"
)

const serviceName = "storefront"

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// Services are the use cases the router exposes.
type Services struct {
	Catalog    *catalog.Catalog
	Blog       *blog.Blog
	Renderer   *blog.Renderer
	Cart       *service.CartService
	Checkout   *service.CheckoutService
	Newsletter *service.NewsletterService
	Quotations *service.QuotationService
	Chat       *service.ChatService
}

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	CORS           middleware.CORSConfig
	Sessions       sessions.Store
	SessionCookie  string
	CacheMaxAge    int
	RateLimit      middleware.RateLimitConfig
	RequestTimeout time.Duration
	PprofCIDRs     []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svc Services, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(timeout))
	r.Use(middleware.RequestLogging(logger, "/health", "/metrics"))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	catalogHandler := NewCatalogHandler(svc.Catalog, logger)
	blogHandler := NewBlogHandler(svc.Blog, svc.Renderer, logger)
	cartHandler := NewCartHandler(svc.Cart, logger)
	checkoutHandler := NewCheckoutHandler(svc.Checkout, logger)
	formsHandler := NewFormsHandler(svc.Newsletter, svc.Quotations, svc.Chat, logger)

	// Form posts reach paid or outbound collaborators.
	formLimit := middleware.RateLimit(cfg.RateLimit, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(LimitBody(maxBodyBytes))

		// Static content, publicly cacheable.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CacheMaxAge))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", catalogHandler.ListProducts)
				r.Get("/featured", catalogHandler.Featured)
				r.Get("/bestsellers", catalogHandler.Bestsellers)
				r.Get("/categories", catalogHandler.Categories)
				r.Get("/{id}", catalogHandler.GetProduct)
			})

			r.Route("/blog", func(r chi.Router) {
				r.Get("/posts", blogHandler.ListPosts)
				r.Get("/posts/{slug}", blogHandler.GetPost)
				r.Get("/posts/{slug}/related", blogHandler.RelatedPosts)
				r.Get("/categories", blogHandler.Categories)
				r.Get("/tags", blogHandler.Tags)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.With(formLimit).Post("/newsletter", formsHandler.Subscribe)
			r.With(formLimit).Post("/chat", formsHandler.Chat)
		})

		// Session-bound routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.Session(cfg.Sessions, cfg.SessionCookie, logger))
			r.Use(middleware.RequestLogger(logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productId}", cartHandler.UpdateItem)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})
			r.With(formLimit).Post("/checkout", checkoutHandler.PlaceOrder)
			r.With(formLimit).Post("/quotations", formsHandler.RequestQuotation)
		})
	})

	return r
}

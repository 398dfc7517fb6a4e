package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dealspot/subscription-deals-site/internal/carousel"
	"github.com/dealspot/subscription-deals-site/internal/catalog"
	"github.com/dealspot/subscription-deals-site/internal/chat"
	"github.com/dealspot/subscription-deals-site/internal/contact"
	httpmiddleware "github.com/dealspot/subscription-deals-site/internal/http/middleware"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	CatalogHandler  *catalog.Handler
	ChatHandler     *chat.Handler
	ContactHandler  *contact.Handler
	CarouselHandler *carousel.Handler
	MetricsHandler  http.Handler

	AdminJWTSecret     string
	CORSAllowedOrigins []string

	// Per-IP limit on contact submissions; disabled when burst is zero.
	ContactRatePerSec float64
	ContactRateBurst  int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		if cfg.ChatHandler != nil {
			public.Get("/widget.js", cfg.ChatHandler.HandleWidgetJS)
			public.Route("/api/chat", func(r chi.Router) {
				r.Get("/ws", cfg.ChatHandler.HandleWebSocket)
				r.Post("/message", cfg.ChatHandler.HandleMessage)
				r.Get("/history", cfg.ChatHandler.HandleHistory)
				r.Get("/suggestions", cfg.ChatHandler.HandleSuggestions)
			})
		}

		if cfg.CatalogHandler != nil {
			public.Route("/api/deals", func(r chi.Router) {
				r.Get("/", cfg.CatalogHandler.ListDeals)
				r.Get("/{dealID}", cfg.CatalogHandler.GetDeal)
			})
		}

		if cfg.CarouselHandler != nil {
			public.Get("/api/carousel/config", cfg.CarouselHandler.GetConfig)
		}

		if cfg.ContactHandler != nil {
			public.Group(func(r chi.Router) {
				if cfg.ContactRateBurst > 0 {
					r.Use(httpmiddleware.RateLimit(cfg.ContactRatePerSec, cfg.ContactRateBurst))
				}
				r.Post("/api/contact", cfg.ContactHandler.Submit)
			})
		}
	})

	// Admin routes (protected by JWT)
	if cfg.AdminJWTSecret != "" && cfg.ContactHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			admin.Get("/contact/messages", cfg.ContactHandler.List)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

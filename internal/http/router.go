package http

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/designs-lookup/docs"
	"github.com/rogerio-castellano/designs-lookup/internal/http/ban"
	"github.com/rogerio-castellano/designs-lookup/internal/http/handlers"
	rl "github.com/rogerio-castellano/designs-lookup/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type routerOptions struct {
	limiter        *rl.Limiter
	banner         *ban.Banner
	requestTimeout time.Duration
	accessLog      bool
	trustedProxies []netip.Prefix
}

type Option func(*routerOptions)

// WithRateLimit guards the lookup routes with limiter, and with banner when non-nil.
func WithRateLimit(limiter *rl.Limiter, banner *ban.Banner) Option {
	return func(o *routerOptions) {
		o.limiter = limiter
		o.banner = banner
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(o *routerOptions) {
		o.requestTimeout = d
	}
}

// WithTrustedProxies lets requests from these prefixes set the client
// address through X-Real-IP or X-Forwarded-For.
func WithTrustedProxies(prefixes []netip.Prefix) Option {
	return func(o *routerOptions) {
		o.trustedProxies = prefixes
	}
}

func WithAccessLog() Option {
	return func(o *routerOptions) {
		o.accessLog = true
	}
}

func NewRouter(opts ...Option) http.Handler {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RealIP(o.trustedProxies))
	if o.accessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	if o.requestTimeout > 0 {
		r.Use(middleware.Timeout(o.requestTimeout))
	}

	r.Get("/health", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if o.limiter != nil {
			r.Use(RateLimitMiddleware(o.limiter, o.banner))
		}
		r.Get("/", handlers.LookupHandler)
		r.Get("/inventory", handlers.LookupHandler)
	})

	return r
}

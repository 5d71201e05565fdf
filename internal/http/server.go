// Package http serves the dashboard UI and the statement upload endpoint.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"financas/internal/cache"
	"financas/internal/category"
	"financas/internal/core"
	"financas/internal/ingest"
	applog "financas/internal/log"
	"financas/internal/middleware/ratelimit"
	"financas/internal/middleware/security"
	"financas/internal/middleware/trace"
	"financas/internal/store"
	appweb "financas/web"
)

type Server struct {
	http.Server
	templates  *template.Template
	lister     store.Lister
	ingest     *ingest.Service
	classifier *category.Classifier
	logger     *applog.Logger

	uploadMaxBytes int64

	limiter   *ratelimit.Limiter
	extractIP func(*http.Request) string

	// Transaction listings and rendered summaries keyed by filter. Uploads
	// clear both wholesale since any batch can touch any month.
	txCache      *cache.LRUCache[[]core.Transaction]
	summaryCache *cache.LRUCache[summaryView]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Options bundles the collaborators NewServer needs.
type Options struct {
	Addr           string
	Lister         store.Lister
	Ingest         *ingest.Service
	Classifier     *category.Classifier
	Logger         *applog.Logger
	UploadMaxBytes int64
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	ipExtractor := security.NewIPExtractor()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		lister:         opts.Lister,
		ingest:         opts.Ingest,
		classifier:     opts.Classifier,
		logger:         opts.Logger.WithComponent(applog.ComponentHTTP),
		uploadMaxBytes: opts.UploadMaxBytes,
		limiter:        ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		extractIP:      ipExtractor.ExtractClientIP,
		txCache:        cache.NewLRUCache[[]core.Transaction](100, 5*time.Minute),
		summaryCache:   cache.NewLRUCache[summaryView](100, 5*time.Minute),
		cacheManager:   cache.NewManager(),
	}

	s.cacheManager.Register(s.txCache)
	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/upload", s.limiter.Middleware(s.extractIP, nil)(http.HandlerFunc(s.handleUpload)))
	// UI partials
	mux.HandleFunc("/ui/summary", s.handleSummary)
	mux.HandleFunc("/ui/categories", s.handleCategories)
	mux.HandleFunc("/ui/monthly", s.handleMonthly)
	mux.HandleFunc("/ui/transactions", s.handleTransactions)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	handler := http.Handler(mux)
	handler = applog.AccessLogMiddleware(handler)
	handler = applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(handler)
	handler = applog.Middleware(s.logger)(handler)
	handler = trace.Middleware(handler)
	handler = headers.Middleware(handler)
	s.Handler = handler

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) invalidateCaches() {
	s.txCache.Clear()
	s.summaryCache.Clear()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.lister.ListTransactions(r.Context()); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

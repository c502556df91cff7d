package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/config"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/arxiv-cache/pkg/server/store/gorm"
)

// Resolver returns a cached paper, fetching it upstream on a miss.
type Resolver interface {
	Resolve(ctx context.Context, externalID string) (*store.Paper, error)
}

// corsMethods are the methods trusted origins may use.
var corsMethods = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

type Server struct {
	Router      *mux.Router
	DB          *gorm.DB
	PapersStore store.PapersStore
	HealthStore store.HealthStore
	Resolver    Resolver
	Config      *config.ArxivCacheConfig
	Logger      *zap.Logger
	Version     string
	srv         *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.ArxivCacheConfig,
	resolver Resolver,
	logger *zap.Logger,
	host string,
	port string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter().UseEncodedPath()
	handler := handlers.LoggingHandler(
		zap.NewStdLog(logger.Named("access")).Writer(),
		corsHandler(cfg)(router),
	)

	srv := &http.Server{
		Handler:  handler,
		Addr:     net.JoinHostPort(host, port),
		ErrorLog: zap.NewStdLog(logger.Named("http")),
		// Upstream lookups may take up to lookup_timeout, so writes get headroom.
		WriteTimeout: cfg.LookupTimeoutDuration() + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	s := &Server{
		Router:   router,
		DB:       db,
		Resolver: resolver,
		Config:   cfg,
		Logger:   logger,
		Version:  "dev",
		srv:      srv,
	}
	if db != nil {
		s.PapersStore = gormstore.NewPapersStore(db)
		s.HealthStore = gormstore.NewHealthStore(db)
	}
	return s
}

func corsHandler(cfg *config.ArxivCacheConfig) func(http.Handler) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowCredentials(),
		handlers.AllowedMethods(corsMethods),
	}
	if len(cfg.AllowedOrigins) > 0 {
		opts = append(opts, handlers.AllowedOrigins(cfg.AllowedOrigins))
	} else {
		// gorilla treats an empty list as "any origin"
		opts = append(opts, handlers.AllowedOriginValidator(func(string) bool { return false }))
	}
	cors := handlers.CORS(opts...)

	return func(next http.Handler) http.Handler {
		return allowRequestedHeaders(cfg.AllowedOrigins, cors(next))
	}
}

// allowRequestedHeaders lets a trusted origin send any header. gorilla only
// accepts headers from a fixed list, so for a trusted preflight the
// requested headers are taken off the request and echoed back instead.
func allowRequestedHeaders(origins []string, cors http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := r.Header.Get("Access-Control-Request-Headers")
		if r.Method != http.MethodOptions || requested == "" || !isTrustedOrigin(origins, r.Header.Get("Origin")) {
			cors.ServeHTTP(w, r)
			return
		}

		var allowed []string
		for _, h := range strings.Split(requested, ",") {
			if h = strings.TrimSpace(h); h != "" {
				allowed = append(allowed, http.CanonicalHeaderKey(h))
			}
		}

		r = r.Clone(r.Context())
		r.Header.Del("Access-Control-Request-Headers")
		if len(allowed) > 0 {
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(allowed, ","))
		}
		cors.ServeHTTP(w, r)
	})
}

func isTrustedOrigin(origins []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range origins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start listens on the configured address and blocks until the server
// stops. A graceful Shutdown is not reported as an error.
func (s *Server) Start() error {
	s.Logger.Info("listening", zap.String("addr", s.srv.Addr))
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// StartWithListener serves on an existing listener.
func (s *Server) StartWithListener(l net.Listener) error {
	s.Logger.Info("listening", zap.String("addr", l.Addr().String()))
	err := s.srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down")
	return s.srv.Shutdown(ctx)
}

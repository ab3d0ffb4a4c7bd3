package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/mailsift/mailsift/pkg/config"
	"github.com/mailsift/mailsift/pkg/refdata"
	"github.com/mailsift/mailsift/pkg/validator"
)

// Server exposes the validation and admin endpoints
type Server struct {
	validator *validator.Validator
	cfgStore  *config.Store
	ref       *refdata.Store
	rdb       *redis.Client

	started time.Time
	logf    func(format string, args ...any)
	warnf   func(format string, args ...any)
}

func NewServer(v *validator.Validator, cfgStore *config.Store, ref *refdata.Store, rdb *redis.Client) *Server {
	return &Server{
		validator: v,
		cfgStore:  cfgStore,
		ref:       ref,
		rdb:       rdb,
		started:   time.Now(),
		logf:      func(string, ...any) {},
		warnf:     func(string, ...any) {},
	}
}

// SetLoggers installs the info and warning log functions
func (s *Server) SetLoggers(logf, warnf func(format string, args ...any)) {
	if logf != nil {
		s.logf = logf
	}
	if warnf != nil {
		s.warnf = warnf
	}
}

// Router assembles the route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	r.Post("/", s.handleValidate)
	r.Post("/validate", s.handleValidate)
	r.Post("/validate/batch", s.handleValidateBatch)

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Get("/health", s.handleHealth)
		r.Route("/config", func(r chi.Router) {
			r.Get("/", s.handleGetConfig)
			r.Put("/", s.handlePutConfig)
			r.Patch("/", s.handlePatchConfig)
			r.Post("/validate", s.handleValidateConfig)
			r.Post("/reset", s.handleResetConfig)
			r.Delete("/cache", s.handleDropConfigCache)
		})
	})

	return r
}

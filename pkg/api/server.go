// Package api pokepack REST API
//
// @title           pokepack REST API
// @version         1.0.0
// @description     Packs team pastes into 21-byte records and stores teams.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/logging"
	"github.com/ssargent/pokepack/pkg/pack"
)

const defaultMaxBody = 1 << 20

// Server holds the API server state
type Server struct {
	packer  *pack.Packer
	store   TeamStore
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(packer *pack.Packer, store TeamStore, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	if config.MaxBody <= 0 {
		config.MaxBody = defaultMaxBody
	}
	if logger == nil {
		logger = logging.Logger()
	}
	return &Server{
		packer:  packer,
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	m := s.metrics
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Conversions
		r.Post("/encode", m.InstrumentHandler("POST", "/api/v1/encode", s.handleEncode))
		r.Post("/decode", m.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))

		// Teams
		r.Post("/teams", m.InstrumentHandler("POST", "/api/v1/teams", s.handleCreateTeam))
		r.Get("/teams", m.InstrumentHandler("GET", "/api/v1/teams", s.handleListTeams))
		r.Get("/teams/{id}", m.InstrumentHandler("GET", "/api/v1/teams/{id}", s.handleGetTeam))
		r.Delete("/teams/{id}", m.InstrumentHandler("DELETE", "/api/v1/teams/{id}", s.handleDeleteTeam))

		// Vocabulary
		r.Get("/dex/{category}", m.InstrumentHandler("GET", "/api/v1/dex/{category}", s.handleDexList))
		r.Get("/dex/{category}/{name}", m.InstrumentHandler("GET", "/api/v1/dex/{category}/{name}", s.handleDexLookup))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json", "/swagger/doc.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.logger.Error("failed to render swagger doc", zap.Error(err))
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// refreshTeamCount updates the stored team gauge from the store.
func (s *Server) refreshTeamCount() {
	if s.store == nil {
		return
	}
	n, err := s.store.Count()
	if err != nil {
		s.logger.Warn("failed to count teams", zap.Error(err))
		return
	}
	s.metrics.SetTeamsStored(n)
}

// StartServer serves the API until ctx is cancelled.
func StartServer(ctx context.Context, packer *pack.Packer, store TeamStore, config ServerConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = logging.Logger()
	}
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	server := NewServer(packer, store, config, NewMetrics(nil), logger)
	server.refreshTeamCount()

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting pokepack REST API server",
			zap.String("addr", addr),
			zap.String("metrics", fmt.Sprintf("http://%s/metrics", addr)))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down pokepack REST API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>pokepack API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

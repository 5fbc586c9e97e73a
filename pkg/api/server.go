// Package api Mapcode REST API
//
// @title           Mapcode REST API
// @version         1.0.0
// @description     Encode coordinates to mapcodes and decode them back.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/swaggo/swag"

	"github.com/ssargent/mapcode/pkg/batch"
	"github.com/ssargent/mapcode/pkg/cache"
	"github.com/ssargent/mapcode/pkg/logger"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// Dependencies are the components a server is built from. Jobs and Cache
// are optional.
type Dependencies struct {
	Engine *mapcode.Engine
	Jobs   *storage.JobStore
	Cache  cache.Cache
}

// Router builds the HTTP handler of s.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logger.AccessMiddleware(logger.L()))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Get("/encode", s.metrics.InstrumentHandler("GET", "/api/v1/encode", s.handleEncode))
		r.Get("/decode", s.metrics.InstrumentHandler("GET", "/api/v1/decode", s.handleDecode))
		r.Get("/parse", s.metrics.InstrumentHandler("GET", "/api/v1/parse", s.handleParse))

		r.Get("/territories/{iso}", s.metrics.InstrumentHandler("GET", "/api/v1/territories/{iso}", s.handleTerritory))
		r.Get("/borders", s.metrics.InstrumentHandler("GET", "/api/v1/borders", s.handleBorders))

		r.Post("/batch", s.metrics.InstrumentHandler("POST", "/api/v1/batch", s.handleBatchCreate))
		r.Get("/batch", s.metrics.InstrumentHandler("GET", "/api/v1/batch", s.handleBatchList))
		r.Get("/batch/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/batch/{id}", s.handleBatchGet))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", swaggerHandler)

	return r
}

const swaggerPage = `<!DOCTYPE html>
<html>
<head>
	<title>Mapcode API Documentation</title>
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
	      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.presets.standalone]
	    });
	  };
	</script>
</body>
</html>`

func swaggerHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerPage))
	case "/swagger/swagger.json", "/swagger/doc.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			logger.L().Error("swagger_doc_failed", "err", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// StartServer serves the API until ctx is done, then shuts down gracefully
// and waits for running batch jobs.
func StartServer(ctx context.Context, deps Dependencies, config ServerConfig) error {
	if deps.Engine == nil {
		return errors.New("server needs an engine")
	}
	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	SwaggerInfo.Host = addr

	metrics := NewMetrics()
	var runner *batch.Runner
	if deps.Jobs != nil {
		runner = batch.NewRunner(deps.Engine, deps.Jobs, config.BatchWorkers, config.BatchMaxItems)
	}
	server := NewServer(deps.Engine, runner, deps.Cache, config, metrics)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if config.APIKey == "" {
		logger.L().Warn("api_key_empty", "msg", "authentication is disabled")
	}

	errc := make(chan error, 1)
	go func() {
		logger.L().Info("server_starting", "addr", addr, "metrics", fmt.Sprintf("http://%s/metrics", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	logger.L().Info("server_stopping")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if runner != nil {
		runner.Wait()
	}
	return nil
}

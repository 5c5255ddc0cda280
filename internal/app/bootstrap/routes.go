// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/lecternhq/lectern/internal/app/features/errors"
	healthfeature "github.com/lecternhq/lectern/internal/app/features/health"
	resourcesfeature "github.com/lecternhq/lectern/internal/app/features/resources"
	taxonomyfeature "github.com/lecternhq/lectern/internal/app/features/taxonomy"
	resourcestore "github.com/lecternhq/lectern/internal/app/store/resources"
	taxonomystore "github.com/lecternhq/lectern/internal/app/store/taxonomy"
	"github.com/lecternhq/lectern/internal/app/system/limits"
	"github.com/lecternhq/lectern/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the storage backends bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Lectern mounts the resource API, the taxonomy dropdown index, and the
// health endpoint. Authentication happens upstream of this service.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Resource management API. Mutations are throttled per client IP;
	// reads pass through.
	writeLimiter := ratelimit.New(limits.WriteRequestsPerMinute, time.Minute)
	recordStore := resourcestore.New(deps.Resources, deps.Blobs, deps.BlobRootID, logger)
	resourcesHandler := resourcesfeature.NewHandler(recordStore, errLog, logger)
	r.Route("/api/resources", func(api chi.Router) {
		api.Use(ratelimit.WriteMiddleware(writeLimiter))
		api.Mount("/", resourcesfeature.Routes(resourcesHandler))
	})

	// Taxonomy dropdown index
	taxonomyHandler := taxonomyfeature.NewHandler(taxonomystore.New(deps.Taxonomy), errLog, logger)
	r.Mount("/api/taxonomy", taxonomyfeature.Routes(taxonomyHandler))

	return r, nil
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/authzkit/authzkit/modules/authorization"
	"github.com/authzkit/authzkit/pkg/cache"
	"github.com/authzkit/authzkit/pkg/config"
	"github.com/authzkit/authzkit/pkg/httpserver"
	"github.com/authzkit/authzkit/pkg/identity"
	"github.com/authzkit/authzkit/pkg/logger"
	"github.com/authzkit/authzkit/pkg/permissions"
	"github.com/authzkit/authzkit/pkg/requestid"
	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/token"
)

type appConfig struct {
	Environment string `env:"AUTHZ_ENV" envDefault:"development"`
	CatalogFile string `env:"AUTHZ_CATALOG_FILE,required"`
	RolesFile   string `env:"AUTHZ_ROLES_FILE,required"`
}

func main() {
	var (
		appCfg   appConfig
		pgCfg    identity.Config
		cacheCfg cache.Config
		tokenCfg token.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&cacheCfg)
	config.MustLoad(&tokenCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, "authzd"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), log, appCfg, pgCfg, cacheCfg, tokenCfg, httpCfg); err != nil {
		log.Error("authzd exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	appCfg appConfig,
	pgCfg identity.Config,
	cacheCfg cache.Config,
	tokenCfg token.Config,
	httpCfg httpserver.Config,
) error {
	catalog, err := loadCatalog(appCfg.CatalogFile)
	if err != nil {
		return err
	}
	registry, err := loadRegistry(catalog, appCfg.RolesFile)
	if err != nil {
		return err
	}
	log.Info("definitions loaded",
		slog.Int("permissions", catalog.Len()),
		slog.Int("roles", len(registry.Codes())))

	pool, err := identity.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := identity.Migrate(ctx, pool); err != nil {
		return err
	}

	redisClient, err := cache.Connect(ctx, cacheCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	tokenSvc, err := token.New(tokenCfg)
	if err != nil {
		return err
	}

	identitySvc := identity.NewService(registry, identity.NewPostgresStore(pool))
	authzSvc := authorization.NewService(catalog, registry, identitySvc,
		authorization.WithCache(cache.NewRedisCache(redisClient, cacheCfg.TTL)),
		authorization.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log,
		func(ctx context.Context) error { return pool.Ping(ctx) },
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	))
	r.Group(func(protected chi.Router) {
		protected.Use(token.Middleware(tokenSvc))
		protected.Mount("/authz", authzSvc.Handle())
	})

	srv := httpserver.New(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func loadCatalog(path string) (*permissions.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return permissions.LoadYAML(f)
}

func loadRegistry(catalog *permissions.Catalog, path string) (*roles.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return roles.LoadYAML(catalog, f)
}

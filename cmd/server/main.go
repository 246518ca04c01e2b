package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"greens/config"
	"greens/database"
	"greens/entities"
	"greens/pkg/logger"
	"greens/router"

	// Catalog + planting
	catalog "greens/pkg/catalog/repository"
	catalogRepoImp "greens/pkg/catalog/repositoryImp"
	plantingRepoImp "greens/pkg/planting/repositoryImp"

	// Engines
	"greens/pkg/capacity"
	"greens/pkg/pricing"
	"greens/pkg/seed"

	// Orders
	orderCtrlImp "greens/pkg/order/controllerImp"
	orderRepoImp "greens/pkg/order/repositoryImp"
	orderSvcImp "greens/pkg/order/serviceImp"

	// Dashboard
	dashCtrlImp "greens/pkg/dashboard/controllerImp"
	dashSvcImp "greens/pkg/dashboard/serviceImp"

	// Health
	healthCtrlImp "greens/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logCfg := logger.DefaultConfig()
	logCfg.Level, logCfg.Format, logCfg.Component = cfg.LogLevel, cfg.LogFormat, "greens"
	lg := logger.New(logCfg)
	defer lg.Close()
	loc := cfg.Location()
	lg.Info("config loaded", "port", cfg.Port, "tz", loc.String(), "db_path", cfg.DBPath)

	// 2) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		lg.Error("database", "error", err)
		os.Exit(1)
	}

	// 3) Repos
	catRepo := catalogRepoImp.New(db)
	plantRepo := plantingRepoImp.New(db)
	ordRepo := orderRepoImp.New(db)

	// 4) Seed catalog; a missing or broken file is only a warning
	seedCatalog(cfg, catRepo, lg)

	// 5) Services
	engine := pricing.NewEngine(lg)
	planner := capacity.NewPlanner(lg)
	ordSvc := orderSvcImp.New(ordRepo, catRepo, engine, lg)
	dashSvc := dashSvcImp.New(plantRepo, ordRepo, catRepo, planner, lg)

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency_ms", v.Latency.Milliseconds()}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			lg.Info("request", args...)
			return nil
		},
	}))

	r := router.New(
		e,
		healthCtrlImp.NewHealthCtrl(db),
		orderCtrlImp.New(ordSvc, loc),
		dashCtrlImp.New(dashSvc, loc, nil),
	)

	// 7) Start
	lg.Info("listening", "port", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func seedCatalog(cfg config.AppConfig, repo catalog.CatalogRepository, lg *logger.Logger) {
	var (
		routes []entities.DeliveryRoute
		yields seed.Yields
		err    error
	)
	if cfg.SeedRoutesCSV != "" {
		if routes, err = seed.LoadRoutesCSV(cfg.SeedRoutesCSV); err != nil {
			lg.Warn("routes seed skipped", "path", cfg.SeedRoutesCSV, "error", err)
		}
	}
	if cfg.SeedYieldsXLSX != "" {
		if yields, err = seed.LoadCropYieldsXLSX(cfg.SeedYieldsXLSX, cfg.SeedYieldsSheet); err != nil {
			lg.Warn("crop yields seed skipped", "path", cfg.SeedYieldsXLSX, "error", err)
		}
	}
	if len(routes) == 0 && len(yields) == 0 {
		return
	}
	if err := seed.Apply(repo, routes, yields, lg); err != nil {
		lg.Warn("seed catalog", "error", err)
	}
}

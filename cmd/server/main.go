package main

import (
	"context"
	"flag"

	"github.com/angiepellets-dev/Holz-Markt/pkg/catalog"
	"github.com/angiepellets-dev/Holz-Markt/pkg/dataset"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geocoder"
	"github.com/angiepellets-dev/Holz-Markt/pkg/http"
	"github.com/angiepellets-dev/Holz-Markt/pkg/http/usecases"
	"github.com/angiepellets-dev/Holz-Markt/pkg/logger"
	"github.com/angiepellets-dev/Holz-Markt/pkg/pricing"
	"github.com/angiepellets-dev/Holz-Markt/pkg/routing"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable the API rate-limit middleware")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file, using defaults", zap.Error(err))
	}

	viper.SetDefault("PELLETS_FEED_URL", "./data/pellets.csv")
	viper.SetDefault("RESIDUAL_WOOD_FEED_URL", "./data/saegerestholz.csv")
	viper.SetDefault("CUSTOMERS_FEED_URL", "./data/kunden.csv")
	viper.SetDefault("GEOCACHE_PATH", "./data/geocache.json.bz2")

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	loader := dataset.NewLoader(logger)
	feeds, err := loader.LoadAll(ctx,
		dataset.Feed{Name: "pellets", URL: viper.GetString("PELLETS_FEED_URL")},
		dataset.Feed{Name: "saegerestholz", URL: viper.GetString("RESIDUAL_WOOD_FEED_URL")},
		dataset.Feed{Name: "kunden", URL: viper.GetString("CUSTOMERS_FEED_URL")},
	)
	if err != nil {
		logger.Fatal("loading feeds failed", zap.Error(err))
	}

	pricing.Normalize(feeds.Pellets)
	pricing.Normalize(feeds.ResidualWood)

	cache, err := geocoder.NewCache(newGeocacheStore(logger), logger)
	if err != nil {
		logger.Fatal("loading geocode cache failed", zap.Error(err))
	}
	resolver := geocoder.NewResolver(
		geocoder.NewClient(viper.GetString("NOMINATIM_BASE_URL")), cache, logger)

	suppliers := append(feeds.Pellets, feeds.ResidualWood...)
	cat := catalog.Build(ctx, suppliers, feeds.Customers, resolver, logger)

	routeEngine := routing.NewEngine(
		routing.NewClient(viper.GetString("OSRM_BASE_URL")), cat, logger)

	api := http.NewServer(logger)

	mapService := usecases.NewMapService(logger, cat)
	routeService := usecases.NewRouteService(logger, routeEngine)

	api.Use(ctx,
		logger, *useRateLimit, mapService, routeService)

	signal := http.GracefulShutdown()

	logger.Info("Holz-Markt server stopped", zap.String("signal", signal.String()))
	cleanup()
}

// newGeocacheStore selects the Postgres store when a DSN is configured,
// otherwise the compressed file store.
func newGeocacheStore(logger *zap.Logger) geocoder.Store {
	if dsn := viper.GetString("GEOCACHE_DSN"); dsn != "" {
		store, err := geocoder.NewPGStore(dsn)
		if err != nil {
			logger.Fatal("opening geocache database failed", zap.Error(err))
		}
		return store
	}
	return geocoder.NewFileStore(viper.GetString("GEOCACHE_PATH"))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

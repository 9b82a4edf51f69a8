package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/taxi-ledger/internal/cli"
	"github.com/example/taxi-ledger/internal/config"
	"github.com/example/taxi-ledger/internal/dispatch"
	"github.com/example/taxi-ledger/internal/geo"
	httpapi "github.com/example/taxi-ledger/internal/http"
	"github.com/example/taxi-ledger/internal/logging"
	"github.com/example/taxi-ledger/internal/maprender"
	"github.com/example/taxi-ledger/internal/models"
	"github.com/example/taxi-ledger/internal/taxi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("taxi_ledger_failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	distance, err := geo.DistanceFor(geo.Method(cfg.DistanceMethod))
	if err != nil {
		return err
	}
	catalog := geo.LibyaCatalog(distance)

	view := maprender.Viewpoint{
		Center: models.Coord{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon},
		Zoom:   cfg.MapZoom,
	}
	var renderer maprender.Renderer = maprender.NewHTMLRenderer(cfg.MapDir, view)
	if cfg.MapRenderer == "static" {
		r, err := maprender.NewGoogleStaticMapRenderer(cfg.MapsAPIKey, cfg.MapDir, view)
		if err != nil {
			return fmt.Errorf("static map renderer: %w", err)
		}
		renderer = r
	}

	dispatchers := dispatch.Multi{&dispatch.LogDispatcher{Logger: logger}}
	if len(cfg.KafkaBrokers) > 0 {
		kd := dispatch.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := kd.Close(); err != nil {
				logger.Warn("kafka_close_failed", "error", err)
			}
		}()
		dispatchers = append(dispatchers, kd)
		logger.Info("kafka_dispatch_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	sys := taxi.NewSystem(catalog, taxi.Options{
		PricePerKm: cfg.PricePerKm,
		Currency:   cfg.Currency,
		Renderer:   renderer,
		Dispatcher: dispatchers,
		Logger:     logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverDone := make(chan struct{})
	if cfg.MapServerAddr != "" {
		srv := httpapi.NewServer(sys, logger)
		go func() {
			defer close(serverDone)
			logger.Info("map_server_listening", "addr", cfg.MapServerAddr)
			if err := srv.Run(ctx, cfg.MapServerAddr); err != nil {
				logger.Error("map_server_failed", "error", err)
			}
		}()
	} else {
		close(serverDone)
	}

	// The menu blocks on stdin, so a signal abandons it rather than waiting
	// for the next line.
	menuDone := make(chan error, 1)
	go func() {
		opener := cli.BrowserOpener{ServerAddr: cfg.MapServerAddr}
		menuDone <- cli.New(sys, os.Stdin, os.Stdout, opener).Run(ctx)
	}()

	select {
	case err = <-menuDone:
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
	}
	cancel()
	<-serverDone
	return err
}

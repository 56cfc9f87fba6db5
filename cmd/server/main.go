package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"

	"github.com/murkotick/catalog-sale-console/internal/adapters/shopify"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/confirm"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/console"
	contracts "github.com/murkotick/catalog-sale-console/internal/app/sale/contracts"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/queries/list_items"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/repo"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/selection"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/bulk_update"
	"github.com/murkotick/catalog-sale-console/internal/app/sale/usecases/update_item"
	"github.com/murkotick/catalog-sale-console/internal/config"
	"github.com/murkotick/catalog-sale-console/internal/pkg/clock"
	committer "github.com/murkotick/catalog-sale-console/internal/pkg/committer"
	"github.com/murkotick/catalog-sale-console/internal/pkg/logging"
	grpcsale "github.com/murkotick/catalog-sale-console/internal/transport/grpc/sale"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		_ = level.Info(logger).Log("msg", "shutdown signal received")
		cancel()
	}()

	catalog, err := shopify.NewClient(shopify.Config{
		StoreURL:    cfg.ShopifyStoreURL,
		AccessToken: cfg.ShopifyAccessToken,
		APIVersion:  cfg.ShopifyAPIVersion,
		PageSize:    cfg.ShopifyPageSize,
		Timeout:     cfg.RequestTimeout,
	}, nil, logger)
	if err != nil {
		log.Fatalf("shopify client: %v", err)
	}

	store, closeStore, err := openPresetStore(ctx, cfg)
	if err != nil {
		log.Fatalf("preset store (%s): %v", cfg.PresetBackend, err)
	}
	defer closeStore()

	presets, err := repo.NewPresetRepo(ctx, store, clock.RealClock{}, logger)
	if err != nil {
		log.Fatalf("load presets: %v", err)
	}

	view := list_items.NewHandler(catalog)
	if err := view.Refresh(ctx); err != nil {
		_ = level.Warn(logger).Log("msg", "initial catalog fetch failed", "err", err)
	}
	sel := selection.NewStore()

	c := console.New(console.Deps{
		Gate:      confirm.NewGate(),
		Selection: sel,
		Catalog:   view,
		Bulk:      bulk_update.NewInteractor(catalog, sel, view, cfg.BulkConcurrency, logger),
		Items:     update_item.NewInteractor(catalog, view, logger),
		Presets:   presets,
		Defaults: console.Defaults{
			PercentOff: cfg.DefaultPercentOff,
			ImageURL:   cfg.DefaultSaleImageURL,
		},
		Logger: logger,
	})

	// gRPC server
	srv := grpc.NewServer()
	grpcsale.RegisterConsoleServer(srv, grpcsale.NewHandler(c))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		_ = level.Info(logger).Log("msg", "gRPC server listening", "addr", cfg.GRPCAddr, "preset_backend", cfg.PresetBackend)
		if err := srv.Serve(lis); err != nil {
			_ = level.Error(logger).Log("msg", "grpc serve", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		srv.Stop()
	}

	_ = level.Info(logger).Log("msg", "server stopped")
}

// openPresetStore connects the configured backend. The returned func releases it.
func openPresetStore(ctx context.Context, cfg *config.Config) (contracts.PresetStore, func(), error) {
	switch cfg.PresetBackend {
	case config.BackendRedis:
		client, err := repo.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		s := repo.NewRedisStore(client, cfg.PresetKey)
		return s, func() { _ = s.Close() }, nil

	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewSpannerStore(client, committer.NewAdapter(client), cfg.PresetKey), client.Close, nil

	case config.BackendPostgres:
		db, err := repo.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		s := repo.NewPostgresStore(db, cfg.PresetKey)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, func() { _ = db.Close() }, nil

	default:
		db, err := repo.OpenBadger(cfg.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewBadgerStore(db, cfg.PresetKey), func() { _ = db.Close() }, nil
	}
}

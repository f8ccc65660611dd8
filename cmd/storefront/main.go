package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/admin"
	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/pkg/kit"
)

const startupTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	if cfg.HashPassword != "" {
		hash, err := admin.HashPassword(cfg.HashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	service := "storefront"
	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		log.Fatal("open catalog storage failed", zap.String("storage", cfg.Storage), zap.Error(err))
	}
	defer closeKV()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := catalog.NewStore(kv, catalog.WithLogger(log), catalog.WithMetrics(reg))
	if err := store.Init(ctx); err != nil {
		log.Warn("catalog init incomplete", zap.Error(err))
	}

	adm, err := admin.NewService(cfg.AdminPasswordHash, cfg.JWTSecret)
	if err != nil {
		log.Fatal("init admin failed", zap.Error(err))
	}
	if !adm.Enabled() {
		log.Warn("admin password not configured, catalog writes are open")
	}

	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, catalog.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         reg,
		MetricsEnabled:   cfg.MetricsEnabled,
		MetricsToken:     cfg.MetricsToken,
		Admin:            adm,
		WriteLimitPerMin: cfg.WriteLimitPerMin,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}

func openKV(ctx context.Context, cfg config.Config) (catalog.KV, func(), error) {
	switch cfg.Storage {
	case config.StorageLevelDB:
		kv, err := catalog.OpenLevelKV(cfg.LevelDBPath)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil

	case config.StoragePostgres:
		db, err := catalog.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		kv := catalog.NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kv, func() { _ = db.Close() }, nil

	default:
		return catalog.NewMemKV(), func() {}, nil
	}
}

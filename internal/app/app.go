package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/catalog"
	"storefront/internal/config"
	httpapi "storefront/internal/http"
	"storefront/internal/repository"
	"storefront/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Shop bundles the stores and use cases over one persistence port.
type Shop struct {
	Services httpapi.Services
	closeKV  func() error
}

// Open builds the shop from cfg. The caller must Close it.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Shop, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kv, closeKV, err := openKV(cfg)
	if err != nil {
		return nil, err
	}
	shop, err := build(ctx, cfg, kv, logger)
	if err != nil {
		_ = closeKV()
		return nil, err
	}
	shop.closeKV = closeKV
	return shop, nil
}

func openKV(cfg config.Config) (repository.KV, func() error, error) {
	if cfg.InMemory() {
		return repository.NewMemoryKV(), func() error { return nil }, nil
	}
	db, err := repository.NewSQLiteKV(cfg.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return db, db.Close, nil
}

func build(ctx context.Context, cfg config.Config, kv repository.KV, logger *zap.Logger) (*Shop, error) {
	seed, err := catalog.Load(cfg.CatalogSeed)
	if err != nil {
		return nil, err
	}

	// stores load their persisted state concurrently; each owns its keys
	var (
		cart    *service.CartService
		orders  *service.OrderService
		session *service.SessionService
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cart, err = service.NewCartService(gctx, kv, logger.Named("cart"))
		return err
	})
	g.Go(func() (err error) {
		orders, err = service.NewOrderService(gctx, kv, service.WithLogger(logger.Named("orders")))
		return err
	})
	g.Go(func() (err error) {
		session, err = service.NewSessionService(gctx, kv, logger.Named("session"))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	creds := service.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	return &Shop{
		Services: httpapi.Services{
			Catalog:  service.NewCatalogService(seed, logger.Named("catalog")),
			Cart:     cart,
			Orders:   orders,
			Session:  session,
			Admin:    service.NewAdminService(kv, creds, logger.Named("admin")),
			Checkout: service.NewCheckoutService(cart, orders, session, logger.Named("checkout")),
		},
	}, nil
}

func (s *Shop) Close() error {
	if s.closeKV == nil {
		return nil
	}
	return s.closeKV()
}

// Serve runs the HTTP API on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, shop *Shop, addr string, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return serve(ctx, shop, ln, logger)
}

func serve(ctx context.Context, shop *Shop, ln net.Listener, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := httpapi.NewServer(shop.Services, logger.Named("http"))
	httpServer := &http.Server{
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}

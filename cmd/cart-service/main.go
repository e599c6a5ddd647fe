package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prakritistore/cart-service/internal/api"
	"github.com/prakritistore/cart-service/internal/api/middleware"
	"github.com/prakritistore/cart-service/internal/cart"
	"github.com/prakritistore/cart-service/internal/checkout"
	"github.com/prakritistore/cart-service/internal/newsletter"
	"github.com/prakritistore/cart-service/internal/prefs"
	"github.com/prakritistore/cart-service/internal/storage"
	"github.com/prakritistore/cart-service/internal/telemetry"
	"github.com/prakritistore/cart-service/pkg/config"
)

func main() {
	telemetry.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load", "error", err)
		os.Exit(1)
	}

	kv, err := newStore(cfg)
	if err != nil {
		slog.Error("storage init", "error", err)
		os.Exit(1)
	}

	coupons := checkout.DefaultCoupons()
	if cfg.CouponFile != "" {
		if coupons, err = checkout.LoadCouponFile(cfg.CouponFile); err != nil {
			slog.Error("coupon file load", "error", err)
			os.Exit(1)
		}
	}

	pricing := checkout.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
	}

	cartStore := cart.NewStore(context.Background(), kv)
	couponTable := checkout.NewCouponTable(coupons)
	checkoutSvc := checkout.NewService(kv, cartStore, couponTable, pricing)

	handler := api.NewRouter(api.Deps{
		Cart:       cartStore,
		Checkout:   checkoutSvc,
		Coupons:    couponTable,
		Newsletter: newsletter.NewService(kv),
		Prefs:      prefs.NewManager(kv),
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("http server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	slog.Info("starting cart-service", "addr", cfg.Addr, "backend", cfg.StoreBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("listen", "error", err)
		os.Exit(1)
	}

	<-idleConnsClosed
	slog.Info("server stopped")
}

func newStore(cfg config.Config) (storage.KV, error) {
	if cfg.StoreBackend == config.BackendRedis {
		return storage.NewRedisStore(cfg.RedisAddr, "storefront")
	}
	return storage.NewFileStore(cfg.DataDir)
}

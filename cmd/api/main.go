package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pasalhub/pasal/internal/auth"
	"github.com/pasalhub/pasal/internal/cart"
	"github.com/pasalhub/pasal/internal/catalog"
	"github.com/pasalhub/pasal/internal/config"
	"github.com/pasalhub/pasal/internal/httpx"
	kafkax "github.com/pasalhub/pasal/internal/kafka"
	"github.com/pasalhub/pasal/internal/metrics"
	"github.com/pasalhub/pasal/internal/obs"
	"github.com/pasalhub/pasal/internal/orders"
	"github.com/pasalhub/pasal/internal/postgres"
	"github.com/pasalhub/pasal/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := obs.InitLogger(cfg.ServiceName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	placed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	placed.Start(ctx)
	statusChanged := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	statusChanged.Start(ctx)

	catalogStore := &catalog.PGStore{DB: db}
	cartStore := &cart.PGStore{DB: db}
	orderStore := &orders.PGStore{DB: db}
	userStore := &auth.PGStore{DB: db}

	authSvc := &auth.Service{Users: userStore, Secret: []byte(cfg.JWTSecret)}
	cartSvc := &cart.Service{Carts: cartStore, Catalog: catalogStore}
	orderSvc := &orders.Service{
		Orders:       orderStore,
		Catalog:      catalogStore,
		Carts:        cartStore,
		Policy:       orders.StatusPolicy{AllowReopen: cfg.AllowStatusReopen},
		ServiceName:  cfg.ServiceName,
		PlacedEvents: placed,
		StatusEvents: statusChanged,
	}
	feed := &orders.Feed{Orders: orderStore, UrgentThreshold: cfg.UrgentThreshold}

	m := metrics.New("api")
	router := httpx.NewRouter(m)
	(&httpx.AuthHandler{Auth: authSvc}).Register(router)
	(&httpx.ProductsHandler{Catalog: catalogStore, Auth: authSvc}).Register(router)
	(&httpx.CartHandler{Cart: cartSvc, Auth: authSvc}).Register(router)
	(&httpx.OrdersHandler{
		Orders:  orderSvc,
		Feed:    feed,
		Auth:    authSvc,
		Redis:   rdb,
		Metrics: m,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	placed.Close()
	statusChanged.Close()
	cancel()
	placed.WaitClosed()
	statusChanged.WaitClosed()
}

package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pasalhub/pasal/internal/config"
	kafkax "github.com/pasalhub/pasal/internal/kafka"
	"github.com/pasalhub/pasal/internal/notifier"
	"github.com/pasalhub/pasal/internal/obs"
	"github.com/pasalhub/pasal/internal/orders"
	"github.com/pasalhub/pasal/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := obs.InitLogger(cfg.ServiceName + "-notifier")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notifier.Service{Redis: rdb, ServiceName: cfg.ServiceName + "-notifier"}

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderPlaced, workers)

	go func() {
		log.Info("notifier consumer started", "group", group, "topic", orders.TopicOrderPlaced, "workers", workers)
		if err := cons.Start(ctx, svc.HandleOrderPlaced); err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

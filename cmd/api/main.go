package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/auth"
	"github.com/clerin-codes/canvas/internal/cart"
	"github.com/clerin-codes/canvas/internal/catalog"
	"github.com/clerin-codes/canvas/internal/checkout"
	"github.com/clerin-codes/canvas/internal/config"
	"github.com/clerin-codes/canvas/internal/httpx"
	kafkax "github.com/clerin-codes/canvas/internal/kafka"
	"github.com/clerin-codes/canvas/internal/notify"
	"github.com/clerin-codes/canvas/internal/orders"
	"github.com/clerin-codes/canvas/internal/postgres"
	"github.com/clerin-codes/canvas/internal/redisx"
	"github.com/clerin-codes/canvas/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB + migrations
	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer (fire-and-forget, jalan di goroutine sendiri)
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderConfirmed, 1024, log)
	prod.Start(ctx)

	// wiring
	mailer := &notify.SendGridMailer{APIKey: cfg.SendGridKey, From: cfg.EmailFrom, Log: log}
	usersRepo := &users.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	cartCache := &cart.RedisCache{R: rdb}
	cartSvc := cart.NewService(&cart.Store{DB: db}, cartCache, log)
	checkoutSvc := checkout.NewService(
		&checkout.PGStore{DB: db},
		prod,
		cartCache,
		&checkout.RedisStatusCache{R: rdb, Log: log},
		log,
		cfg.ServiceName,
	)

	authmw := auth.Middleware(cfg.JWTSecret)
	router := httpx.NewRouter()
	(&httpx.AuthHandler{Users: usersRepo, Mailer: mailer, Secret: cfg.JWTSecret, TTL: cfg.JWTTTL, Log: log}).Register(router, authmw)
	(&httpx.ProductsHandler{Catalog: catalogRepo, Log: log}).Register(router)
	(&httpx.CartHandler{Svc: cartSvc, Log: log}).Register(router, authmw)
	(&httpx.OrdersHandler{Checkout: checkoutSvc, Ledger: &orders.Ledger{DB: db}, Users: usersRepo, Log: log}).Register(router, authmw)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	prod.WaitClosed() // drain
}

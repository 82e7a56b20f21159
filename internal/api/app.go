package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketpix/config"
	"ticketpix/internal/api/consumers"
	"ticketpix/internal/api/domain/checkout"
	"ticketpix/internal/api/domain/order"
	"ticketpix/internal/api/domain/pix"
	"ticketpix/internal/api/domain/product"
	"ticketpix/internal/api/external/kafka"
	"ticketpix/internal/api/external/opensearch"
	"ticketpix/internal/api/external/telegram"
	"ticketpix/internal/api/handlers"
	"ticketpix/internal/api/messaging"
	"ticketpix/internal/api/migrations"
	order_repo "ticketpix/internal/api/repo/order"
	product_repo "ticketpix/internal/api/repo/product"
	session_repo "ticketpix/internal/api/repo/session"
	"ticketpix/pkg/health"
	"ticketpix/pkg/postgres"

	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) error {
	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("api - Run - postgres.New: %w", err)
	}
	defer pool.Close()

	if err := migrations.Apply(cfg.PgURL); err != nil {
		return fmt.Errorf("api - Run - migrations.Apply: %w", err)
	}

	healthRegistry := health.NewRegistry(health.NewPostgresChecker(pool.Pool))

	sessions, closeSessions := newSessionStore(cfg, healthRegistry)
	defer closeSessions()

	publisher := newPublisher(cfg, healthRegistry)
	defer publisher.Close()

	var index product.ProductIndex
	if len(cfg.OpensearchUrls) > 0 {
		productIndex, err := opensearch.NewProductIndex(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexProducts)
		if err != nil {
			return fmt.Errorf("api - Run - opensearch.NewProductIndex: %w", err)
		}
		index = productIndex
		slog.Info("Product search backed by OpenSearch", "index", cfg.OpensearchIndexProducts)
	}

	// Services
	productService := product.NewProductService(product_repo.NewPgProductRepo(pool), index)
	orderService := order.NewOrderService(order_repo.NewPgOrderRepo(pool), productService, publisher)
	generator := pix.NewGenerator()
	checkoutService := checkout.NewService(sessions, productService, orderService, generator, checkout.Config{
		MaxAmount:          cfg.PixMaxAmount,
		DefaultMaxQuantity: cfg.TicketMaxQuantity,
		CompanyPixKey:      cfg.PixKey,
	})

	router := NewRouter(
		handlers.NewProductHandler(productService),
		handlers.NewOrderHandler(orderService),
		handlers.NewPixHandler(generator, cfg.PixMaxAmount),
		handlers.NewCheckoutHandler(checkoutService),
		healthRegistry,
	)
	engine := NewGinEngine()
	router.SetUp(engine)

	if cfg.KafkaEnabled() {
		notifier, err := newNotifier(cfg)
		if err != nil {
			return fmt.Errorf("api - Run - newNotifier: %w", err)
		}
		StartWorkers(ctx, cfg, consumers.NewOrderNotificationController(notifier))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API HTTP server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("api - Run - ListenAndServe: %w", err)
	}

	slog.Info("Shutting down API service gracefully...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

func newSessionStore(cfg config.Config, registry *health.Registry) (checkout.SessionStore, func()) {
	if cfg.RedisAddr == "" {
		slog.Info("Checkout sessions kept in memory")
		return session_repo.NewMemoryStore(cfg.CheckoutSessionTTL), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	registry.Register(health.NewRedisChecker(client))
	slog.Info("Checkout sessions kept in Redis", "addr", cfg.RedisAddr)

	return session_repo.NewRedisStore(client, cfg.CheckoutSessionTTL), func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close redis client", slog.Any("error", err))
		}
	}
}

func newPublisher(cfg config.Config, registry *health.Registry) messaging.Publisher {
	if !cfg.KafkaEnabled() {
		slog.Info("Kafka not configured, order events are not published")
		return messaging.NoopPublisher{}
	}

	registry.Register(health.NewKafkaChecker(cfg.KafkaBrokers))
	return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
}

func newNotifier(cfg config.Config) (consumers.Notifier, error) {
	if cfg.TelegramBotToken == "" {
		slog.Info("Telegram not configured, admin notifications go to the log")
		return telegram.LogNotifier{}, nil
	}
	return telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
}

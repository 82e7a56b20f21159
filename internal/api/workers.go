package api

import (
	"context"
	"log/slog"

	"ticketpix/config"
	"ticketpix/internal/api/consumers"
	"ticketpix/internal/api/external/kafka"
	"ticketpix/internal/api/messaging"
)

// StartWorkers starts the order event consumer that notifies admins.
// It runs in a separate goroutine and will stop when ctx is cancelled.
func StartWorkers(ctx context.Context, cfg config.Config, controller *consumers.OrderNotificationController) {
	dlq := kafka.NewDLQPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersDLQTopic, cfg.KafkaOrdersTopic)

	handler := messaging.WithMetrics(
		cfg.KafkaOrdersTopic,
		cfg.KafkaNotifierConsumerGroup,
		messaging.WithDLQ(
			messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
			dlq,
		),
	)
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaOrdersTopic, cfg.KafkaNotifierConsumerGroup)
	runner := messaging.NewRunner([]messaging.Worker{consumer}, handler)

	go func() {
		defer dlq.Close()

		slog.Info("Starting order notification consumer",
			"topic", cfg.KafkaOrdersTopic,
			"group", cfg.KafkaNotifierConsumerGroup)
		if err := runner.Start(ctx); err != nil {
			slog.Error("Order notification runner failed", slog.Any("error", err))
		}
	}()
}

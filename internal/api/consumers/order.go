package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"ticketpix/internal/api/domain/order"
	"ticketpix/internal/api/domain/pix"
	"ticketpix/internal/api/messaging"
)

// Notifier delivers a text message to shop administrators.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// OrderNotificationController turns order events into admin notifications.
type OrderNotificationController struct {
	notifier Notifier
}

func NewOrderNotificationController(n Notifier) *OrderNotificationController {
	return &OrderNotificationController{notifier: n}
}

// HandleMessage processes a single order event. Undecodable messages are
// permanent failures; notifier errors are returned for retry.
func (c *OrderNotificationController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal envelope",
			"key", string(key),
			slog.Any("error", err))
		return fmt.Errorf("%w: unmarshal envelope: %v", messaging.ErrPermanent, err)
	}

	slog.DebugContext(ctx, "Processing order event",
		"event_id", env.EventID,
		"key", env.Key,
		"type", env.Type)

	var event order.Event
	if err := json.Unmarshal(env.Payload, &event); err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal order event",
			"event_id", env.EventID,
			slog.Any("error", err))
		return fmt.Errorf("%w: unmarshal order event: %v", messaging.ErrPermanent, err)
	}

	text, ok := notificationText(env.Type, event)
	if !ok {
		slog.DebugContext(ctx, "Order event ignored", "event_id", env.EventID, "type", env.Type)
		return nil
	}

	if err := c.notifier.Notify(ctx, text); err != nil {
		slog.ErrorContext(ctx, "Failed to notify admins",
			"event_id", env.EventID,
			"order_id", event.Order.ID,
			slog.Any("error", err))
		return err
	}

	slog.InfoContext(ctx, "Admin notified about order",
		"event_id", env.EventID,
		"order_id", event.Order.ID,
		"type", env.Type)
	return nil
}

func notificationText(eventType string, e order.Event) (string, bool) {
	o := e.Order
	var b strings.Builder

	switch eventType {
	case order.EventCreated:
		fmt.Fprintf(&b, "Novo pedido %s\n", o.ID)
		fmt.Fprintf(&b, "%s x%d: %s\n", o.ProductName, o.Quantity, pix.FormatBRL(o.TotalAmount))
		fmt.Fprintf(&b, "Cliente: %s (%s, %s)", o.CustomerName, o.CustomerPhone, o.CustomerEmail)
	case order.EventStatusChanged:
		prev := "?"
		if e.PreviousStatus != nil {
			prev = string(*e.PreviousStatus)
		}
		fmt.Fprintf(&b, "Pedido %s: %s -> %s\n", o.ID, prev, o.PaymentStatus)
		fmt.Fprintf(&b, "%s x%d: %s", o.ProductName, o.Quantity, pix.FormatBRL(o.TotalAmount))
	default:
		return "", false
	}

	return b.String(), true
}

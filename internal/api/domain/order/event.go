package order

const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
)

// Event is the payload of order envelopes published to the broker.
type Event struct {
	Order          Order          `json:"order"`
	PreviousStatus *PaymentStatus `json:"previous_status,omitempty"`
}

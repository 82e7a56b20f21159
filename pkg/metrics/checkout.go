package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CheckoutTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "transitions_total",
			Help:      "Checkout wizard transitions by flow, action and result",
		},
		[]string{"flow", "action", "result"},
	)

	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders created",
		},
	)
)

func init() {
	Registry.MustRegister(CheckoutTransitions, OrdersCreated)
}

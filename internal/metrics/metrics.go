package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the intake flow, exposed on /metrics by the HTTP server.
var (
	InboundTurns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "helpline",
		Name:      "inbound_turns_total",
		Help:      "Inbound messages handled by the transition engine.",
	})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "helpline",
		Name:      "validation_failures_total",
		Help:      "Field validation rejections, labeled by conversation state.",
	}, []string{"state"})

	ComplaintsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "helpline",
		Name:      "complaints_finalized_total",
		Help:      "Complaint records created from completed conversations.",
	})

	SessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "helpline",
		Name:      "sessions_expired_total",
		Help:      "Sessions removed by the inactivity timeout.",
	})

	DeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "helpline",
		Name:      "delivery_failures_total",
		Help:      "Complaint documents that could not be delivered.",
	})
)

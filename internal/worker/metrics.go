package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_outbox_events_published_total",
		Help: "Outbox events published to the broker.",
	}, []string{"outbox"})

	outboxErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_outbox_publish_errors_total",
		Help: "Failed outbox claim or publish attempts.",
	}, []string{"outbox"})

	eventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_events_processed_total",
		Help: "Broker events handled, by queue and outcome.",
	}, []string{"queue", "outcome"})
)

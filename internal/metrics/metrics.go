package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Notification feed entries created, by kind.",
	}, []string{"kind"})

	NotificationsRetracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_retracted_total",
		Help: "Notification tuple retractions performed, by kind.",
	}, []string{"kind"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_dispatch_failures_total",
		Help: "Best-effort notification deliveries that failed and were swallowed.",
	})

	Engagements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engagements_total",
		Help: "Engagement mutations accepted, by action.",
	}, []string{"action"})
)

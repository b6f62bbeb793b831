package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActivityLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_log_failures_total",
			Help: "Activity entries that could not be written",
		},
	)
	NotificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Notifications that could not be stored",
		},
	)
	NotificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Notifications created, by type",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(ActivityLogFailures)
	prometheus.MustRegister(NotificationFailures)
	prometheus.MustRegister(NotificationsCreated)
}

package ws

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_active_connections",
		Help: "Open notification websocket connections",
	})
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_messages_sent_total",
		Help: "Messages queued to websocket clients",
	})
	MessagesDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_messages_dropped_total",
		Help: "Messages dropped because a client buffer was full",
	})
)

func init() {
	prometheus.MustRegister(ActiveConnections, MessagesSent, MessagesDropped)
}

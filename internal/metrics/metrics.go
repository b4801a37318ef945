package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	inboundEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wa_inbound_events_total",
			Help: "Inbound webhook messages by provider message type.",
		},
		[]string{"type"},
	)

	outboundMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wa_outbound_messages_total",
			Help: "Outbound messages by kind and delivery outcome.",
		},
		[]string{"kind", "ok"},
	)

	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Finalized orders by payment method.",
		},
		[]string{"payment"},
	)
)

func init() {
	register(inboundEvents, outboundMessages, ordersPlaced)
}

func InboundEvent(msgType string) {
	inboundEvents.WithLabelValues(msgType).Inc()
}

func OutboundMessage(kind string, ok bool) {
	outboundMessages.WithLabelValues(kind, strconv.FormatBool(ok)).Inc()
}

func OrderPlaced(payment string) {
	ordersPlaced.WithLabelValues(payment).Inc()
}

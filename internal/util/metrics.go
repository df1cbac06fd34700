package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Total number of orders stored",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of order and booking submissions rejected",
	}, []string{"reason"})

	BookingsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_submitted_total",
		Help: "Total number of bookings stored",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "status_transitions_total",
		Help: "Total number of fulfillment status transitions written",
	}, []string{"from", "to"})

	GuardPromptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_prompts_total",
		Help: "Total number of transitions held for confirmation",
	}, []string{"code"})

	PaymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Total number of payments recorded",
	}, []string{"method"})

	PaymentsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_deleted_total",
		Help: "Total number of payments deleted",
	})

	PaymentAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_amount_total",
		Help: "Sum of recorded payment amounts",
	})

	PaymentWriteLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_write_latency_seconds",
		Help:    "Latency of payment writes including status recomputation",
		Buckets: prometheus.DefBuckets,
	})

	CatalogCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_requests_total",
		Help: "Catalog cache lookups by result",
	}, []string{"result"})

	HistoryEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "status_history_entries_total",
		Help: "Total number of status history entries projected",
	}, []string{"field"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

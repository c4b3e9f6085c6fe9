package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	DiscoveryQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_discovery_query_duration_seconds",
			Help:    "Duration of nearby vacancies queries in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
	FanoutDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_fanout_deliveries_total",
			Help: "Total number of subscriber notification attempts by result.",
		},
		[]string{"result"},
	)
	FanoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_fanout_duration_seconds",
			Help:    "Duration of each approval fanout in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		},
	)
	ModerationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_moderation_transitions_total",
			Help: "Total number of vacancy moderation transitions.",
		},
		[]string{"action"},
	)
	PromotionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_promotions_total",
			Help: "Total number of applied vacancy promotions.",
		},
		[]string{"type"},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(DiscoveryQueryDuration)
	prometheus.MustRegister(FanoutDeliveries)
	prometheus.MustRegister(FanoutDuration)
	prometheus.MustRegister(ModerationTransitions)
	prometheus.MustRegister(PromotionsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}

// Package metrics exposes search progress as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eth_vanity"

var (
	prometheusAttempts   prometheus.Counter
	prometheusRounds     prometheus.Counter
	prometheusThroughput prometheus.Gauge
	prometheusWorkers    prometheus.Gauge
	prometheusRoundTime  prometheus.Histogram
)

var prometheusMetricsInitOnce sync.Once

// Init registers the metrics with the default registry. Safe to call more
// than once.
func Init() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_total",
		Help:      "Number of candidate keypairs generated",
	})
	prometheusRounds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rounds_total",
		Help:      "Number of completed search rounds",
	})
	prometheusThroughput = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "addresses_per_second",
		Help:      "Addresses generated during the last sampling second",
	})
	prometheusWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "workers",
		Help:      "Number of workers in the current round",
	})
	prometheusRoundTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "round_duration_seconds",
		Help:      "Time taken to find a match",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
	})
}

// RoundStarted records the pool size of a new round
func RoundStarted(workers int) {
	Init()
	prometheusWorkers.Set(float64(workers))
}

// Sampled records one throughput sample
func Sampled(attempts uint32) {
	Init()
	prometheusThroughput.Set(float64(attempts))
	prometheusAttempts.Add(float64(attempts))
}

// RoundCompleted records a finished round and the attempts not yet sampled
func RoundCompleted(d time.Duration, unsampled uint32) {
	Init()
	prometheusRounds.Inc()
	prometheusRoundTime.Observe(d.Seconds())
	prometheusAttempts.Add(float64(unsampled))
	prometheusWorkers.Set(0)
}

// Serve exposes /metrics on addr until ctx is done
func Serve(ctx context.Context, addr string) error {
	Init()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

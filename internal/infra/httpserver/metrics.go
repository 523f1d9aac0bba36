package httpserver

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	_metricPrefix = "ecotronix_hub"
	// Telemetry lookups carry a whole device topic in the path.
	_telemetryRoute = "/v1/telemetry/"
)

var errHijackUnsupported = errors.New("response writer does not support hijacking")

type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

var (
	instrumentsMu sync.Mutex
	instruments   *httpInstruments
)

// loadInstruments registers the HTTP instruments against the global meter
// provider on first use.
func loadInstruments() *httpInstruments {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()

	if instruments != nil {
		return instruments
	}

	meter := otel.GetMeterProvider().Meter(_metricPrefix)
	duration, err := meter.Float64Histogram(
		_metricPrefix+".http.request.duration.seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		panic(err)
	}
	total, err := meter.Int64Counter(
		_metricPrefix+".http.requests.total",
		metric.WithDescription("HTTP requests served"),
	)
	if err != nil {
		panic(err)
	}
	active, err := meter.Int64UpDownCounter(
		_metricPrefix+".http.requests.active",
		metric.WithDescription("HTTP requests in flight"),
	)
	if err != nil {
		panic(err)
	}

	instruments = &httpInstruments{duration: duration, total: total, active: active}
	return instruments
}

func MetricsMiddleware() func(http.Handler) http.Handler {
	m := loadInstruments()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.endpoint", normalizeEndpoint(r.URL.Path)),
			}

			m.active.Add(r.Context(), 1, metric.WithAttributes(route...))
			defer m.active.Add(context.WithoutCancel(r.Context()), -1, metric.WithAttributes(route...))

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			attrs := metric.WithAttributes(append(route, attribute.Int("http.status_code", sw.status))...)
			m.duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
			m.total.Add(r.Context(), 1, attrs)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack keeps the websocket upgrade working behind the middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackUnsupported
	}
	return hijacker.Hijack()
}

func normalizeEndpoint(path string) string {
	switch {
	case path == "" || path == "/":
		return "root"
	case strings.HasPrefix(path, _telemetryRoute) && len(path) > len(_telemetryRoute):
		return _telemetryRoute + "_topic"
	default:
		return path
	}
}

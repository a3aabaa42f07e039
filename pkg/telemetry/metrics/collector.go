package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the Prometheus instruments for parsing and imports.
type Collector struct {
	objectsTotal    *prometheus.CounterVec
	attributesTotal prometheus.Counter
	bytesTotal      prometheus.Counter
	errorsTotal     *prometheus.CounterVec
	importDuration  prometheus.Histogram
	importObjects   prometheus.Histogram
	batchesTotal    prometheus.Counter
	lastImportTime  prometheus.Gauge
}

// NewCollector creates a collector registered against reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry or a fresh
// registry for one-shot commands and tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		objectsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "callisto_objects_parsed_total",
			Help: "Total number of RPSL objects parsed, by class.",
		}, []string{"class"}),

		attributesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "callisto_attributes_parsed_total",
			Help: "Total number of RPSL attributes parsed.",
		}),

		bytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "callisto_source_bytes_total",
			Help: "Total number of source bytes read, after decompression.",
		}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "callisto_parse_errors_total",
			Help: "Total number of parse and projection errors, by type.",
		}, []string{"type"}),

		importDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "callisto_import_duration_seconds",
			Help: "Duration of dump imports.",
			// Registry dumps range from test fixtures to multi-GB files.
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 1800},
		}),

		importObjects: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "callisto_import_objects",
			Help:    "Objects per import batch.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		}),

		batchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "callisto_import_batches_total",
			Help: "Total number of import batches completed.",
		}),

		lastImportTime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "callisto_last_import_timestamp_seconds",
			Help: "Unix timestamp of the last completed import.",
		}),
	}
}

// RecordObject counts one parsed object and its attributes.
func (c *Collector) RecordObject(class string, attributes int) {
	c.objectsTotal.WithLabelValues(class).Inc()
	c.attributesTotal.Add(float64(attributes))
}

// RecordBytes counts source bytes read.
func (c *Collector) RecordBytes(n int64) {
	c.bytesTotal.Add(float64(n))
}

// RecordError counts one parse or projection error by type tag
// (syntax, schema, io).
func (c *Collector) RecordError(errType string) {
	c.errorsTotal.WithLabelValues(errType).Inc()
}

// RecordImport records a completed import batch.
func (c *Collector) RecordImport(duration time.Duration, objects int) {
	c.importDuration.Observe(duration.Seconds())
	c.importObjects.Observe(float64(objects))
	c.batchesTotal.Inc()
	c.lastImportTime.SetToCurrentTime()
}

package mainboilerplate

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// DiagnosticsConfig configures local application diagnostics.
type DiagnosticsConfig struct {
	MetricsFile string `long:"metrics-file" env:"METRICS_FILE" description:"Path to which Prometheus metrics are written, in text format, as the program exits"`
}

// InitDiagnostics registers |collectors| with the default Prometheus registry,
// and returns a closure which should be deferred. The closure writes gathered
// metrics to the configured MetricsFile, if any.
func InitDiagnostics(cfg DiagnosticsConfig, collectors ...prometheus.Collector) func() {
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				Must(err, "failed to register collector")
			}
		}
	}

	return func() {
		if err := WriteMetrics(cfg, prometheus.DefaultGatherer); err != nil {
			log.WithField("err", err).Warn("failed to write metrics")
		}
	}
}

// WriteMetrics writes metrics of the Gatherer to the configured MetricsFile.
// It does nothing if no MetricsFile is configured.
func WriteMetrics(cfg DiagnosticsConfig, g prometheus.Gatherer) error {
	if cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(cfg.MetricsFile, g); err != nil {
		return errors.WithMessagef(err, "writing %s", cfg.MetricsFile)
	}
	log.WithField("path", cfg.MetricsFile).Debug("wrote metrics")
	return nil
}

// Must panics if |err| is non-nil, supplying |msg| and |extra| as
// formatter and fields of the generated panic.
func Must(err error, msg string, extra ...interface{}) {
	if err == nil {
		return
	}
	var f = log.Fields{"err": err}
	for i := 0; i+1 < len(extra); i += 2 {
		f[extra[i].(string)] = extra[i+1]
	}
	log.WithFields(f).Panic(msg)
}

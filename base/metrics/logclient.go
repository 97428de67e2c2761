package metrics

import (
	"github.com/x-xyz/auctionhouse/base/log"
)

// logClient takes the place of the statsd agent when datadog_host is unset.
// Every bump becomes one debug line, the sample rate is ignored.
type logClient struct {
	logger log.Logger
}

func newLogClient() *logClient {
	return &logClient{logger: log.Log().WithField("sink", "metrics")}
}

func (lc *logClient) write(kind, name string, value interface{}, tags []string) error {
	lc.logger.WithFields(log.Fields{
		"kind": kind,
		"key":  name,
		"val":  value,
		"tags": tags,
	}).Debug("metric")
	return nil
}

func (lc *logClient) Gauge(name string, value float64, tags []string, _ float64) error {
	return lc.write("gauge", name, value, tags)
}

func (lc *logClient) Count(name string, value int64, tags []string, _ float64) error {
	return lc.write("count", name, value, tags)
}

func (lc *logClient) Histogram(name string, value float64, tags []string, _ float64) error {
	return lc.write("histogram", name, value, tags)
}

// TimeInMilliseconds logs the elapsed milliseconds of a BumpTime
func (lc *logClient) TimeInMilliseconds(name string, value float64, tags []string, _ float64) error {
	return lc.write("timeMs", name, value, tags)
}

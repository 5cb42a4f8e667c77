package clock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// healthFunc 返回 (ok, offset, lastSync, lastError)
type healthFunc func() (bool, time.Duration, time.Time, error)

type clockCollector struct {
	fetch healthFunc

	offsetSeconds   *prometheus.Desc
	lastSyncSeconds *prometheus.Desc
	healthy         *prometheus.Desc
}

func (c *clockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.offsetSeconds
	ch <- c.lastSyncSeconds
	ch <- c.healthy
}

func (c *clockCollector) Collect(ch chan<- prometheus.Metric) {
	ok, offset, lastSync, _ := c.fetch()
	ch <- prometheus.MustNewConstMetric(c.offsetSeconds, prometheus.GaugeValue, offset.Seconds())
	ch <- prometheus.MustNewConstMetric(c.lastSyncSeconds, prometheus.GaugeValue, float64(lastSync.Unix()))
	var healthy float64
	if ok {
		healthy = 1
	}
	ch <- prometheus.MustNewConstMetric(c.healthy, prometheus.GaugeValue, healthy)
}

// newClockCollector 创建时钟指标采集器
func newClockCollector(fetch healthFunc) *clockCollector {
	return &clockCollector{
		fetch: fetch,
		offsetSeconds: prometheus.NewDesc(
			"pricing_clock_offset_seconds",
			"Positive means local time is behind NTP time",
			nil, nil,
		),
		lastSyncSeconds: prometheus.NewDesc(
			"pricing_clock_last_sync_unix",
			"Last successful sync Unix timestamp",
			nil, nil,
		),
		healthy: prometheus.NewDesc(
			"pricing_clock_healthy",
			"1 if clock is healthy, otherwise 0",
			nil, nil,
		),
	}
}

// RegisterClockMetrics 在注册表中注册时钟指标采集器
//
// 重复注册返回 prometheus.AlreadyRegisteredError。
func RegisterClockMetrics(registerer prometheus.Registerer, fetch healthFunc) error {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return registerer.Register(newClockCollector(fetch))
}

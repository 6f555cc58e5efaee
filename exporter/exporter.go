// Package exporter publishes the latest monitor snapshot as Prometheus
// metrics. Values are read from the store at scrape time, so a scrape never
// blocks or interferes with sampling.
package exporter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

const namespace = "hostpulse"

var (
	usageDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "usage_percent"),
		"Latest usage of a host resource in percent (0-100).",
		[]string{"metric"}, nil,
	)
	chargingDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "battery_charging"),
		"1 if the first power source is charging, 0 otherwise.",
		nil, nil,
	)
	ticksDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "ticks_total"),
		"Number of committed sampling ticks.",
		nil, nil,
	)
	historyDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "history_samples"),
		"Number of samples currently held in the rolling history.",
		nil, nil,
	)
)

// Collector implements prometheus.Collector over a monitor.Store.
type Collector struct {
	store *monitor.Store
}

// NewCollector returns a collector reading from store.
func NewCollector(store *monitor.Store) *Collector {
	return &Collector{store: store}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- usageDesc
	ch <- chargingDesc
	ch <- ticksDesc
	ch <- historyDesc
}

// Collect implements prometheus.Collector. Only hostpulse_ticks_total is
// reported before the first tick.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.store.Snapshot()

	ch <- prometheus.MustNewConstMetric(ticksDesc, prometheus.CounterValue, float64(snap.Seq))
	if snap.Seq == 0 {
		return
	}

	for _, k := range sysmetrics.Kinds() {
		ch <- prometheus.MustNewConstMetric(usageDesc, prometheus.GaugeValue,
			snap.Metric(k).Current, k.String())
	}

	var charging float64
	if snap.BatteryIsCharging {
		charging = 1
	}
	ch <- prometheus.MustNewConstMetric(chargingDesc, prometheus.GaugeValue, charging)
	ch <- prometheus.MustNewConstMetric(historyDesc, prometheus.GaugeValue, float64(len(snap.CPU.History)))
}

// NewRegistry returns a private registry holding a Collector for store.
// The process-wide default registry is left alone.
func NewRegistry(store *monitor.Store) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(store))
	return reg
}

// Handler serves the store's metrics in the Prometheus exposition format.
func Handler(store *monitor.Store) http.Handler {
	return promhttp.HandlerFor(NewRegistry(store), promhttp.HandlerOpts{})
}

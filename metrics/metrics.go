// Package metrics exports interner statistics as prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/robinvdvleuten/symtab/interner"
)

// Source is anything that can report interner statistics.
type Source interface {
	Stats() interner.Stats
}

// Collector is a prometheus.Collector reading from a Source on every scrape.
type Collector struct {
	source Source

	strings       *prometheus.Desc
	usedBytes     *prometheus.Desc
	reservedBytes *prometheus.Desc
	retired       *prometheus.Desc
	growths       *prometheus.Desc
}

// NewCollector creates a Collector. Every metric carries the given constant labels.
func NewCollector(source Source, namespace string, labels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "interner", name), help, nil, labels)
	}

	return &Collector{
		source:        source,
		strings:       desc("strings", "Number of distinct interned strings"),
		usedBytes:     desc("arena_used_bytes", "Bytes of text stored in the arena"),
		reservedBytes: desc("arena_reserved_bytes", "Bytes reserved by active and retired arena buffers"),
		retired:       desc("arena_retired_buffers", "Number of retired arena buffers"),
		growths:       desc("arena_growths_total", "Number of arena growths"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.strings
	ch <- c.usedBytes
	ch <- c.reservedBytes
	ch <- c.retired
	ch <- c.growths
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.strings, prometheus.GaugeValue, float64(stats.Strings))
	ch <- prometheus.MustNewConstMetric(c.usedBytes, prometheus.GaugeValue, float64(stats.Arena.Used))
	ch <- prometheus.MustNewConstMetric(c.reservedBytes, prometheus.GaugeValue, float64(stats.Arena.Reserved))
	ch <- prometheus.MustNewConstMetric(c.retired, prometheus.GaugeValue, float64(stats.Arena.Retired))
	ch <- prometheus.MustNewConstMetric(c.growths, prometheus.CounterValue, float64(stats.Arena.Growths))
}

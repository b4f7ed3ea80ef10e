package slotmap

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Metrics Registration
// --------------------------------------------------------------------------

// RegisterMetrics registers callback gauges for a map in the given metrics
// set under the provided name label. Gauges are evaluated on scrape only, so
// registration adds no cost to the map's hot path.
//
// Exposed series:
//   - slotmap_entries{map="<name>"}              current entry total
//   - slotmap_shards{map="<name>"}               fixed shard count
//   - slotmap_distribution_quality{map="<name>"} shard balance in [0, 1]
//
// Thread-safety: This function is thread-safe; the gauges read the map via
// its own locked operations.
func RegisterMetrics[K comparable, V any](set *metrics.Set, name string, m *Map[K, V]) {
	set.NewGauge(fmt.Sprintf(`slotmap_entries{map=%q}`, name), func() float64 {
		return float64(m.Size())
	})
	set.NewGauge(fmt.Sprintf(`slotmap_shards{map=%q}`, name), func() float64 {
		return float64(m.NumShards())
	})
	set.NewGauge(fmt.Sprintf(`slotmap_distribution_quality{map=%q}`, name), func() float64 {
		return m.GetInfo().ShardDistribution.DistributionQuality
	})
}

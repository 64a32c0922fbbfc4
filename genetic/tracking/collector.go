package tracking

import (
	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

// Collector accumulates generation statistics over one run
// It implements genetic.Observer and is not safe for concurrent use
type Collector struct {
	generations int
	warnings    int
	sums        map[string]float64
	counts      map[string]int
	mins        map[string]float64
	maxs        map[string]float64
	first       map[string]float64
	last        map[string]float64
}

// NewCollector creates a reusable collector
func NewCollector() *Collector {
	return &Collector{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
		mins:   make(map[string]float64),
		maxs:   make(map[string]float64),
		first:  make(map[string]float64),
		last:   make(map[string]float64),
	}
}

// OnGeneration records one generation's statistics
func (c *Collector) OnGeneration(stats genetic.GenerationStats) {
	c.generations++
	c.Collect(MetricBundle{
		MetricBest:     stats.Best,
		MetricWorst:    stats.Worst,
		MetricAverage:  stats.Average,
		MetricStdDev:   stats.StdDev,
		MetricDistinct: float64(stats.Distinct),
	})
}

// OnWarning counts non-fatal engine warnings
func (c *Collector) OnWarning(error) {
	c.warnings++
}

// Collect records one sample per metric
func (c *Collector) Collect(metrics MetricBundle) {
	for key, value := range metrics {
		if c.counts[key] == 0 {
			c.first[key] = value
			c.mins[key] = value
			c.maxs[key] = value
		}
		c.sums[key] += value
		c.counts[key]++
		c.last[key] = value

		if value < c.mins[key] {
			c.mins[key] = value
		}
		if value > c.maxs[key] {
			c.maxs[key] = value
		}
	}
}

// Finalize returns accumulated metrics merged with extra
func (c *Collector) Finalize(extra MetricBundle) MetricBundle {
	result := make(MetricBundle)

	result[MetricGenerations] = float64(c.generations)
	result[MetricWarnings] = float64(c.warnings)

	for key, sum := range c.sums {
		if count := c.counts[key]; count > 0 {
			result["avg_"+key] = sum / float64(count)
		}
	}
	for key, val := range c.mins {
		result["min_"+key] = val
	}
	for key, val := range c.maxs {
		result["max_"+key] = val
	}
	for key, val := range c.first {
		result["first_"+key] = val
	}
	for key, val := range c.last {
		result["last_"+key] = val
	}

	return result.Merge(extra)
}

// Reset clears accumulated state for reuse
func (c *Collector) Reset() {
	c.generations = 0
	c.warnings = 0
	clear(c.sums)
	clear(c.counts)
	clear(c.mins)
	clear(c.maxs)
	clear(c.first)
	clear(c.last)
}

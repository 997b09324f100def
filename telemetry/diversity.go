package telemetry

import (
	"math"
	"sort"

	"github.com/pthm-cable/genesis/components"
	"gonum.org/v1/gonum/stat"
)

// GenomeDiversity returns the number of distinct genomes among the living
// organisms of a species and the Shannon entropy (bits) of their frequencies.
func GenomeDiversity(pop components.Population, sp components.Species) (unique int, bits float64) {
	counts := make(map[string]int)
	total := 0
	for _, o := range pop {
		if o.Species != sp || o.IsDead() {
			continue
		}
		counts[o.Genome.Key()]++
		total++
	}
	if total == 0 {
		return 0, 0
	}

	p := make([]float64, 0, len(counts))
	for _, n := range counts {
		p = append(p, float64(n)/float64(total))
	}
	// Fixed summation order keeps the result independent of map iteration
	sort.Float64s(p)
	return len(counts), stat.Entropy(p) / math.Ln2
}

// EnergyStats returns the mean and 10/50/90th percentiles of the living
// organisms' energy for one species.
func EnergyStats(pop components.Population, sp components.Species) (mean, p10, p50, p90 float64) {
	values := make([]float64, 0, len(pop))
	for _, o := range pop {
		if o.Species == sp && !o.IsDead() {
			values = append(values, o.Energy)
		}
	}
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(values)

	mean = stat.Mean(values, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return mean, p10, p50, p90
}

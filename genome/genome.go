// Package genome defines the opcode sequences that program organisms.
package genome

import (
	"math/rand"
	"strconv"
)

// Genome is a fixed-length opcode sequence. Values lie in [0, MaxOpcode].
// A live organism's genome is never edited; children receive a new slice.
type Genome []int

// CreateRandom draws every locus uniformly from [0, MaxOpcode].
func CreateRandom(rng *rand.Rand, length int) Genome {
	if length < 0 {
		length = 0
	}
	g := make(Genome, length)
	for i := range g {
		g[i] = rng.Intn(MaxOpcode + 1)
	}
	return g
}

// Mutate returns a copy of parent where each locus is redrawn with probability rate.
func Mutate(rng *rand.Rand, parent Genome, rate float64) Genome {
	child := make(Genome, len(parent))
	copy(child, parent)
	for i := range child {
		if rng.Float64() < rate {
			child[i] = rng.Intn(MaxOpcode + 1)
		}
	}
	return child
}

// Clone returns an independent copy.
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	cp := make(Genome, len(g))
	copy(cp, g)
	return cp
}

// Equal reports whether two genomes hold the same sequence.
func (g Genome) Equal(other Genome) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a compact string usable as a map key for multiset counting.
func (g Genome) Key() string {
	buf := make([]byte, 0, len(g)*3)
	for i, v := range g {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return string(buf)
}

// At returns the opcode at position i modulo the genome length.
// Returns OpNop for an empty genome.
func (g Genome) At(i int) Opcode {
	n := len(g)
	if n == 0 {
		return OpNop
	}
	i %= n
	if i < 0 {
		i += n
	}
	return Opcode(g[i])
}

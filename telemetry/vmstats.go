package telemetry

import (
	"github.com/pthm-cable/genesis/genome"
	"gonum.org/v1/gonum/floats"
)

// VMStats summarizes one species' interpreter activity for a tick.
type VMStats struct {
	Active         int
	Idle           int
	Steps          int
	IdleRate       float64
	MeanExecLength float64
	DominantOpcode genome.Opcode
}

// NewVMStats derives rates from raw counters. opcodes is indexed by opcode value.
// Rates are zero when nothing was active; the dominant opcode falls back to
// NOP when nothing executed and ties go to the lowest value.
func NewVMStats(active, idle, steps int, opcodes []int) VMStats {
	s := VMStats{Active: active, Idle: idle, Steps: steps}
	if active > 0 {
		s.IdleRate = float64(idle) / float64(active)
		s.MeanExecLength = float64(steps) / float64(active)
	}

	counts := make([]float64, len(opcodes))
	for i, n := range opcodes {
		counts[i] = float64(n)
	}
	if len(counts) > 0 && floats.Sum(counts) > 0 {
		s.DominantOpcode = genome.Opcode(floats.MaxIdx(counts))
	}
	return s
}

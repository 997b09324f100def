package vm

import (
	"github.com/pthm-cable/genesis/genome"
	"github.com/pthm-cable/genesis/telemetry"
)

// Counters tallies interpreter activity for one species during one tick.
type Counters struct {
	Active  int // organisms that started the tick alive
	Idle    int // failed the mobility roll, had no genome, or executed nothing
	Steps   int
	Opcodes [genome.MaxOpcode + 1]int
}

// Stats derives the telemetry rates from the raw counts.
func (c *Counters) Stats() telemetry.VMStats {
	return telemetry.NewVMStats(c.Active, c.Idle, c.Steps, c.Opcodes[:])
}

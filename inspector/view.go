package inspector

import (
	"fmt"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
)

// OrganismView is the flattened, display-ready state of one organism.
type OrganismView struct {
	ID         uint64 `inspect:"label"`
	Species    string `inspect:"label"`
	Generation int    `inspect:"label,name:Gen"`
	Cell       string `inspect:"label"`

	Energy   float64 `inspect:"label,fmt:%.1f"`
	Reserve  float64 `inspect:"bar,name:Reserve"` // energy over the species' spawn maximum
	Age      string  `inspect:"label"`
	LifeLeft float64 `inspect:"bar,name:Life"`

	Metabolism float64 `inspect:"label,fmt:%.3f"`
	Mobility   float64 `inspect:"bar"`

	IP        int                              `inspect:"label"`
	Registers [components.NumRegisters]float64 `inspect:"label,name:Regs,fmt:%.1f"`

	LineageMutated bool `inspect:"bool,name:Mutated"`
	Alive          bool `inspect:"skip"`
}

// NewOrganismView snapshots an organism for display.
func NewOrganismView(o *components.Organism, cfg *config.Config) OrganismView {
	p := o.Species.Params(cfg)

	reserve := 0.0
	if p.EnergyMax > 0 {
		reserve = o.Energy / float64(p.EnergyMax)
	}
	lifeLeft := 0.0
	if o.Lifespan > 0 {
		lifeLeft = 1 - float64(o.Age)/float64(o.Lifespan)
	}

	name := p.Name
	if name == "" {
		name = o.Species.String()
	}

	return OrganismView{
		ID:             o.ID,
		Species:        name,
		Generation:     o.Generation,
		Cell:           fmt.Sprintf("(%d, %d)", o.Pos.X, o.Pos.Y),
		Energy:         o.Energy,
		Reserve:        clamp01(reserve),
		Age:            fmt.Sprintf("%d / %d", o.Age, o.Lifespan),
		LifeLeft:       clamp01(lifeLeft),
		Metabolism:     o.Metabolism,
		Mobility:       o.Mobility,
		IP:             o.IP,
		Registers:      o.Registers,
		LineageMutated: o.LineageMutated,
		Alive:          !o.IsDead(),
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

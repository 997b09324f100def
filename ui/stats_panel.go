package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/telemetry"
)

// StatsData is everything the stats panel reads.
type StatsData struct {
	Stats    telemetry.TickStats
	MaxTicks int
	Names    [components.NumSpecies]string
	Colors   [components.NumSpecies]rl.Color
}

// speciesRow is one species' slice of TickStats.
type speciesRow struct {
	Pop, Peak, MaxGen    int
	Births, Deaths       int
	Unique               int
	Diversity            float64
	EnergyMean           float64
	EnergyP10, EnergyP50 float64
	EnergyP90            float64
	IdleRate, MeanExec   float64
	Dominant             string
	Causes               [components.NumCauses]int // cumulative, indexed by DeathCause-1
	Mutations            [telemetry.NumTraitChannels]int
	Mutated, Spawned     int
}

func rowFor(s telemetry.TickStats, i int) speciesRow {
	if i == 0 {
		return speciesRow{
			Pop: s.PopA, Peak: s.PeakA, MaxGen: s.MaxGenerationA,
			Births: s.BirthsA, Deaths: s.DeathsA,
			Unique: s.UniqueGenomesA, Diversity: s.DiversityA,
			EnergyMean: s.EnergyMeanA, EnergyP10: s.EnergyP10A, EnergyP50: s.EnergyP50A, EnergyP90: s.EnergyP90A,
			IdleRate: s.IdleRateA, MeanExec: s.MeanExecLengthA, Dominant: s.DominantOpcodeA,
			Causes:    [components.NumCauses]int{s.IntrinsicTotalA, s.PollutionTotalA, s.PredationTotalA, s.StarvationTotalA},
			Mutations: [telemetry.NumTraitChannels]int{s.LifespanMutationsA, s.MetabolismMutationsA, s.MobilityMutationsA},
			Mutated:   s.MutatedIndividualsA, Spawned: s.SpawnedTotalA,
		}
	}
	return speciesRow{
		Pop: s.PopB, Peak: s.PeakB, MaxGen: s.MaxGenerationB,
		Births: s.BirthsB, Deaths: s.DeathsB,
		Unique: s.UniqueGenomesB, Diversity: s.DiversityB,
		EnergyMean: s.EnergyMeanB, EnergyP10: s.EnergyP10B, EnergyP50: s.EnergyP50B, EnergyP90: s.EnergyP90B,
		IdleRate: s.IdleRateB, MeanExec: s.MeanExecLengthB, Dominant: s.DominantOpcodeB,
		Causes:    [components.NumCauses]int{s.IntrinsicTotalB, s.PollutionTotalB, s.PredationTotalB, s.StarvationTotalB},
		Mutations: [telemetry.NumTraitChannels]int{s.LifespanMutationsB, s.MetabolismMutationsB, s.MobilityMutationsB},
		Mutated:   s.MutatedIndividualsB, Spawned: s.SpawnedTotalB,
	}
}

// textRow builds a text row from a StatsData formatter.
func textRow(key, label string, f func(StatsData) string) Row {
	return Row{Key: key, Label: label, Kind: RowText, Text: f}
}

func speciesSection(i int) Section {
	row := func(d StatsData) speciesRow { return rowFor(d.Stats, i) }
	id := components.AllSpecies[i].String()

	return Section{
		Key: "species_" + id,
		Rows: []Row{
			{
				Key:   "swatch_" + id,
				Label: "Species",
				Kind:  RowSwatch,
				Color: func(d StatsData) rl.Color { return d.Colors[i] },
				Text:  func(d StatsData) string { return d.Names[i] },
			},
			textRow("pop_"+id, "Population", func(d StatsData) string {
				r := row(d)
				return fmt.Sprintf("%d (peak %d)", r.Pop, r.Peak)
			}),
			textRow("gen_"+id, "Max generation", func(d StatsData) string {
				return fmt.Sprintf("%d", row(d).MaxGen)
			}),
			textRow("events_"+id, "Births/deaths", func(d StatsData) string {
				r := row(d)
				return fmt.Sprintf("+%d / -%d", r.Births, r.Deaths)
			}),
			textRow("genomes_"+id, "Genomes", func(d StatsData) string {
				r := row(d)
				return fmt.Sprintf("%d unique, %.2f bits", r.Unique, r.Diversity)
			}),
			textRow("energy_"+id, "Energy", func(d StatsData) string {
				r := row(d)
				return fmt.Sprintf("%.1f [%.1f %.1f %.1f]", r.EnergyMean, r.EnergyP10, r.EnergyP50, r.EnergyP90)
			}),
			textRow("vm_"+id, "VM", func(d StatsData) string {
				r := row(d)
				return fmt.Sprintf("idle %.0f%%, %.1f steps", r.IdleRate*100, r.MeanExec)
			}),
			textRow("dominant_"+id, "Dominant op", func(d StatsData) string {
				return row(d).Dominant
			}),
		},
	}
}

// pairRow shows the same counter for both species as "A / B".
func pairRow(key, label string, f func(speciesRow) int) Row {
	return textRow(key, label, func(d StatsData) string {
		return fmt.Sprintf("%d / %d", f(rowFor(d.Stats, 0)), f(rowFor(d.Stats, 1)))
	})
}

// StatsLayout lays out the run statistics panel.
func StatsLayout(width int32) Layout {
	causeRows := make([]Row, 0, components.NumCauses)
	for c := components.CauseIntrinsic; c <= components.CauseStarvation; c++ {
		idx := int(c) - 1
		causeRows = append(causeRows, pairRow("cause_"+c.String(), c.String(), func(r speciesRow) int {
			return r.Causes[idx]
		}))
	}

	mutationRows := make([]Row, 0, telemetry.NumTraitChannels+1)
	for ch := telemetry.TraitChannel(0); ch < telemetry.NumTraitChannels; ch++ {
		mutationRows = append(mutationRows, pairRow("mut_"+ch.String(), ch.String(), func(r speciesRow) int {
			return r.Mutations[ch]
		}))
	}
	mutationRows = append(mutationRows, pairRow("mutated", "individuals", func(r speciesRow) int {
		return r.Mutated
	}))

	return Layout{
		Title: "GENESIS",
		Width: width,
		Sections: []Section{
			{
				Key:   "world",
				Title: "World",
				Rows: []Row{
					textRow("tick", "Tick", func(d StatsData) string {
						if d.MaxTicks > 0 {
							return fmt.Sprintf("%d / %d", d.Stats.Tick, d.MaxTicks)
						}
						return fmt.Sprintf("%d", d.Stats.Tick)
					}),
					{
						Key:   "pollution",
						Label: "Pollution",
						Kind:  RowGauge,
						Span:  Unit,
						Tint:  rl.Color{R: 160, G: 120, B: 60, A: 255},
						Value: func(d StatsData) float32 { return float32(d.Stats.Pollution) },
					},
					textRow("food", "Food units", func(d StatsData) string {
						return fmt.Sprintf("%d", d.Stats.TotalFood)
					}),
					textRow("kills", "Kills", func(d StatsData) string {
						return fmt.Sprintf("%d", d.Stats.Kills)
					}),
				},
			},
			speciesSection(0),
			speciesSection(1),
			{Key: "mortality", Title: "Deaths A / B (total)", Rows: causeRows},
			{Key: "mutations", Title: "Trait mutations A / B", Rows: mutationRows},
		},
	}
}

// StatsPanel renders the run statistics in the side panel.
type StatsPanel struct {
	renderer *Renderer
	layout   Layout
	x, y     int32
	height   int32
}

// NewStatsPanel creates a panel occupying the given rectangle.
func NewStatsPanel(x, y, width, height int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		layout:   StatsLayout(width),
		x:        x,
		y:        y,
		height:   height,
	}
}

// Draw renders the panel and returns the bottom Y of its content.
func (p *StatsPanel) Draw(data StatsData) int32 {
	return p.renderer.DrawLayout(p.x, p.y, p.height, p.layout, data)
}

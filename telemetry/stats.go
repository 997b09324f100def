package telemetry

import "log/slog"

// TickStats is the snapshot produced at the end of every tick.
// Per-tick fields describe this tick only; "Total" fields are cumulative.
type TickStats struct {
	Tick      int     `csv:"tick"`
	Pollution float64 `csv:"pollution"`
	TotalFood int     `csv:"total_food"`

	// Population counts after mortality
	PopA int `csv:"pop_a"`
	PopB int `csv:"pop_b"`

	PeakA int `csv:"peak_a"`
	PeakB int `csv:"peak_b"`

	MaxGenerationA int `csv:"max_gen_a"`
	MaxGenerationB int `csv:"max_gen_b"`

	// Events during tick
	BirthsA int `csv:"births_a"`
	BirthsB int `csv:"births_b"`
	DeathsA int `csv:"deaths_a"`
	DeathsB int `csv:"deaths_b"`
	Kills   int `csv:"kills"`

	// Death causes during tick
	IntrinsicA  int `csv:"intrinsic_a"`
	IntrinsicB  int `csv:"intrinsic_b"`
	PollutionA  int `csv:"pollution_deaths_a"`
	PollutionB  int `csv:"pollution_deaths_b"`
	PredationA  int `csv:"predation_a"`
	PredationB  int `csv:"predation_b"`
	StarvationA int `csv:"starvation_a"`
	StarvationB int `csv:"starvation_b"`

	// Cumulative tallies
	SpawnedTotalA    int `csv:"spawned_total_a"`
	SpawnedTotalB    int `csv:"spawned_total_b"`
	IntrinsicTotalA  int `csv:"intrinsic_total_a"`
	IntrinsicTotalB  int `csv:"intrinsic_total_b"`
	PollutionTotalA  int `csv:"pollution_total_a"`
	PollutionTotalB  int `csv:"pollution_total_b"`
	PredationTotalA  int `csv:"predation_total_a"`
	PredationTotalB  int `csv:"predation_total_b"`
	StarvationTotalA int `csv:"starvation_total_a"`
	StarvationTotalB int `csv:"starvation_total_b"`

	LifespanMutationsA   int `csv:"lifespan_mut_a"`
	LifespanMutationsB   int `csv:"lifespan_mut_b"`
	MetabolismMutationsA int `csv:"metabolism_mut_a"`
	MetabolismMutationsB int `csv:"metabolism_mut_b"`
	MobilityMutationsA   int `csv:"mobility_mut_a"`
	MobilityMutationsB   int `csv:"mobility_mut_b"`
	MutatedIndividualsA  int `csv:"mutated_a"`
	MutatedIndividualsB  int `csv:"mutated_b"`

	// Genome diversity among survivors
	UniqueGenomesA int     `csv:"unique_genomes_a"`
	UniqueGenomesB int     `csv:"unique_genomes_b"`
	DiversityA     float64 `csv:"diversity_a"`
	DiversityB     float64 `csv:"diversity_b"`

	// Energy distribution among survivors
	EnergyMeanA float64 `csv:"energy_mean_a"`
	EnergyP10A  float64 `csv:"energy_p10_a"`
	EnergyP50A  float64 `csv:"energy_p50_a"`
	EnergyP90A  float64 `csv:"energy_p90_a"`
	EnergyMeanB float64 `csv:"energy_mean_b"`
	EnergyP10B  float64 `csv:"energy_p10_b"`
	EnergyP50B  float64 `csv:"energy_p50_b"`
	EnergyP90B  float64 `csv:"energy_p90_b"`

	// Interpreter activity
	IdleRateA       float64 `csv:"idle_rate_a"`
	IdleRateB       float64 `csv:"idle_rate_b"`
	MeanExecLengthA float64 `csv:"mean_exec_a"`
	MeanExecLengthB float64 `csv:"mean_exec_b"`
	DominantOpcodeA string  `csv:"dominant_op_a"`
	DominantOpcodeB string  `csv:"dominant_op_b"`
}

// Population returns the surviving organisms across both species.
func (s TickStats) Population() int {
	return s.PopA + s.PopB
}

// LogValue implements slog.LogValuer for structured logging.
func (s TickStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Float64("pollution", s.Pollution),
		slog.Int("total_food", s.TotalFood),
		slog.Int("pop_a", s.PopA),
		slog.Int("pop_b", s.PopB),
		slog.Int("peak_a", s.PeakA),
		slog.Int("peak_b", s.PeakB),
		slog.Int("max_gen_a", s.MaxGenerationA),
		slog.Int("max_gen_b", s.MaxGenerationB),
		slog.Int("births_a", s.BirthsA),
		slog.Int("births_b", s.BirthsB),
		slog.Int("deaths_a", s.DeathsA),
		slog.Int("deaths_b", s.DeathsB),
		slog.Int("kills", s.Kills),
		slog.Int("spawned_total_a", s.SpawnedTotalA),
		slog.Int("spawned_total_b", s.SpawnedTotalB),
		slog.Int("mutated_a", s.MutatedIndividualsA),
		slog.Int("mutated_b", s.MutatedIndividualsB),
		slog.Int("unique_genomes_a", s.UniqueGenomesA),
		slog.Int("unique_genomes_b", s.UniqueGenomesB),
		slog.Float64("diversity_a", s.DiversityA),
		slog.Float64("diversity_b", s.DiversityB),
		slog.Float64("energy_mean_a", s.EnergyMeanA),
		slog.Float64("energy_mean_b", s.EnergyMeanB),
		slog.Float64("idle_rate_a", s.IdleRateA),
		slog.Float64("idle_rate_b", s.IdleRateB),
		slog.Float64("mean_exec_a", s.MeanExecLengthA),
		slog.Float64("mean_exec_b", s.MeanExecLengthB),
		slog.String("dominant_op_a", s.DominantOpcodeA),
		slog.String("dominant_op_b", s.DominantOpcodeB),
	)
}

// LogStats logs the tick stats using slog.
func (s TickStats) LogStats() {
	slog.Info("stats",
		"tick", s.Tick,
		"pollution", s.Pollution,
		"total_food", s.TotalFood,
		"pop_a", s.PopA,
		"pop_b", s.PopB,
		"births_a", s.BirthsA,
		"births_b", s.BirthsB,
		"deaths_a", s.DeathsA,
		"deaths_b", s.DeathsB,
		"intrinsic_a", s.IntrinsicA,
		"intrinsic_b", s.IntrinsicB,
		"pollution_deaths_a", s.PollutionA,
		"pollution_deaths_b", s.PollutionB,
		"predation_a", s.PredationA,
		"predation_b", s.PredationB,
		"starvation_a", s.StarvationA,
		"starvation_b", s.StarvationB,
		"kills", s.Kills,
		"peak_a", s.PeakA,
		"peak_b", s.PeakB,
		"max_gen_a", s.MaxGenerationA,
		"max_gen_b", s.MaxGenerationB,
		"lifespan_mut_a", s.LifespanMutationsA,
		"lifespan_mut_b", s.LifespanMutationsB,
		"metabolism_mut_a", s.MetabolismMutationsA,
		"metabolism_mut_b", s.MetabolismMutationsB,
		"mobility_mut_a", s.MobilityMutationsA,
		"mobility_mut_b", s.MobilityMutationsB,
		"unique_genomes_a", s.UniqueGenomesA,
		"unique_genomes_b", s.UniqueGenomesB,
		"diversity_a", s.DiversityA,
		"diversity_b", s.DiversityB,
		"idle_rate_a", s.IdleRateA,
		"idle_rate_b", s.IdleRateB,
		"mean_exec_a", s.MeanExecLengthA,
		"mean_exec_b", s.MeanExecLengthB,
		"dominant_op_a", s.DominantOpcodeA,
		"dominant_op_b", s.DominantOpcodeB,
	)
}

package genome

// Founder programs seed the initial population with a working behavior loop.
// Each ends in JUMP 0 so the loop restarts from the top.
var (
	founderA = []Opcode{OpSenseFood, OpEatPlant, OpMoveRandom, OpReproduce, OpJump, 0}
	founderB = []Opcode{OpSensePreyDirection, OpMoveTowardsPrey, OpMoveTowardsPrey, OpReproduce, OpMoveRandom, OpJump, 0}
)

// FounderA returns the forager program: sense food, eat, wander, breed.
func FounderA(length int) Genome {
	return repeatProgram(founderA, length)
}

// FounderB returns the predator program: locate prey, close in twice, breed, wander.
func FounderB(length int) Genome {
	return repeatProgram(founderB, length)
}

// repeatProgram tiles base until length loci are filled.
func repeatProgram(base []Opcode, length int) Genome {
	if length < 0 {
		length = 0
	}
	g := make(Genome, length)
	for i := range g {
		g[i] = int(base[i%len(base)])
	}
	return g
}

package genome

import "strconv"

// Opcode is a single gene VM instruction.
type Opcode int

// Actuation
const (
	OpNop Opcode = iota
	OpMoveRandom
	OpMoveToFood
	OpEatPlant
	OpMoveTowardsPrey
	OpReproduce
)

// Sensation
const (
	OpSenseFood Opcode = iota + 10
	OpSenseEnergyLow
	OpSenseNeighbor
	OpSenseRandom
	OpSensePrey
	OpSensePreyDirection
)

// Registers and memory
const (
	OpIncR0 Opcode = iota + 20
	OpDecR0
	OpCopyR0R1
	OpLoadR0
	OpStoreR0
)

// Control flow
const (
	OpJump Opcode = iota + 30
	OpJumpIfZero
	OpJumpIfNonZero
)

// MaxOpcode is the largest value a locus can hold.
const MaxOpcode = int(OpJumpIfNonZero)

var opcodeNames = map[Opcode]string{
	OpNop:                "NOP",
	OpMoveRandom:         "MOVE_RANDOM",
	OpMoveToFood:         "MOVE_TO_FOOD",
	OpEatPlant:           "EAT_PLANT",
	OpMoveTowardsPrey:    "MOVE_TOWARDS_PREY",
	OpReproduce:          "REPRODUCE",
	OpSenseFood:          "SENSE_FOOD",
	OpSenseEnergyLow:     "SENSE_ENERGY_LOW",
	OpSenseNeighbor:      "SENSE_NEIGHBOR",
	OpSenseRandom:        "SENSE_RANDOM",
	OpSensePrey:          "SENSE_PREY",
	OpSensePreyDirection: "SENSE_PREY_DIRECTION",
	OpIncR0:              "INC_R0",
	OpDecR0:              "DEC_R0",
	OpCopyR0R1:           "COPY_R0_R1",
	OpLoadR0:             "LOAD_R0",
	OpStoreR0:            "STORE_R0",
	OpJump:               "JUMP",
	OpJumpIfZero:         "JUMP_IF_R0_ZERO",
	OpJumpIfNonZero:      "JUMP_IF_R0_NZ",
}

// String returns the mnemonic, or OP_<n> for values with no instruction.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "OP_" + strconv.Itoa(int(o))
}

// Defined reports whether the value names an instruction rather than a no-op filler.
func (o Opcode) Defined() bool {
	_, ok := opcodeNames[o]
	return ok
}

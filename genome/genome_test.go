package genome

import (
	"math/rand"
	"testing"
)

func TestCreateRandomInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, length := range []int{0, 1, 32, 500} {
		g := CreateRandom(rng, length)
		if len(g) != length {
			t.Errorf("len = %d, want %d", len(g), length)
		}
		for i, v := range g {
			if v < 0 || v > MaxOpcode {
				t.Fatalf("locus %d = %d outside [0,%d]", i, v, MaxOpcode)
			}
		}
	}
}

func TestCreateRandomCoversAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := CreateRandom(rng, 5000)

	seen := make(map[int]bool)
	for _, v := range g {
		seen[v] = true
	}
	if len(seen) != MaxOpcode+1 {
		t.Errorf("saw %d distinct values, want %d", len(seen), MaxOpcode+1)
	}
}

func TestMutateZeroRateIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	parent := CreateRandom(rng, 64)

	child := Mutate(rng, parent, 0)
	if !child.Equal(parent) {
		t.Errorf("Mutate(g, 0) changed the genome")
	}
	if &child[0] == &parent[0] {
		t.Error("Mutate must return a new slice")
	}
}

func TestMutateFullRateRedraws(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	parent := make(Genome, 2000) // all NOP

	child := Mutate(rng, parent, 1)

	nonZero := 0
	for _, v := range child {
		if v < 0 || v > MaxOpcode {
			t.Fatalf("value %d outside range", v)
		}
		if v != 0 {
			nonZero++
		}
	}
	// A fresh uniform draw over 33 values leaves ~1/33 zeros.
	if nonZero < 1800 {
		t.Errorf("only %d of 2000 loci differ from an all-zero parent", nonZero)
	}
}

func TestMutateDoesNotTouchParent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	parent := CreateRandom(rng, 32)
	before := parent.Clone()

	_ = Mutate(rng, parent, 1)

	if !parent.Equal(before) {
		t.Error("parent genome was modified")
	}
}

func TestMutateKeepsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, n := range []int{0, 7, 32} {
		if got := len(Mutate(rng, CreateRandom(rng, n), 0.5)); got != n {
			t.Errorf("len = %d, want %d", got, n)
		}
	}
}

func TestFounderPrograms(t *testing.T) {
	a := FounderA(32)
	if len(a) != 32 {
		t.Fatalf("len = %d, want 32", len(a))
	}
	want := []Opcode{OpSenseFood, OpEatPlant, OpMoveRandom, OpReproduce, OpJump, OpNop, OpSenseFood}
	for i, op := range want {
		if a.At(i) != op {
			t.Errorf("FounderA[%d] = %v, want %v", i, a.At(i), op)
		}
	}

	b := FounderB(10)
	if b.At(7) != OpSensePreyDirection {
		t.Errorf("FounderB should repeat after 7 loci, got %v", b.At(7))
	}
	if len(FounderB(0)) != 0 {
		t.Error("zero-length founder should be empty")
	}
}

func TestKeyDistinguishesGenomes(t *testing.T) {
	tests := []struct {
		a, b Genome
		same bool
	}{
		{Genome{1, 2, 3}, Genome{1, 2, 3}, true},
		{Genome{1, 23}, Genome{12, 3}, false},
		{Genome{}, Genome{0}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Key() == tt.b.Key(); got != tt.same {
			t.Errorf("Key(%v)==Key(%v) = %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestOpcodeString(t *testing.T) {
	if OpJumpIfNonZero.String() != "JUMP_IF_R0_NZ" {
		t.Errorf("got %q", OpJumpIfNonZero.String())
	}
	if Opcode(7).String() != "OP_7" {
		t.Errorf("undefined opcode name = %q", Opcode(7).String())
	}
	if Opcode(7).Defined() || !OpEatPlant.Defined() {
		t.Error("Defined() mismatch")
	}
	if MaxOpcode != 32 {
		t.Errorf("MaxOpcode = %d, want 32", MaxOpcode)
	}
}

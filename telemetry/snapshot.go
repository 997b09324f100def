package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the world state at one tick for offline inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Tick    int   `json:"tick"`

	WorldWidth  int     `json:"world_width"`
	WorldHeight int     `json:"world_height"`
	Pollution   float64 `json:"pollution"`
	Food        []int   `json:"food"` // row-major, WorldWidth*WorldHeight

	Organisms []OrganismState `json:"organisms"`
	Lifetime  Lifetime        `json:"lifetime"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// OrganismState holds one living organism's complete state.
type OrganismState struct {
	ID         uint64 `json:"id"`
	Species    string `json:"species"`
	Generation int    `json:"generation"`

	X int `json:"x"`
	Y int `json:"y"`

	Energy     float64 `json:"energy"`
	Age        int     `json:"age"`
	Lifespan   int     `json:"lifespan"`
	Metabolism float64 `json:"metabolism"`
	Mobility   float64 `json:"mobility"`

	// Program state
	Genome    []int                            `json:"genome"`
	IP        int                              `json:"ip"`
	Registers [components.NumRegisters]float64 `json:"registers"`
	Memory    []float64                        `json:"memory"`

	LineageMutated bool `json:"lineage_mutated,omitempty"`
}

// NewSnapshot copies the living population and the food grid.
// The snapshot shares no memory with the running simulation.
func NewSnapshot(seed int64, tick int, env *systems.Environment, pop components.Population, lifetime *Lifetime, bm *Bookmark) *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     seed,
		Tick:        tick,
		WorldWidth:  env.Width(),
		WorldHeight: env.Height(),
		Pollution:   env.Pollution,
		Food:        append([]int(nil), env.Food.Cells...),
		Organisms:   make([]OrganismState, 0, len(pop)),
		Lifetime:    *lifetime,
	}
	if bm != nil {
		b := *bm
		s.Bookmark = &b
	}

	for _, o := range pop {
		if o.IsDead() {
			continue
		}
		s.Organisms = append(s.Organisms, OrganismState{
			ID:             o.ID,
			Species:        o.Species.String(),
			Generation:     o.Generation,
			X:              o.Pos.X,
			Y:              o.Pos.Y,
			Energy:         o.Energy,
			Age:            o.Age,
			Lifespan:       o.Lifespan,
			Metabolism:     o.Metabolism,
			Mobility:       o.Mobility,
			Genome:         append([]int(nil), o.Genome...),
			IP:             o.IP,
			Registers:      o.Registers,
			Memory:         append([]float64(nil), o.Memory...),
			LineageMutated: o.LineageMutated,
		})
	}
	return s
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
		if snapshot.Bookmark.Species != "" {
			name += "_" + snapshot.Bookmark.Species
		}
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

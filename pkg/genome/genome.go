package genome

import (
	"encoding/json"
	"math/rand"

	"github.com/google/uuid"

	"github.com/cogpy/agent-neuro/pkg/errors"
)

// Fitness assigned to genomes that have not been evaluated against real
// metrics yet.
const baselineFitness = 0.5

// Genome is an ordered collection of uniquely named genes plus lineage
// metadata. Genomes are value snapshots: Mutate and Crossover build new
// instances and never touch the receiver.
type Genome struct {
	ID         string   `json:"id"`
	Generation int      `json:"generation"`
	Genes      []Gene   `json:"genes"`
	Fitness    float64  `json:"fitness"`
	ParentIDs  []string `json:"parent_ids"`
}

// New creates a root genome around the given genes: fresh id, generation 1,
// baseline fitness, no parents.
func New(genes []Gene) *Genome {
	return &Genome{
		ID:         uuid.New().String(),
		Generation: 1,
		Genes:      append([]Gene(nil), genes...),
		Fitness:    baselineFitness,
	}
}

// Get returns the value of the named gene, or def when the name is absent.
func (g *Genome) Get(name string, def float64) float64 {
	for _, gene := range g.Genes {
		if gene.Name == name {
			return gene.Value
		}
	}
	return def
}

// Set replaces the named gene's value, clamped to the gene's bounds. An
// unknown name upserts a Coefficient gene with default bounds; the returned
// flag reports whether that happened, so callers can surface typos.
func (g *Genome) Set(name string, value float64) (created bool) {
	for i := range g.Genes {
		if g.Genes[i].Name == name {
			g.Genes[i].Value = clamp(value, g.Genes[i].Min, g.Genes[i].Max)
			return false
		}
	}

	g.Genes = append(g.Genes, Gene{
		Kind:         Coefficient,
		Name:         name,
		Value:        clamp(value, defaultMin, defaultMax),
		Min:          defaultMin,
		Max:          defaultMax,
		MutationRate: defaultMutationRate,
	})
	return true
}

// Mutate passes every gene through Gene.Mutate at the given intensity and
// wraps the results in a new genome one generation down, fitness reset to
// zero until evaluated.
func (g *Genome) Mutate(rng *rand.Rand, rate float64) *Genome {
	mutated := make([]Gene, len(g.Genes))
	for i, gene := range g.Genes {
		mutated[i] = gene.Mutate(rng, rate)
	}

	return &Genome{
		ID:         uuid.New().String(),
		Generation: g.Generation + 1,
		Genes:      mutated,
		ParentIDs:  []string{g.ID},
	}
}

// Crossover builds an offspring genome by picking each gene position from
// either parent with independent 50/50 probability. No value blending takes
// place. Both genomes must have the same gene count.
func (g *Genome) Crossover(rng *rand.Rand, other *Genome) (*Genome, error) {
	if len(g.Genes) != len(other.Genes) {
		return nil, errors.WithFields(
			errors.New(errors.StructuralMismatch, "cannot crossover genomes with different structures"),
			errors.Fields{"genes": len(g.Genes), "other_genes": len(other.Genes)})
	}

	offspring := make([]Gene, len(g.Genes))
	for i := range g.Genes {
		if rng.Float64() < 0.5 {
			offspring[i] = g.Genes[i]
		} else {
			offspring[i] = other.Genes[i]
		}
	}

	generation := g.Generation
	if other.Generation > generation {
		generation = other.Generation
	}

	return &Genome{
		ID:         uuid.New().String(),
		Generation: generation + 1,
		Genes:      offspring,
		ParentIDs:  []string{g.ID, other.ID},
	}, nil
}

// Clone returns a deep copy sharing no state with the receiver.
func (g *Genome) Clone() *Genome {
	cloned := *g
	cloned.Genes = append([]Gene(nil), g.Genes...)
	if g.ParentIDs != nil {
		cloned.ParentIDs = append([]string(nil), g.ParentIDs...)
	}
	return &cloned
}

// Export serializes the genome record as JSON.
func (g *Genome) Export() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to export genome")
	}
	return data, nil
}

// Import reconstructs a genome from Export output. Gene order, parent order
// and float values survive the round trip exactly; records written by hand
// may omit per-gene bounds and fitness, which fall back to defaults.
func Import(data []byte) (*Genome, error) {
	var g Genome
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "malformed genome record")
	}
	return &g, nil
}

// UnmarshalJSON applies the record defaults for absent fields: baseline
// fitness for the genome, default bounds and mutation rate per gene.
func (g *Genome) UnmarshalJSON(data []byte) error {
	type alias Genome
	aux := struct {
		Fitness *float64 `json:"fitness"`
		*alias
	}{alias: (*alias)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Fitness != nil {
		g.Fitness = *aux.Fitness
	} else {
		g.Fitness = baselineFitness
	}
	return nil
}


package genome

import (
	"encoding/json"
	"math"
	"math/rand"

	"github.com/cogpy/agent-neuro/pkg/errors"
)

// GeneKind classifies the role a gene plays in a genome.
type GeneKind int

const (
	Coefficient GeneKind = iota
	Threshold
	Probability
	Operator
	Structure
)

var geneKindNames = [...]string{"coefficient", "threshold", "probability", "operator", "structure"}

// String returns the wire name of the kind.
func (k GeneKind) String() string {
	if k < Coefficient || k > Structure {
		return "unknown"
	}
	return geneKindNames[k]
}

// ParseGeneKind converts a wire name into a GeneKind.
func ParseGeneKind(s string) (GeneKind, error) {
	for i, name := range geneKindNames {
		if name == s {
			return GeneKind(i), nil
		}
	}
	return Coefficient, errors.WithFields(
		errors.New(errors.InvalidInput, "unknown gene kind"),
		errors.Fields{"kind": s})
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by wire name.
func (k GeneKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *GeneKind) UnmarshalText(text []byte) error {
	parsed, err := ParseGeneKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Default bounds and mutation rate for genes created without explicit ones.
const (
	defaultMin          = 0.0
	defaultMax          = 1.0
	defaultMutationRate = 0.1
)

// Gene is a single bounded scalar parameter with its own mutation rate.
// Genes are plain values; Mutate returns a perturbed copy.
type Gene struct {
	Kind         GeneKind `json:"type"`
	Name         string   `json:"name"`
	Value        float64  `json:"value"`
	Min          float64  `json:"min_value"`
	Max          float64  `json:"max_value"`
	MutationRate float64  `json:"mutation_rate"`
}

// Mutate returns a copy of the gene with its value perturbed by Gaussian
// noise of standard deviation MutationRate*intensity, clamped to [Min, Max].
// All other fields carry over unchanged.
func (g Gene) Mutate(rng *rand.Rand, intensity float64) Gene {
	mutated := g
	mutated.Value = clamp(g.Value+rng.NormFloat64()*(g.MutationRate*intensity), g.Min, g.Max)
	return mutated
}

// UnmarshalJSON fills in default bounds and mutation rate when a record
// omits them.
func (g *Gene) UnmarshalJSON(data []byte) error {
	type alias Gene
	aux := struct {
		Min          *float64 `json:"min_value"`
		Max          *float64 `json:"max_value"`
		MutationRate *float64 `json:"mutation_rate"`
		*alias
	}{alias: (*alias)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	g.Min = defaultMin
	if aux.Min != nil {
		g.Min = *aux.Min
	}
	g.Max = defaultMax
	if aux.Max != nil {
		g.Max = *aux.Max
	}
	g.MutationRate = defaultMutationRate
	if aux.MutationRate != nil {
		g.MutationRate = *aux.MutationRate
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

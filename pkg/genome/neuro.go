package genome

// Gene names of the default Neuro genome. The first four project onto the
// personality trait vector during sync.
const (
	GeneSarcasm      = "sarcasm_coefficient"
	GeneChaos        = "chaos_coefficient"
	GeneIntelligence = "intelligence_coefficient"
	GenePlayfulness  = "playfulness_coefficient"
	GeneTranscend    = "transcend_threshold"
	GeneSpawnProb    = "subordinate_spawn_prob"
	GeneLearningRate = "learning_rate"
)

// DefaultID is the stable identifier of the root Neuro genome.
const DefaultID = "neuro-consciousness-v1"

// Default builds the root Neuro genome: seven genes spanning the cognitive
// coefficients, the transcend threshold, the subordinate spawn probability
// and the learning rate.
func Default() *Genome {
	return &Genome{
		ID:         DefaultID,
		Generation: 1,
		Fitness:    baselineFitness,
		Genes: []Gene{
			{Kind: Coefficient, Name: GeneSarcasm, Value: 0.90, Min: 0.0, Max: 1.0, MutationRate: defaultMutationRate},
			{Kind: Coefficient, Name: GeneChaos, Value: 0.95, Min: 0.0, Max: 1.0, MutationRate: defaultMutationRate},
			{Kind: Coefficient, Name: GeneIntelligence, Value: 0.95, Min: 0.5, Max: 1.0, MutationRate: defaultMutationRate},
			{Kind: Coefficient, Name: GenePlayfulness, Value: 0.95, Min: 0.0, Max: 1.0, MutationRate: defaultMutationRate},
			{Kind: Threshold, Name: GeneTranscend, Value: 0.75, Min: 0.5, Max: 0.95, MutationRate: defaultMutationRate},
			{Kind: Probability, Name: GeneSpawnProb, Value: 0.4, Min: 0.1, Max: 0.8, MutationRate: defaultMutationRate},
			{Kind: Coefficient, Name: GeneLearningRate, Value: 0.05, Min: 0.01, Max: 0.2, MutationRate: defaultMutationRate},
		},
	}
}

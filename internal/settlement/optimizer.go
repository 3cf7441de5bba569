package settlement

import (
	"fmt"

	"github.com/mmynk/splitsettle/internal/models"
)

// Optimizer names accepted by LookupOptimizer.
const (
	OptimizerGreedy   = "greedy"
	OptimizerPairwise = "pairwise"
)

// Optimizer rewrites a graph's edges in place without changing any net
// balance.
type Optimizer func(*Graph)

// LookupOptimizer returns the optimizer registered under name. An empty name
// selects the greedy optimizer.
func LookupOptimizer(name string) (Optimizer, error) {
	switch name {
	case "", OptimizerGreedy:
		return (*Graph).Optimize, nil
	case OptimizerPairwise:
		return (*Graph).SimplifyBidirectional, nil
	default:
		return nil, models.NewInputError("optimizer",
			fmt.Sprintf("unknown optimizer %q, want %q or %q", name, OptimizerGreedy, OptimizerPairwise))
	}
}

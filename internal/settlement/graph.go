// Package settlement implements the settlement graph: a directed, weighted
// graph of participants and the transfers pending between them.
//
// Nodes live in an arena indexed by first appearance; edges are keyed by
// (from, to) node index. Optimize rewrites the edge set only, so node indices
// stay valid for the lifetime of the graph.
package settlement

import (
	"fmt"
	"sort"

	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/money"
)

type edgeKey struct {
	from, to int
}

// Graph is a settlement graph for one settlement run. It is not safe for
// concurrent use.
type Graph struct {
	nodes []models.Participant
	index map[string]int
	edges map[edgeKey]money.Money
}

// New builds a graph with one node per distinct participant and one edge per
// ordered (from, to) pair. Transfers sharing a pair are summed into one edge.
// Self transfers and non-positive amounts are rejected.
func New(transfers []models.Transfer) (*Graph, error) {
	g := &Graph{
		index: make(map[string]int),
		edges: make(map[edgeKey]money.Money),
	}

	for i, t := range transfers {
		field := fmt.Sprintf("transfers[%d]", i)
		if t.From.Identifier() == t.To.Identifier() {
			return nil, models.NewInputError(field, "self transfer for "+t.From.Identifier())
		}
		if !t.Amount.IsPositive() {
			return nil, models.NewInputError(field, fmt.Sprintf("amount must be positive, got %s", t.Amount))
		}

		from := g.addNode(t.From)
		to := g.addNode(t.To)
		g.addEdge(from, to, t.Amount)
	}

	return g, nil
}

func (g *Graph) addNode(p models.Participant) int {
	id := p.Identifier()
	if i, ok := g.index[id]; ok {
		return i
	}
	g.nodes = append(g.nodes, p)
	g.index[id] = len(g.nodes) - 1
	return len(g.nodes) - 1
}

func (g *Graph) addEdge(from, to int, amount money.Money) {
	key := edgeKey{from: from, to: to}
	g.edges[key] = g.edges[key].Add(amount)
}

// Participants returns the nodes in arena order.
func (g *Graph) Participants() []models.Participant {
	out := make([]models.Participant, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodeCount returns the number of participants in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of pending transfers.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// NetBalance is incoming minus outgoing edge weight for p. Participants not
// in the graph have a zero balance.
func (g *Graph) NetBalance(p models.Participant) money.Money {
	i, ok := g.index[p.Identifier()]
	if !ok {
		return money.Zero
	}
	return g.netBalances()[i]
}

func (g *Graph) netBalances() []money.Money {
	balances := make([]money.Money, len(g.nodes))
	for key, amount := range g.edges {
		balances[key.to] = balances[key.to].Add(amount)
		balances[key.from] = balances[key.from].Sub(amount)
	}
	return balances
}

func (g *Graph) sortedKeys() []edgeKey {
	keys := make([]edgeKey, 0, len(g.edges))
	for key := range g.edges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})
	return keys
}

// Transfers converts the edge set back to a transfer list ordered by payer
// then payee node index.
func (g *Graph) Transfers() []models.Transfer {
	keys := g.sortedKeys()
	transfers := make([]models.Transfer, 0, len(keys))
	for _, key := range keys {
		transfers = append(transfers, models.NewTransfer(g.nodes[key.from], g.nodes[key.to], g.edges[key]))
	}
	return transfers
}

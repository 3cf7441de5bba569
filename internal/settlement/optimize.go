package settlement

import (
	"container/heap"

	"github.com/mmynk/splitsettle/internal/money"
)

// balanceEntry is a debtor or creditor with the magnitude still to settle.
type balanceEntry struct {
	node   int
	id     string
	amount money.Money
}

// balanceHeap is a max-heap on amount. Ties go to the smaller identifier so
// the matching is the same on every run.
type balanceHeap []balanceEntry

func (h balanceHeap) Len() int { return len(h) }

func (h balanceHeap) Less(i, j int) bool {
	if c := h[i].amount.Cmp(h[j].amount); c != 0 {
		return c > 0
	}
	return h[i].id < h[j].id
}

func (h balanceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *balanceHeap) Push(x any) { *h = append(*h, x.(balanceEntry)) }

func (h *balanceHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Optimize replaces the edge set with a smaller one that leaves every
// participant's net balance unchanged.
//
// Algorithm:
//   - net balance per node = incoming - outgoing, in minor units
//   - negative balances are debtors, positive are creditors, zero drops out
//   - repeatedly settle the largest debtor against the largest creditor for
//     min(debt, credit), pushing back whichever side has a remainder
//   - clear all edges and insert one per settlement
//
// Every step exhausts at least one side, so the result has fewer edges than
// participants with a non-zero balance. Nodes are kept even if isolated.
func (g *Graph) Optimize() {
	debtors := &balanceHeap{}
	creditors := &balanceHeap{}
	for i, balance := range g.netBalances() {
		switch {
		case balance.IsNegative():
			*debtors = append(*debtors, balanceEntry{node: i, id: g.nodes[i].Identifier(), amount: balance.Neg()})
		case balance.IsPositive():
			*creditors = append(*creditors, balanceEntry{node: i, id: g.nodes[i].Identifier(), amount: balance})
		}
	}
	heap.Init(debtors)
	heap.Init(creditors)

	settled := make(map[edgeKey]money.Money)
	for debtors.Len() > 0 && creditors.Len() > 0 {
		d := heap.Pop(debtors).(balanceEntry)
		c := heap.Pop(creditors).(balanceEntry)

		amount := money.Min(d.amount, c.amount)
		key := edgeKey{from: d.node, to: c.node}
		settled[key] = settled[key].Add(amount)

		d.amount = d.amount.Sub(amount)
		c.amount = c.amount.Sub(amount)
		if d.amount.IsPositive() {
			heap.Push(debtors, d)
		}
		if c.amount.IsPositive() {
			heap.Push(creditors, c)
		}
	}

	g.edges = settled
}

// SimplifyBidirectional cancels opposite edges between each pair of nodes,
// keeping only the net difference in the heavier direction. Equal opposite
// edges are both removed. It is a cheaper pass than Optimize and never
// changes a net balance.
func (g *Graph) SimplifyBidirectional() {
	for _, key := range g.sortedKeys() {
		forward, ok := g.edges[key]
		if !ok {
			continue
		}
		reverse := edgeKey{from: key.to, to: key.from}
		backward, ok := g.edges[reverse]
		if !ok {
			continue
		}

		switch forward.Cmp(backward) {
		case -1:
			g.edges[reverse] = backward.Sub(forward)
			delete(g.edges, key)
		case 1:
			g.edges[key] = forward.Sub(backward)
			delete(g.edges, reverse)
		default:
			delete(g.edges, key)
			delete(g.edges, reverse)
		}
	}
}

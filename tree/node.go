package tree

import (
	"sort"

	"github.com/YuminosukeSato/scitree/core/table"
)

// Node is one vertex of an induced tree: a PureLeaf, a DistributionLeaf or an
// Internal node. The set of implementations is closed.
type Node interface {
	isNode()
}

// PureLeaf predicts a single outcome.
type PureLeaf struct {
	Outcome table.Value
}

// Probability pairs an outcome with its frequency in a distribution leaf.
type Probability struct {
	Outcome table.Value
	P       float64
}

// DistributionLeaf predicts by drawing from the outcome frequencies of the
// rows that reached it. Outcomes are ordered by descending probability.
type DistributionLeaf struct {
	Outcomes []Probability
}

// Internal routes rows to Match or NonMatch by its Split.
type Internal struct {
	Split         Split
	Match         int
	NonMatch      int
	MatchCount    int
	NonMatchCount int
}

func (PureLeaf) isNode()         {}
func (DistributionLeaf) isNode() {}
func (Internal) isNode()         {}

// Draw returns the first outcome whose cumulative probability exceeds u,
// or the last outcome when rounding leaves u uncovered.
func (d DistributionLeaf) Draw(u float64) table.Value {
	total := 0.0
	for _, o := range d.Outcomes {
		total += o.P
		if total > u {
			return o.Outcome
		}
	}
	return d.Outcomes[len(d.Outcomes)-1].Outcome
}

// Probabilities returns the probabilities in leaf order.
func (d DistributionLeaf) Probabilities() []float64 {
	ps := make([]float64, len(d.Outcomes))
	for i, o := range d.Outcomes {
		ps[i] = o.P
	}
	return ps
}

// newDistributionLeaf counts outcomes over rows. Ties in frequency are
// ordered by table.Compare so the leaf does not depend on row order.
func newDistributionLeaf(tbl table.Table, outcome int, rows []int) DistributionLeaf {
	counts := make(map[table.Value]int)
	for _, r := range rows {
		counts[tbl.At(r, outcome)]++
	}
	outcomes := make([]table.Value, 0, len(counts))
	for v := range counts {
		outcomes = append(outcomes, v)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		ci, cj := counts[outcomes[i]], counts[outcomes[j]]
		if ci != cj {
			return ci > cj
		}
		return table.Compare(outcomes[i], outcomes[j]) < 0
	})

	total := float64(len(rows))
	leaf := DistributionLeaf{Outcomes: make([]Probability, len(outcomes))}
	for i, v := range outcomes {
		leaf.Outcomes[i] = Probability{Outcome: v, P: float64(counts[v]) / total}
	}
	return leaf
}

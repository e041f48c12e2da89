package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/scitree/core/random"
	"github.com/YuminosukeSato/scitree/core/table"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Tree is an induced decision tree. Nodes are immutable and indexed by id;
// id 0 is the root. A Tree is safe for concurrent prediction.
type Tree struct {
	nodes   []Node
	columns []string
	outcome int
	rng     *random.Locked
}

// Root returns the root node.
func (t *Tree) Root() Node { return t.nodes[0] }

// Node returns the node with the given id.
func (t *Tree) Node(id int) Node { return t.nodes[id] }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Columns returns the column names of the training table.
func (t *Tree) Columns() []string { return t.columns }

// Outcome returns the name of the predicted column.
func (t *Tree) Outcome() string { return t.columns[t.outcome] }

// Leaves returns the number of leaf nodes.
func (t *Tree) Leaves() int {
	n := 0
	for _, node := range t.nodes {
		if _, ok := node.(Internal); !ok {
			n++
		}
	}
	return n
}

// DistributionLeaves returns the number of distribution leaves.
func (t *Tree) DistributionLeaves() int {
	n := 0
	for _, node := range t.nodes {
		if _, ok := node.(DistributionLeaf); ok {
			n++
		}
	}
	return n
}

// Predict returns the outcome for row, drawing from the tree's own generator
// when the row lands in a distribution leaf.
func (t *Tree) Predict(row table.Row) (table.Value, error) {
	return t.PredictWith(row, t.rng)
}

// PredictWith is Predict with a caller-supplied generator.
func (t *Tree) PredictWith(row table.Row, r random.Rand) (table.Value, error) {
	leaf, err := t.leaf(row, nil)
	if err != nil {
		return table.Value{}, err
	}
	switch n := t.nodes[leaf].(type) {
	case PureLeaf:
		return n.Outcome, nil
	case DistributionLeaf:
		return n.Draw(r.Float64()), nil
	default:
		return table.Value{}, scierrors.Newf("tree: node %d is not a leaf", leaf)
	}
}

// Path returns the ids of the nodes row visits, root first, ending at a leaf.
func (t *Tree) Path(row table.Row) ([]int, error) {
	path := make([]int, 0, 8)
	if _, err := t.leaf(row, &path); err != nil {
		return nil, err
	}
	return path, nil
}

// leaf descends from the root and returns the id of the leaf row reaches.
// Visited ids are appended to path when it is non-nil.
func (t *Tree) leaf(row table.Row, path *[]int) (int, error) {
	id := 0
	for {
		if path != nil {
			*path = append(*path, id)
		}
		n, ok := t.nodes[id].(Internal)
		if !ok {
			return id, nil
		}
		if n.Split.Column >= len(row) {
			return 0, scierrors.NewMissingAttributeError(n.Split.Column, t.columns[n.Split.Column], len(row))
		}
		if n.Split.Matches(row) {
			id = n.Match
		} else {
			id = n.NonMatch
		}
	}
}

// String renders one line per node in id order:
//
//	0: Gender=female, 3 Yes->1, 3 No->2
//	1: Texas
//	5: Germany=0.5, Texas=0.5
func (t *Tree) String() string {
	var sb strings.Builder
	for id, node := range t.nodes {
		switch n := node.(type) {
		case PureLeaf:
			fmt.Fprintf(&sb, "%d: %s\n", id, n.Outcome)
		case DistributionLeaf:
			parts := make([]string, len(n.Outcomes))
			for i, o := range n.Outcomes {
				parts[i] = o.Outcome.String() + "=" + strconv.FormatFloat(o.P, 'g', -1, 64)
			}
			fmt.Fprintf(&sb, "%d: %s\n", id, strings.Join(parts, ", "))
		case Internal:
			fmt.Fprintf(&sb, "%d: %s%s%s, %d Yes->%d, %d No->%d\n",
				id, t.columns[n.Split.Column], n.Split.Kind, n.Split.Value,
				n.MatchCount, n.Match, n.NonMatchCount, n.NonMatch)
		}
	}
	return sb.String()
}

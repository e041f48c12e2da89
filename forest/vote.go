package forest

import (
	"sort"

	"github.com/YuminosukeSato/scitree/core/table"
)

// Vote is one outcome's total in a forest prediction.
type Vote struct {
	Outcome table.Value
	Total   float64
}

// Rank totals predictions, one per tree, and orders them by descending
// total. With nil weights each prediction counts 1. Equal totals keep the
// order in which the outcomes first appear in predictions.
func Rank(predictions []table.Value, weights []float64) []Vote {
	index := make(map[table.Value]int)
	var votes []Vote
	for i, p := range predictions {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		j, ok := index[p]
		if !ok {
			j = len(votes)
			index[p] = j
			votes = append(votes, Vote{Outcome: p})
		}
		votes[j].Total += w
	}
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].Total > votes[j].Total
	})
	return votes
}

// total returns the vote total for outcome, or 0 if nothing voted for it.
func total(votes []Vote, outcome table.Value) float64 {
	for _, v := range votes {
		if v.Outcome == outcome {
			return v.Total
		}
	}
	return 0
}

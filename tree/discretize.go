package tree

import "math"

// MaxThresholds returns the number of threshold indexes Discretize emits for
// n sorted values: max(ceil(sqrt(n)), min(10, n)).
func MaxThresholds(n int) int {
	root := int(math.Ceil(math.Sqrt(float64(n))))
	return max(root, min(10, n))
}

// Discretize picks split points for a continuous attribute. sorted holds the
// attribute's values for every active row, ascending, duplicates included.
// It walks outward from the center, alternating left then right, and returns
// each index i where sorted[i] != sorted[i+1], stopping after MaxThresholds
// indexes. The threshold at index i is sorted[i], used with GreaterThan.
func Discretize(sorted []float64) []int {
	n := len(sorted)
	limit := MaxThresholds(n)
	indexes := make([]int, 0, limit)

	center := n / 2
	left, right := center-1, center+1
	for left >= 0 || right < n {
		if left >= 0 {
			if sorted[left] != sorted[left+1] {
				indexes = append(indexes, left)
				if len(indexes) >= limit {
					break
				}
			}
			left--
		}
		if right < n {
			if sorted[right-1] != sorted[right] {
				indexes = append(indexes, right-1)
				if len(indexes) >= limit {
					break
				}
			}
			right++
		}
	}
	return indexes
}

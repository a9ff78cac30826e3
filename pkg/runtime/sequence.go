package runtime

import "sort"

// longestIncreasingSubsequence returns the positions in arr of one longest
// strictly increasing subsequence. Negative entries are skipped.
func longestIncreasingSubsequence(arr []int) []int {
	prev := make([]int, len(arr))
	// tails[m] is the position of the smallest tail of an increasing run
	// of length m+1.
	tails := make([]int, 0, len(arr))

	for i, v := range arr {
		if v < 0 {
			continue
		}
		n := len(tails)
		if n == 0 || arr[tails[n-1]] < v {
			if n > 0 {
				prev[i] = tails[n-1]
			}
			tails = append(tails, i)
			continue
		}
		m := sort.Search(n, func(m int) bool { return arr[tails[m]] >= v })
		if v < arr[tails[m]] {
			if m > 0 {
				prev[i] = tails[m-1]
			}
			tails[m] = i
		}
	}

	if len(tails) == 0 {
		return tails
	}
	last := tails[len(tails)-1]
	for u := len(tails) - 1; u >= 0; u-- {
		tails[u] = last
		last = prev[last]
	}
	return tails
}

package grading

import "strings"

// Similarity returns a word-overlap ratio between two answers in [0,1].
//
// Both strings are case-folded and split on whitespace. Every word of a that
// appears anywhere in b counts as a match (membership, not multiset
// intersection, so duplicated words in a each count). The denominator is the
// word count of the longer input, which makes the measure asymmetric for
// inputs of different lengths.
func Similarity(a, b string) float64 {
	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))

	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	if longest == 0 {
		return 0
	}

	inB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		inB[w] = struct{}{}
	}

	matches := 0
	for _, w := range wordsA {
		if _, ok := inB[w]; ok {
			matches++
		}
	}

	return float64(matches) / float64(longest)
}

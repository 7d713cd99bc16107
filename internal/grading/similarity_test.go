package grading

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	testCases := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"partial overlap", "the cat sat", "the cat", 2.0 / 3.0},
		{"identical", "photosynthesis uses sunlight", "photosynthesis uses sunlight", 1.0},
		{"case folded", "The Cat", "the cat", 1.0},
		{"no overlap", "apples and oranges", "trains or planes", 0.0},
		{"empty submitted", "", "the cat", 0.0},
		{"both empty", "", "", 0.0},
		// Duplicates in the first input each count once the word appears in
		// the second at all.
		{"duplicates counted", "cat cat cat", "cat", 1.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Similarity(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %f, expected %f", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

// The denominator is the word count of the longer input, so swapping the
// arguments keeps the ratio here; the asymmetry shows up through the
// membership test, not the denominator.
func TestSimilarityDenominatorUsesLongerInput(t *testing.T) {
	forward := Similarity("the cat sat", "the cat")
	backward := Similarity("the cat", "the cat sat")

	expected := 2.0 / 3.0
	if math.Abs(forward-expected) > 1e-9 {
		t.Errorf("forward similarity = %f, expected %f", forward, expected)
	}
	if math.Abs(backward-expected) > 1e-9 {
		t.Errorf("backward similarity = %f, expected %f", backward, expected)
	}

	// Duplicates make the directions diverge: "cat cat" against "cat dog"
	// matches both duplicate words, but "cat dog" against "cat cat" matches
	// only one of two.
	withDup := Similarity("cat cat", "cat dog")
	withDupReversed := Similarity("cat dog", "cat cat")
	if math.Abs(withDup-1.0) > 1e-9 {
		t.Errorf("duplicate-heavy similarity = %f, expected 1.0", withDup)
	}
	if math.Abs(withDupReversed-0.5) > 1e-9 {
		t.Errorf("reversed duplicate similarity = %f, expected 0.5", withDupReversed)
	}
}

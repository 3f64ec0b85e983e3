package usecase

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"stems plurals", "Steel Bottles", []string{"steel", "bottl"}},
		{"drops punctuation and numbers", "Water Bottle, 1000 ml!", []string{"water", "bottl"}},
		{"drops stop words and noise", "Set of 2 Glass Jars", []string{"glass", "jar"}},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("tokenize(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestTokenMatchScore(t *testing.T) {
	title := tokenize("Steel Water Bottle 1L")

	testCases := []struct {
		name  string
		query string
		want  float64
	}{
		{"exact stems", "steel bottles", 100},
		{"one typo", "steal bottle", 90},
		{"half covered", "steel lamp", 50},
		{"nothing", "lamp", 0},
		{"empty query", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenMatchScore(tokenize(tc.query), title)
			if got != tc.want {
				t.Errorf("tokenMatchScore(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"0", true},
		{"12a", false},
		{"", false},
		{"1.5", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := isNumeric(tc.input); got != tc.want {
				t.Errorf("isNumeric(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	testCases := []struct {
		s1   string
		s2   string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"abc", "abc", 0},
		{"abc", "abd", 1},        // substitution
		{"abc", "abcd", 1},       // insertion
		{"abcd", "abc", 1},       // deletion
		{"kitten", "sitting", 3}, // classic example
		{"lamp", "lmap", 2},      // transposition (2 edits)
		{"₹999", "₹998", 1},      // runes, not bytes
	}

	for _, tc := range testCases {
		t.Run(tc.s1+"_"+tc.s2, func(t *testing.T) {
			got := levenshteinDistance(tc.s1, tc.s2)
			if got != tc.want {
				t.Errorf("levenshteinDistance(%q, %q) = %v, want %v", tc.s1, tc.s2, got, tc.want)
			}
		})
	}
}

func TestFuzzyTokenMatch(t *testing.T) {
	testCases := []struct {
		token1    string
		token2    string
		threshold int
		want      bool
	}{
		{"lamp", "lamp", 1, true},      // identical
		{"jar", "jam", 1, false},       // short token, fuzzy disabled
		{"clock", "clok", 1, true},     // edit distance 1
		{"bottl", "botl", 1, true},     // missing letter
		{"steel", "stool", 1, false},   // edit distance 2
		{"steel", "stool", 2, true},    // within threshold 2
		{"wooden", "woodn", 1, true},   // typo
		{"kitchen", "kitch", 1, false}, // length differs by 2
	}

	for _, tc := range testCases {
		t.Run(tc.token1+"_"+tc.token2, func(t *testing.T) {
			got := fuzzyTokenMatch(tc.token1, tc.token2, tc.threshold)
			if got != tc.want {
				t.Errorf("fuzzyTokenMatch(%q, %q, %d) = %v, want %v",
					tc.token1, tc.token2, tc.threshold, got, tc.want)
			}
		})
	}
}

package usecase

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

var punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Token matching weights
const (
	fuzzyWeightFactor = 0.8 // fuzzy matches get 80% of an exact match
	fuzzyEditDistance = 1
	fuzzyMinTokenLen  = 4

	// MinTokenMatchScore requires every query token to match at least fuzzily
	MinTokenMatchScore = fuzzyWeightFactor * 100
)

// searchStopWords are dropped from titles and queries before matching
var searchStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	// Listing noise
	"pack": true, "pcs": true, "pc": true, "piece": true, "pieces": true,
	"set": true, "combo": true, "new": true, "premium": true, "quality": true,
	"ml": true, "l": true, "kg": true, "g": true, "cm": true, "inch": true,
}

// tokenize splits text into lowercase English stems, dropping punctuation,
// stop words, single characters and pure numbers
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 1 || searchStopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, stem(word))
	}
	return tokens
}

// stem returns the English Snowball stem, or the word itself if stemming fails
func stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// tokenMatchScore returns how well the title tokens cover the query tokens,
// from 0 to 100. Exact stem matches count fully, near misses at fuzzyWeightFactor.
func tokenMatchScore(queryTokens, titleTokens []string) float64 {
	if len(queryTokens) == 0 || len(titleTokens) == 0 {
		return 0
	}

	title := make(map[string]bool, len(titleTokens))
	for _, t := range titleTokens {
		title[t] = true
	}

	var total float64
	for _, q := range queryTokens {
		if title[q] {
			total++
			continue
		}
		for _, t := range titleTokens {
			if fuzzyTokenMatch(q, t, fuzzyEditDistance) {
				total += fuzzyWeightFactor
				break
			}
		}
	}
	return total / float64(len(queryTokens)) * 100
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// short tokens only match exactly
	if len(token1) < fuzzyMinTokenLen || len(token2) < fuzzyMinTokenLen {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m, n := len(r1), len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

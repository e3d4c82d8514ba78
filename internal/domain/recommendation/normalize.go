package recommendation

import (
	"sort"
	"strings"
)

// The fitted vectorizers are case- and order-sensitive: the training pipeline
// lower-cases, trims, and (for ingredients) alphabetically sorts tokens before
// fitting. Serving-time encoding must apply the identical normalization or the
// query silently lands in the wrong region of the feature space, so every
// caller goes through the functions below.

// SplitTokens splits a comma-separated list into trimmed, lower-cased tokens,
// dropping tokens that are empty after trimming.
func SplitTokens(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// NormalizeTags trims, lower-cases, and drops empty tags. Tag order is
// irrelevant to the binarizer, so no sorting is applied.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := strings.ToLower(strings.TrimSpace(t))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// CanonicalIngredients normalizes an ingredient list into the canonical
// comma-separated string the ingredient vectorizer was trained on: tokens
// trimmed, lower-cased, alphabetically sorted, joined with ", ".
func CanonicalIngredients(ingredients []string) string {
	tokens := NormalizeTags(ingredients)
	sort.Strings(tokens)
	return strings.Join(tokens, ", ")
}

// TokenSet converts an ingredient list into a lower-cased, trimmed set.
func TokenSet(ingredients []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ingredients))
	for _, t := range NormalizeTags(ingredients) {
		set[t] = struct{}{}
	}
	return set
}

// MatchScore counts how many ingredients from the query set occur in the
// record's comma-separated ingredient list. Both sides are compared after
// trimming and lower-casing.
func MatchScore(querySet map[string]struct{}, recordIngredients string) int {
	score := 0
	seen := make(map[string]struct{})
	for _, t := range SplitTokens(recordIngredients) {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := querySet[t]; ok {
			score++
		}
	}
	return score
}

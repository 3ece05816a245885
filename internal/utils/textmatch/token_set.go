// Package textmatch scores string similarity for the country-name resolver.
// Scores follow the weighted token-set convention: word order and partial
// token overlap are forgiven, and results land on a 0-100 scale.
package textmatch

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	sort.Strings(tokens)
	return tokens
}

func ratio(a, b string) float64 {
	return strutil.Similarity(a, b, metrics.NewLevenshtein())
}

// TokenSetRatio compares two strings by their token sets: the sorted
// intersection is scored against the intersection plus each side's leftover
// tokens, and the best of the three pairings wins. Identical token sets score
// 100 regardless of word order.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		if len(ta) == 0 && len(tb) == 0 {
			return 100
		}
		return 0
	}

	inB := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		inB[t] = struct{}{}
	}
	inA := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		inA[t] = struct{}{}
	}

	var common, restA, restB []string
	for _, t := range ta {
		if _, ok := inB[t]; ok {
			common = append(common, t)
		} else {
			restA = append(restA, t)
		}
	}
	for _, t := range tb {
		if _, ok := inA[t]; !ok {
			restB = append(restB, t)
		}
	}

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(restA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(restB, " "))

	best := ratio(withA, withB)
	if base != "" {
		if s := ratio(base, withA); s > best {
			best = s
		}
		if s := ratio(base, withB); s > best {
			best = s
		}
	}
	return int(math.Round(best * 100))
}

// BestMatch returns the candidate with the highest TokenSetRatio against
// input, along with its score. Ties keep the earlier candidate, so callers
// wanting determinism should pass candidates in a canonical order.
func BestMatch(input string, candidates []string) (string, int) {
	bestScore := -1
	best := ""
	for _, c := range candidates {
		if s := TokenSetRatio(input, c); s > bestScore {
			bestScore = s
			best = c
		}
	}
	if bestScore < 0 {
		return "", 0
	}
	return best, bestScore
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/musicmuni/pppfy/internal/core/ports"
	"github.com/musicmuni/pppfy/internal/utils/textmatch"
)

// fuzzyAcceptThreshold is the minimum score (exclusive) at which a fuzzy
// candidate is accepted. A score of exactly 80 stays unresolved.
const fuzzyAcceptThreshold = 80

// Scorer rates how well input matches a candidate name on a 0-100 scale.
type Scorer func(input, candidate string) int

// CountryResolver maps noisy free-text country names to ISO alpha-2 codes.
// The name index is built once from the country dataset and is immutable
// afterwards; the audit log is the only mutable state and is mutex-guarded,
// so concurrent Resolve calls are safe.
type CountryResolver struct {
	index  map[string]map[string]struct{}
	codes  []string            // sorted, for deterministic first-match-wins
	names  []string            // deduped flattened candidate list, sorted
	owners map[string][]string // name -> sorted owning codes
	scorer Scorer

	mu    sync.Mutex
	audit map[string][]domain.MatchRecord
}

// NewCountryResolver builds a resolver from the country dataset using the
// token-set ratio scorer.
func NewCountryResolver(ctx context.Context, provider ports.CountryDatasetProvider) (*CountryResolver, error) {
	return NewCountryResolverWithScorer(ctx, provider, textmatch.TokenSetRatio)
}

// NewCountryResolverWithScorer builds a resolver with a caller-supplied
// fuzzy scorer.
func NewCountryResolverWithScorer(ctx context.Context, provider ports.CountryDatasetProvider, scorer Scorer) (*CountryResolver, error) {
	records, err := provider.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load country dataset: %w", err)
	}

	r := &CountryResolver{
		index:  make(map[string]map[string]struct{}, len(records)),
		owners: make(map[string][]string),
		scorer: scorer,
		audit:  make(map[string][]domain.MatchRecord),
	}

	for _, country := range records {
		names := make(map[string]struct{})
		addName(names, country.Name.Common)
		addName(names, country.Name.Official)
		for _, alt := range country.AltSpellings {
			if len(alt) > 2 {
				addName(names, alt)
			}
		}
		for _, tr := range country.Translations {
			addName(names, tr.Common)
			addName(names, tr.Official)
		}
		if len(names) == 0 {
			continue
		}
		r.index[country.CCA2] = names
	}

	r.codes = make([]string, 0, len(r.index))
	for code := range r.index {
		r.codes = append(r.codes, code)
	}
	sort.Strings(r.codes)

	for _, code := range r.codes {
		for name := range r.index[code] {
			if _, seen := r.owners[name]; !seen {
				r.names = append(r.names, name)
			}
			r.owners[name] = append(r.owners[name], code)
		}
	}
	sort.Strings(r.names)
	for _, codes := range r.owners {
		sort.Strings(codes)
	}

	return r, nil
}

func addName(set map[string]struct{}, name string) {
	name = normalizeName(name)
	if name == "" {
		return
	}
	set[name] = struct{}{}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve maps name to an ISO alpha-2 code. An exact index hit wins
// unconditionally; otherwise the best fuzzy candidate is accepted when its
// score is strictly above the threshold. Resolve never returns an error:
// unresolved is a first-class result, and every attempt is appended to the
// audit log.
func (r *CountryResolver) Resolve(name string) (string, bool) {
	needle := normalizeName(name)

	for _, code := range r.codes {
		if _, ok := r.index[code][needle]; ok {
			r.record(code, domain.MatchRecord{Input: needle, MatchedKey: needle, Strategy: domain.MatchStrategyDirect})
			return code, true
		}
	}

	best, score := r.bestCandidate(needle)
	if score > fuzzyAcceptThreshold {
		code := r.owners[best][0]
		r.record(code, domain.MatchRecord{Input: needle, MatchedKey: best, Strategy: domain.MatchStrategyFuzzy})
		return code, true
	}

	r.record(domain.AuditKeyUnresolved, domain.MatchRecord{Input: needle, MatchedKey: needle, Strategy: domain.MatchStrategyNoMatch})
	return "", false
}

func (r *CountryResolver) bestCandidate(needle string) (string, int) {
	bestScore := -1
	best := ""
	for _, candidate := range r.names {
		if s := r.scorer(needle, candidate); s > bestScore {
			bestScore = s
			best = candidate
		}
	}
	return best, bestScore
}

func (r *CountryResolver) record(key string, rec domain.MatchRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audit[key] = append(r.audit[key], rec)
}

// Audit returns a copy of the match-audit log. Diagnostics only; results are
// never derived from it.
func (r *CountryResolver) Audit() map[string][]domain.MatchRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]domain.MatchRecord, len(r.audit))
	for key, recs := range r.audit {
		out[key] = append([]domain.MatchRecord(nil), recs...)
	}
	return out
}

package usecase

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/sirupsen/logrus"

	"github.com/florabot/backend/internal/domain"
)

// Scores assigned by the structural stages. Prefix and token-subset
// matches are substring-level evidence, so they outrank any fuzzy
// score: a lone structural match is authoritative (100) and competing
// structural matches all carry the same 90.
const (
	scoreSingleStructural    = 100
	scoreAmbiguousStructural = 90
)

// ResolverConfig holds tuning knobs for the fuzzy fallback stage.
type ResolverConfig struct {
	// FuzzyThreshold is the minimum WRatio score a row needs to be
	// admitted as a candidate. Defaults to 75.
	FuzzyThreshold int
	// FuzzyLimit caps how many top-scoring rows are considered.
	// Defaults to 5.
	FuzzyLimit int
}

// Resolver matches an extracted product-name query against the catalog
// using a three-stage cascade: exact prefix, token subset, fuzzy score.
// The earlier stages short-circuit; fuzzy matching only runs when no
// structural match exists, which bounds false positives on short names.
type Resolver struct {
	fuzzyThreshold int
	fuzzyLimit     int
	log            *logrus.Entry
}

// NewResolver creates a resolver with the given configuration.
func NewResolver(config ResolverConfig) *Resolver {
	threshold := config.FuzzyThreshold
	if threshold <= 0 {
		threshold = 75
	}

	limit := config.FuzzyLimit
	if limit <= 0 {
		limit = 5
	}

	return &Resolver{
		fuzzyThreshold: threshold,
		fuzzyLimit:     limit,
		log:            logrus.WithField("component", "resolver"),
	}
}

// Resolve runs the cascade for query against rows. Rows must carry
// their precomputed SearchText.
func (r *Resolver) Resolve(rows []domain.CatalogRow, query string) domain.Resolution {
	q := Normalize(query)
	if q == "" {
		return domain.Resolution{Kind: domain.ResolutionNoQuery}
	}

	if res, ok := r.matchPrefix(rows, q); ok {
		return res
	}

	if res, ok := r.matchTokenSubset(rows, q); ok {
		return res
	}

	return r.matchFuzzy(rows, q)
}

// matchPrefix selects rows whose normalized name starts with the whole
// normalized query.
func (r *Resolver) matchPrefix(rows []domain.CatalogRow, q string) (domain.Resolution, bool) {
	var hits []domain.MatchCandidate
	for _, row := range rows {
		if strings.HasPrefix(Normalize(row.Name), q) {
			hits = append(hits, domain.MatchCandidate{Row: row})
		}
	}
	return structuralOutcome(hits)
}

// matchTokenSubset selects rows whose normalized name contains every
// query token as a substring. A single trailing "s" is stripped from
// each token as a naive singular/plural fold ("samambaias" still finds
// "Samambaia").
func (r *Resolver) matchTokenSubset(rows []domain.CatalogRow, q string) (domain.Resolution, bool) {
	tokens := strings.Fields(q)

	var hits []domain.MatchCandidate
	for _, row := range rows {
		name := Normalize(row.Name)
		all := true
		for _, token := range tokens {
			if !strings.Contains(name, strings.TrimSuffix(token, "s")) {
				all = false
				break
			}
		}
		if all {
			hits = append(hits, domain.MatchCandidate{Row: row})
		}
	}
	return structuralOutcome(hits)
}

// structuralOutcome maps prefix/token-subset hits onto a resolution:
// zero hits falls through to the next stage, one hit is authoritative,
// several hits are ambiguous in catalog row order.
func structuralOutcome(hits []domain.MatchCandidate) (domain.Resolution, bool) {
	switch len(hits) {
	case 0:
		return domain.Resolution{}, false
	case 1:
		hits[0].Score = scoreSingleStructural
		return domain.Resolution{Kind: domain.ResolutionSingleMatch, Candidates: hits}, true
	default:
		for i := range hits {
			hits[i].Score = scoreAmbiguousStructural
		}
		return domain.Resolution{Kind: domain.ResolutionAmbiguous, Candidates: hits}, true
	}
}

// matchFuzzy scores the query against every row's search text with the
// weighted ratio, keeps the top fuzzyLimit rows and admits those at or
// above fuzzyThreshold.
func (r *Resolver) matchFuzzy(rows []domain.CatalogRow, q string) domain.Resolution {
	scored := make([]domain.MatchCandidate, 0, len(rows))
	for _, row := range rows {
		scored = append(scored, domain.MatchCandidate{
			Row:   row,
			Score: fuzzy.WRatio(q, row.SearchText),
		})
	}

	// Descending score; SliceStable keeps catalog row order on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.fuzzyLimit {
		scored = scored[:r.fuzzyLimit]
	}

	var admitted []domain.MatchCandidate
	for _, c := range scored {
		if c.Score >= r.fuzzyThreshold {
			admitted = append(admitted, c)
		}
	}

	r.log.WithFields(logrus.Fields{
		"query":    q,
		"admitted": len(admitted),
	}).Debug("fuzzy stage")

	switch len(admitted) {
	case 0:
		return domain.Resolution{Kind: domain.ResolutionNoMatch}
	case 1:
		return domain.Resolution{Kind: domain.ResolutionSingleMatch, Candidates: admitted}
	default:
		return domain.Resolution{Kind: domain.ResolutionAmbiguous, Candidates: admitted}
	}
}

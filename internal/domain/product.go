package domain

// CatalogRow represents one product from the catalog sheet.
// All fields are free text; columns missing from the source default to
// the empty string at load time, so readers never need existence checks.
type CatalogRow struct {
	Name      string `json:"name"`
	Aliases   string `json:"aliases,omitempty"` // pipe- or comma-joined alternate names
	Price     string `json:"price,omitempty"`
	Stock     string `json:"stock,omitempty"`
	PotSize   string `json:"potSize,omitempty"`
	Light     string `json:"light,omitempty"`
	Watering  string `json:"watering,omitempty"`
	PetSafety string `json:"petSafety,omitempty"`
	Notes     string `json:"notes,omitempty"`

	// SearchText is the normalized "name | aliases" matching field,
	// recomputed on every catalog load. Never shown to the user.
	SearchText string `json:"-"`
}

// Intent is the coarse category of what the user is asking about.
type Intent string

const (
	IntentPrice   Intent = "PRICE"
	IntentStock   Intent = "STOCK"
	IntentCare    Intent = "CARE"
	IntentSuggest Intent = "SUGGEST"
	IntentGeneral Intent = "GENERAL"
)

// MatchCandidate pairs a catalog row with a 0-100 confidence score.
type MatchCandidate struct {
	Row   CatalogRow `json:"row"`
	Score int        `json:"score"`
}

// ResolutionKind enumerates the possible outcomes of product resolution.
type ResolutionKind int

const (
	// ResolutionNoQuery means the extracted query was empty.
	ResolutionNoQuery ResolutionKind = iota
	// ResolutionSingleMatch means exactly one product was resolved.
	ResolutionSingleMatch
	// ResolutionAmbiguous means two or more candidates remain.
	ResolutionAmbiguous
	// ResolutionNoMatch means no candidate cleared the admission threshold.
	ResolutionNoMatch
)

// Resolution is the outcome of resolving a query against the catalog.
// Candidates is ordered by descending score, ties broken by catalog row
// order. For SingleMatch it holds exactly one entry.
type Resolution struct {
	Kind       ResolutionKind
	Candidates []MatchCandidate
}

// Best returns the highest-scoring candidate. Only meaningful for
// SingleMatch and Ambiguous resolutions.
func (r Resolution) Best() MatchCandidate {
	if len(r.Candidates) == 0 {
		return MatchCandidate{}
	}
	return r.Candidates[0]
}

// TopGap returns the score difference between the two best candidates.
func (r Resolution) TopGap() int {
	if len(r.Candidates) < 2 {
		return 0
	}
	return r.Candidates[0].Score - r.Candidates[1].Score
}

// Reply is what the pipeline hands back to the chat transport: a main
// text plus an optional short follow-up prompt (used for ambiguous and
// no-match outcomes).
type Reply struct {
	Text     string `json:"reply"`
	FollowUp string `json:"followUp,omitempty"`
}

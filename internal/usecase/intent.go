package usecase

import (
	"strings"

	"github.com/florabot/backend/internal/domain"
)

// intentCascade maps keyword sets to intents, checked in order against
// the normalized message. The order is load-bearing: keyword sets
// overlap ("quanto custa a rega" contains both a price and a care
// keyword) and the first matching set wins. Keywords are stored in
// already-normalized form (lowercase, accent-folded).
var intentCascade = []struct {
	intent   domain.Intent
	keywords []string
}{
	{domain.IntentPrice, []string{"quanto", "preco", "valor", "custa"}},
	{domain.IntentStock, []string{"tem", "estoque", "disponivel"}},
	{domain.IntentCare, []string{"como cuidar", "cuidados", "rega", "luz", "sol", "sombra", "adubo"}},
	{domain.IntentSuggest, []string{"me indica", "me sugere", "sugere", "recomenda", "pra", "para"}},
}

// ClassifyIntent maps a normalized message to an intent via substring
// containment. Pure, deterministic, total; falls through to GENERAL.
func ClassifyIntent(normalizedMsg string) domain.Intent {
	for _, level := range intentCascade {
		for _, kw := range level.keywords {
			if strings.Contains(normalizedMsg, kw) {
				return level.intent
			}
		}
	}
	return domain.IntentGeneral
}

package usecase

import (
	"fmt"
	"strings"

	"github.com/florabot/backend/internal/domain"
)

// suggestionLimit caps how many options a suggestion reply lists.
const suggestionLimit = 3

// shadeMarkers and petFriendlyMarkers are matched as substrings against
// the normalized light / pet-safety fields.
var (
	shadeMarkers       = []string{"sombra", "indireta", "pouca"}
	petFriendlyMarkers = []string{"ok", "sim", "nao tox"}
)

// SuggestPlants filters the catalog by the environment hints present in
// the normalized message (low light / full sun / pet friendly) and
// returns up to three rows in catalog order. With no hints the first
// rows of the catalog are returned as-is.
func SuggestPlants(rows []domain.CatalogRow, normalizedMsg string) []domain.CatalogRow {
	wantShade := strings.Contains(normalizedMsg, "pouca luz") || strings.Contains(normalizedMsg, "sombra")
	wantSun := strings.Contains(normalizedMsg, "sol")
	wantPets := strings.Contains(normalizedMsg, "pet")

	var picked []domain.CatalogRow
	for _, row := range rows {
		light := Normalize(row.Light)
		if wantShade && !containsAny(light, shadeMarkers) {
			continue
		}
		if wantSun && !strings.Contains(light, "sol") {
			continue
		}
		if wantPets && !containsAny(Normalize(row.PetSafety), petFriendlyMarkers) {
			continue
		}
		picked = append(picked, row)
		if len(picked) == suggestionLimit {
			break
		}
	}
	return picked
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// ComposeSuggestions formats the suggestion reply, or a clarifying
// question when no row survived the filters.
func ComposeSuggestions(rows []domain.CatalogRow) domain.Reply {
	if len(rows) == 0 {
		return domain.Reply{
			Text:     "Entendi 🙂 Mas não encontrei sugestão certeira com esses filtros no catálogo.",
			FollowUp: "Me diga: é pra *sol*, *meia-sombra* ou *pouca luz*?",
		}
	}

	var b strings.Builder
	b.WriteString("Pera aí que já te passo boas opções 👀\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "\n• 🌿 %s — %s", strings.TrimSpace(row.Name), FormatPrice(row.Price))
	}

	return domain.Reply{
		Text:     b.String(),
		FollowUp: "Quer que eu filtre por *pet friendly*?",
	}
}

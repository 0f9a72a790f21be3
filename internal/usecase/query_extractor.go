package usecase

import "strings"

// stopWords are intent keywords, articles and prepositions removed
// from the message to leave the probable product name. Stored in
// normalized form. A product name token that happens to collide with a
// stop word ("para-tudo") is dropped too; that imprecision is accepted,
// do not special-case it here.
var stopWords = map[string]bool{
	// price
	"quanto": true, "preco": true, "valor": true, "custa": true, "ta": true,
	// stock
	"tem": true, "estoque": true, "disponivel": true,
	// care / suggestion
	"como": true, "cuidar": true, "cuidados": true,
	"me": true, "indica": true, "sugere": true, "recomenda": true,
	// articles and prepositions
	"uma": true, "um": true, "de": true, "da": true, "do": true,
	"pra": true, "para": true, "no": true, "na": true, "a": true, "o": true,
}

// ExtractQuery strips stop words from a normalized message and returns
// the residual product-name query, possibly empty.
func ExtractQuery(normalizedMsg string) string {
	var kept []string
	for _, token := range strings.Fields(normalizedMsg) {
		if stopWords[token] {
			continue
		}
		kept = append(kept, token)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/florabot/backend/internal/domain"
)

// priceNotRegistered is shown whenever the stored price is empty,
// "nan" or unparsable. Malformed prices never surface as errors.
const priceNotRegistered = "preço não cadastrado"

// FormatPrice renders a stored price string as a two-decimal BRL
// display value. Accepts decimal-comma and decimal-point input, with
// or without an "R$" prefix.
func FormatPrice(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return priceNotRegistered
	}

	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "r$"))
	s = strings.ReplaceAll(s, ",", ".")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return priceNotRegistered
	}

	return strings.Replace(fmt.Sprintf("R$ %.2f", value), ".", ",", 1)
}

// ComposeProductAnswer turns a resolved catalog row plus the detected
// intent into the formatted reply text. Field selection is
// intent-gated; absent optional fields are omitted, never rendered as
// empty lines.
func ComposeProductAnswer(row domain.CatalogRow, intent domain.Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Beleza 🙂 Achei aqui no catálogo:\n\n🌿 *%s*", strings.TrimSpace(row.Name))

	if intent == domain.IntentPrice || intent == domain.IntentGeneral {
		fmt.Fprintf(&b, "\n💰 *Preço:* %s", FormatPrice(row.Price))
		if pot := strings.TrimSpace(row.PotSize); pot != "" {
			fmt.Fprintf(&b, "\n🪴 *Vaso:* %s", pot)
		}
	}
	if intent == domain.IntentStock || intent == domain.IntentGeneral {
		if stock := strings.TrimSpace(row.Stock); stock != "" {
			fmt.Fprintf(&b, "\n📦 *Estoque:* %s", stock)
		}
	}
	if intent == domain.IntentCare || intent == domain.IntentGeneral {
		if light := strings.TrimSpace(row.Light); light != "" {
			fmt.Fprintf(&b, "\n☀️ *Luz:* %s", light)
		}
		if watering := strings.TrimSpace(row.Watering); watering != "" {
			fmt.Fprintf(&b, "\n💧 *Rega:* %s", watering)
		}
		if pets := strings.TrimSpace(row.PetSafety); pets != "" {
			fmt.Fprintf(&b, "\n🐾 *Pets:* %s", pets)
		}
	}

	if phrase := careOneLiner(row); phrase != "" {
		b.WriteString("\n\n")
		b.WriteString(phrase)
	}

	if notes := strings.TrimSpace(row.Notes); notes != "" && intent != domain.IntentPrice {
		fmt.Fprintf(&b, "\n📝 *Obs.:* %s", notes)
	}

	b.WriteString("\n\nSe quiser, posso sugerir *parecidas* ou *pet friendly* 😉")
	return b.String()
}

// careOneLiner builds the ready-to-say customer phrase when at least
// one of light/watering is known.
func careOneLiner(row domain.CatalogRow) string {
	light := strings.TrimSpace(row.Light)
	watering := strings.TrimSpace(row.Watering)
	if light == "" && watering == "" {
		return ""
	}
	if light == "" {
		light = "boa claridade"
	}
	if watering == "" {
		watering = "moderada"
	}
	return fmt.Sprintf("🗣️ _Frase pro cliente:_ \"%s prefere %s e rega %s.\"", strings.TrimSpace(row.Name), light, watering)
}

// ComposeDisambiguation lists up to three candidate names for the user
// to choose from.
func ComposeDisambiguation(candidates []domain.MatchCandidate) domain.Reply {
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}

	var b strings.Builder
	b.WriteString("Achei mais de uma parecida 👀\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "\n• %s", strings.TrimSpace(c.Row.Name))
	}

	return domain.Reply{
		Text:     b.String(),
		FollowUp: "Qual delas você quis dizer?",
	}
}

// ComposeNotFound is the reply for NoQuery and NoMatch outcomes.
func ComposeNotFound() domain.Reply {
	return domain.Reply{
		Text: "Não achei esse item no catálogo 😕",
		FollowUp: "Você pode tentar:\n" +
			"• outro nome (apelido)\n" +
			"• escrever só a 1ª palavra\n" +
			"• ou me mandar o nome certinho",
	}
}

// ComposeCatalogUnavailable is the reply when the catalog has never
// been loaded and the current fetch failed.
func ComposeCatalogUnavailable() domain.Reply {
	return domain.Reply{
		Text: "Nosso catálogo está fora do ar agora 😕 Tenta de novo em instantes, por favor 🙏",
	}
}

package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/florabot/backend/internal/domain"
)

// ChatServiceConfig holds tuning knobs for the message pipeline.
type ChatServiceConfig struct {
	// AmbiguityGap is the minimum score separation between the two
	// best candidates before the top one is treated as authoritative.
	// Below the gap the user is asked to choose. Defaults to 5.
	AmbiguityGap int
}

// ChatService runs the full pipeline for one inbound message:
// normalize, classify intent, extract query, resolve against the
// catalog, compose a reply. It owns no state besides its collaborators,
// so concurrent messages are independent; the catalog provider handles
// its own refresh safety.
type ChatService struct {
	catalog      domain.CatalogProvider
	resolver     *Resolver
	ambiguityGap int
	log          *logrus.Entry
}

// NewChatService creates a chat service with its dependencies.
func NewChatService(catalog domain.CatalogProvider, resolver *Resolver, config ChatServiceConfig) *ChatService {
	gap := config.AmbiguityGap
	if gap <= 0 {
		gap = 5
	}

	return &ChatService{
		catalog:      catalog,
		resolver:     resolver,
		ambiguityGap: gap,
		log:          logrus.WithField("component", "chat"),
	}
}

// HandleMessage answers one inbound text message. Every outcome maps to
// a user-facing reply; no raw technical message ever escapes here.
func (s *ChatService) HandleMessage(ctx context.Context, msg string) domain.Reply {
	normalized := Normalize(msg)
	if normalized == "" {
		return ComposeNotFound()
	}

	intent := ClassifyIntent(normalized)
	query := ExtractQuery(normalized)

	rows, err := s.catalog.Rows(ctx)
	if err != nil {
		s.log.WithError(err).Warn("catalog unavailable, no cached copy to serve")
		return ComposeCatalogUnavailable()
	}

	s.log.WithFields(logrus.Fields{
		"intent": intent,
		"query":  query,
	}).Debug("message classified")

	if intent == domain.IntentSuggest {
		return ComposeSuggestions(SuggestPlants(rows, normalized))
	}

	resolution := s.resolver.Resolve(rows, query)

	switch resolution.Kind {
	case domain.ResolutionNoQuery, domain.ResolutionNoMatch:
		return ComposeNotFound()
	case domain.ResolutionAmbiguous:
		// Scores too close together mean guessing would likely be
		// wrong; let the user pick among the top three instead.
		if resolution.TopGap() < s.ambiguityGap {
			return ComposeDisambiguation(resolution.Candidates)
		}
		return domain.Reply{Text: ComposeProductAnswer(resolution.Best().Row, intent)}
	default:
		return domain.Reply{Text: ComposeProductAnswer(resolution.Best().Row, intent)}
	}
}

// Package signal turns free-text visitor messages into structured campaign signals.
package signal

import (
	"github.com/samber/lo"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
)

// Extractor merges signals found in a message into a conversation context.
type Extractor struct {
	goals       []rules.Rule
	channels    []rules.Rule
	painPoints  []rules.Rule
	brandTraits []rules.Rule
}

// NewExtractor builds an extractor over the label tables of catalog.
func NewExtractor(catalog rules.Catalog) *Extractor {
	c := catalog.Clone()
	return &Extractor{
		goals:       c.Goals,
		channels:    c.Channels,
		painPoints:  c.PainPoints,
		brandTraits: c.BrandTraits,
	}
}

// Extract returns a new context holding current plus everything detected in
// message. Label sets keep existing entries first and never lose one; budget,
// timeline and contact are replaced when the message carries a new value.
func (e *Extractor) Extract(message string, current chat.AgentContext) chat.AgentContext {
	normalized := rules.Normalize(message)
	next := current.Clone()

	next.Goals = lo.Union(next.Goals, MatchLabels(normalized, e.goals))
	next.Channels = lo.Union(next.Channels, MatchLabels(normalized, e.channels))
	next.PainPoints = lo.Union(next.PainPoints, MatchLabels(normalized, e.painPoints))
	next.BrandTraits = lo.Union(next.BrandTraits, MatchLabels(normalized, e.brandTraits))

	if budget, ok := ExtractBudget(message); ok {
		next.Budget = budget
	}
	if timeline, ok := ExtractTimeline(message); ok {
		next.Timeline = timeline
	}
	if contact, ok := ExtractContact(message); ok {
		next.Contact = contact
	}

	return next
}

// MatchLabels returns, in table order, every label with a keyword present in
// normalized text.
func MatchLabels(normalized string, table []rules.Rule) []string {
	labels := make([]string, 0, 2)
	for _, rule := range table {
		if rule.Matches(normalized) {
			labels = append(labels, rule.Label)
		}
	}
	return labels
}

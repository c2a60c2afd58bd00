// Package intent picks exactly one reply strategy for an incoming message.
package intent

import (
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
)

// Intent names the conversational move a message represents.
type Intent string

const (
	Thanks      Intent = "thanks"
	Pricing     Intent = "pricing"
	Services    Intent = "services"
	Timeline    Intent = "timeline"
	Performance Intent = "performance"
	NextSteps   Intent = "next-steps"
	Greeting    Intent = "greeting"
	Blueprint   Intent = "blueprint"
)

// priority is the fixed evaluation order; the first matching route wins.
var priority = []struct {
	intent Intent
	label  string
}{
	{Thanks, rules.IntentThanks},
	{Pricing, rules.IntentPricing},
	{Services, rules.IntentServices},
	{Timeline, rules.IntentTimeline},
	{Performance, rules.IntentPerformance},
	{NextSteps, rules.IntentNextSteps},
	{Greeting, rules.IntentGreeting},
}

// Predicate decides whether a route claims a message. normalized comes from
// rules.Normalize; history holds the turns before the message.
type Predicate func(normalized string, history []chat.Message) bool

// Route pairs an intent with the predicate that selects it.
type Route struct {
	Intent Intent
	Match  Predicate
}

// Router evaluates routes top to bottom and commits to the first match.
type Router struct {
	routes []Route
}

// NewRouter builds the routes from the intent keyword groups.
// Groups missing from intents never match.
func NewRouter(intents []rules.Rule) *Router {
	byLabel := make(map[string]rules.Rule, len(intents))
	for _, rule := range intents {
		byLabel[rule.Label] = rule
	}

	routes := make([]Route, 0, len(priority))
	for _, entry := range priority {
		rule := byLabel[entry.label]
		match := keywordPredicate(rule)
		if entry.intent == Greeting {
			match = all(match, initialExchange)
		}
		routes = append(routes, Route{Intent: entry.intent, Match: match})
	}

	return &Router{routes: routes}
}

// Routes returns the ordered routes.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Classify returns the first intent whose predicate holds, or Blueprint.
func (r *Router) Classify(message string, history []chat.Message) Intent {
	normalized := rules.Normalize(message)
	for _, route := range r.routes {
		if route.Match(normalized, history) {
			return route.Intent
		}
	}
	return Blueprint
}

// IsInitialExchange reports whether the visitor has sent at most one message
// before the current one.
func IsInitialExchange(history []chat.Message) bool {
	return chat.CountUserMessages(history) <= 1
}

func initialExchange(_ string, history []chat.Message) bool {
	return IsInitialExchange(history)
}

func keywordPredicate(rule rules.Rule) Predicate {
	return func(normalized string, _ []chat.Message) bool {
		return rule.Matches(normalized)
	}
}

func all(predicates ...Predicate) Predicate {
	return func(normalized string, history []chat.Message) bool {
		for _, p := range predicates {
			if !p(normalized, history) {
				return false
			}
		}
		return true
	}
}

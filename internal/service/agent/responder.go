// Package agent composes scripted concierge replies from accumulated signals.
package agent

import (
	"github.com/zhouzirui/campaign-concierge/backend/internal/analysis/intent"
	"github.com/zhouzirui/campaign-concierge/backend/internal/analysis/signal"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
)

// Turn is the input of one exchange. History holds the turns before Message.
type Turn struct {
	Message string
	History []chat.Message
	Context chat.AgentContext
}

// Result is the engine output for one exchange.
type Result struct {
	Reply   string            `json:"reply"`
	Context chat.AgentContext `json:"updatedContext"`
	Tags    []string          `json:"tags"`
	Intent  intent.Intent     `json:"intent"`
}

// Responder runs extraction, routing and composition for a single message.
type Responder struct {
	extractor *signal.Extractor
	router    *intent.Router
}

// NewResponder builds a responder over catalog.
func NewResponder(catalog rules.Catalog) *Responder {
	return &Responder{
		extractor: signal.NewExtractor(catalog),
		router:    intent.NewRouter(catalog.Intents),
	}
}

// Respond is deterministic and never fails; ctx is not modified.
func (r *Responder) Respond(latest string, history []chat.Message, ctx chat.AgentContext) Result {
	return r.reply(r.route(r.extract(Turn{Message: latest, History: history, Context: ctx})))
}

// drafted is a turn whose context already includes the latest message.
type drafted struct {
	turn    Turn
	context chat.AgentContext
}

// routed is a drafted turn with its chosen intent.
type routed struct {
	drafted
	intent intent.Intent
}

func (r *Responder) extract(turn Turn) drafted {
	return drafted{turn: turn, context: r.extractor.Extract(turn.Message, turn.Context)}
}

func (r *Responder) route(d drafted) routed {
	return routed{drafted: d, intent: r.router.Classify(d.turn.Message, d.turn.History)}
}

func (r *Responder) reply(rt routed) Result {
	text, tags := composeReply(rt.intent, rt.context)
	return Result{
		Reply:   text,
		Context: rt.context,
		Tags:    tags,
		Intent:  rt.intent,
	}
}

package agent

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/campaign-concierge/backend/internal/analysis/intent"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
)

const segmentSeparator = "\n\n"

// Reply tags attached to agent messages.
const (
	TagRapport   = "rapport"
	TagInsight   = "insight"
	TagBudget    = "budget"
	TagServices  = "services"
	TagTimeline  = "timeline"
	TagProof     = "proof"
	TagHandoff   = "handoff"
	TagWelcome   = "welcome"
	TagBlueprint = "blueprint"
)

// segment renders one paragraph of a reply; an empty result is dropped.
type segment func(ctx chat.AgentContext) string

// template describes how one intent answers.
type template struct {
	tags     []string
	segments []segment
}

var templates = map[intent.Intent]template{
	intent.Thanks: {
		tags: []string{TagRapport},
		segments: []segment{
			fixed("You're very welcome! It's been great learning about what you're building."),
			snapshot("Here's the momentum we've built so far:"),
			fixed("Whenever you're ready, I can line up a strategist to turn this into a plan."),
		},
	},
	intent.Pricing: {
		tags: []string{TagBudget},
		segments: []segment{
			fixed("Pricing scales with scope: most partners start with a focused launch sprint, then move to a monthly retainer once the winning channels are clear."),
			either(hasBudget,
				func(ctx chat.AgentContext) string {
					return fmt.Sprintf("With %s to work with, I'd put most of it behind %s first and keep a slice for testing.", ctx.Budget, channelsOr(ctx, "the one or two channels with the fastest payback"))
				},
				fixed("Share a rough monthly budget, even a range, and I'll map it to a realistic channel mix."),
			),
			when(hasGoals, func(ctx chat.AgentContext) string {
				return fmt.Sprintf("Every dollar would be tied back to %s so you can see exactly what it buys.", joinLabels(ctx.Goals))
			}),
		},
	},
	intent.Services: {
		tags: []string{TagServices},
		segments: []segment{
			fixed("We run full-funnel growth: positioning, creative, paid media, SEO, content and lifecycle email, all under one plan."),
			either(hasChannels,
				func(ctx chat.AgentContext) string {
					return fmt.Sprintf("Since you mentioned %s, we'd start by auditing what's already running there and double down on what works.", joinLabels(ctx.Channels))
				},
				fixed("Tell me which channels you're using today and I'll point out where we'd plug in first."),
			),
			when(hasPainPoints, func(ctx chat.AgentContext) string {
				return fmt.Sprintf("We'd also tackle %s early so new spend isn't leaking out of the funnel.", strings.ToLower(joinLabels(ctx.PainPoints)))
			}),
		},
	},
	intent.Timeline: {
		tags: []string{TagTimeline},
		segments: []segment{
			fixed("Most teams see their first campaigns live within two to three weeks of kickoff."),
			either(hasTimeline,
				func(ctx chat.AgentContext) string {
					return fmt.Sprintf("Working back from %s, we'd lock strategy in week one and launch in stages so early data shapes the rest.", ctx.Timeline)
				},
				fixed("When do you need to see momentum? A target date helps me plan the ramp."),
			),
		},
	},
	intent.Performance: {
		tags: []string{TagProof},
		segments: []segment{
			fixed("We measure everything against pipeline and revenue, not vanity metrics, and share a live dashboard from day one."),
			either(hasGoals,
				func(ctx chat.AgentContext) string {
					return fmt.Sprintf("For %s programs, I can walk you through case studies with the before-and-after numbers.", joinLabels(ctx.Goals))
				},
				fixed("Tell me what you're aiming for and I'll pull the case studies closest to it."),
			),
		},
	},
	intent.NextSteps: {
		tags: []string{TagHandoff},
		segments: []segment{
			fixed("Love it. The next step is a 30-minute strategy call with one of our leads."),
			either(hasContact,
				func(ctx chat.AgentContext) string {
					return fmt.Sprintf("I'll have someone reach out at %s with a few time slots.", ctx.Contact)
				},
				fixed("Drop your best email and we'll send over a few time slots."),
			),
			when(func(ctx chat.AgentContext) bool { return hasBudget(ctx) || hasTimeline(ctx) }, func(ctx chat.AgentContext) string {
				return fmt.Sprintf("We'll come prepared with a plan sized for %s.", planFrame(ctx))
			}),
		},
	},
	intent.Greeting: {
		tags: []string{TagWelcome},
		segments: []segment{
			fixed("Hey there! I'm the campaign concierge. I help map out growth plans before you ever talk to a salesperson."),
			either(hasSignal,
				func(ctx chat.AgentContext) string {
					return fmt.Sprintf("I already caught a few details (%s), so we're off to a good start.", strings.Join(Summarize(ctx), "; "))
				},
				fixed("What are you hoping to grow (leads, awareness, sales) and where do you show up today?"),
			),
		},
	},
}

// composeReply renders the reply for kind against ctx and returns it with its tags.
func composeReply(kind intent.Intent, ctx chat.AgentContext) (string, []string) {
	if kind == intent.Blueprint {
		return buildBlueprint(ctx)
	}

	tmpl, ok := templates[kind]
	if !ok {
		return buildBlueprint(ctx)
	}

	tags := append([]string(nil), tmpl.tags...)
	if kind == intent.Thanks && hasSignal(ctx) {
		tags = append(tags, TagInsight)
	}
	return join(ctx, tmpl.segments), tags
}

func join(ctx chat.AgentContext, segments []segment) string {
	parts := make([]string, 0, len(segments))
	for _, build := range segments {
		if text := strings.TrimSpace(build(ctx)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, segmentSeparator)
}

func fixed(text string) segment {
	return func(chat.AgentContext) string { return text }
}

func when(cond func(chat.AgentContext) bool, build segment) segment {
	return func(ctx chat.AgentContext) string {
		if !cond(ctx) {
			return ""
		}
		return build(ctx)
	}
}

func either(cond func(chat.AgentContext) bool, present, absent segment) segment {
	return func(ctx chat.AgentContext) string {
		if cond(ctx) {
			return present(ctx)
		}
		return absent(ctx)
	}
}

func snapshot(heading string) segment {
	return func(ctx chat.AgentContext) string {
		lines := Summarize(ctx)
		if len(lines) == 0 {
			return ""
		}
		return heading + "\n" + bulletList(lines)
	}
}

func hasGoals(ctx chat.AgentContext) bool      { return len(ctx.Goals) > 0 }
func hasChannels(ctx chat.AgentContext) bool   { return len(ctx.Channels) > 0 }
func hasPainPoints(ctx chat.AgentContext) bool { return len(ctx.PainPoints) > 0 }
func hasBudget(ctx chat.AgentContext) bool     { return ctx.Budget != "" }
func hasTimeline(ctx chat.AgentContext) bool   { return ctx.Timeline != "" }
func hasContact(ctx chat.AgentContext) bool    { return ctx.Contact != "" }

func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
}

func channelsOr(ctx chat.AgentContext, fallback string) string {
	if len(ctx.Channels) == 0 {
		return fallback
	}
	return joinLabels(ctx.Channels)
}

func planFrame(ctx chat.AgentContext) string {
	switch {
	case hasBudget(ctx) && hasTimeline(ctx):
		return fmt.Sprintf("%s on a %s runway", ctx.Budget, ctx.Timeline)
	case hasBudget(ctx):
		return ctx.Budget
	default:
		return ctx.Timeline
	}
}

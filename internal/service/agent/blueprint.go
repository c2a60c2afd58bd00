package agent

import (
	"strings"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
)

const (
	budgetAsk  = "What budget range are you working with? Even a ballpark like $5k/mo helps me size the plan."
	contactAsk = "If you'd like a strategist to follow up with a tailored version, drop your best email."
)

// buildBlueprint renders the fallback campaign outline followed by whichever
// asks are still open and the momentum snapshot.
func buildBlueprint(ctx chat.AgentContext) (string, []string) {
	tags := []string{TagBlueprint}
	segments := []string{blueprintOutline(ctx)}

	if !hasBudget(ctx) {
		segments = append(segments, budgetAsk)
	}
	if !hasContact(ctx) {
		segments = append(segments, contactAsk)
	}
	if lines := Summarize(ctx); len(lines) > 0 {
		segments = append(segments, "Signal snapshot:\n"+bulletList(lines))
		tags = append(tags, TagInsight)
	}

	return strings.Join(segments, segmentSeparator), tags
}

func blueprintOutline(ctx chat.AgentContext) string {
	opening := "Here's a starter blueprint we can sharpen together:"
	if hasGoals(ctx) || hasChannels(ctx) {
		opening = "Here's how I'd shape a campaign around what you've shared:"
	}

	lines := []string{
		opening,
		"• Mission control: " + missionControl(ctx),
		"• Channel mix: " + valueOr(joinLabels(ctx.Channels), "a focused mix of search, social and email, weighted toward where your buyers already are"),
		"• Friction fix: " + valueOr(joinLabels(ctx.PainPoints), "tighten the funnel wherever prospects drop off"),
		"• Speed to launch: " + valueOr(ctx.Timeline, "a 30-day sprint to first results"),
		"• Budget choreography: " + valueOr(ctx.Budget, "a test-and-scale split, 70% proven channels and 30% experiments"),
	}
	return strings.Join(lines, "\n")
}

func missionControl(ctx chat.AgentContext) string {
	goal := valueOr(joinLabels(ctx.Goals), "one north-star goal (pipeline, awareness or revenue)")
	if len(ctx.BrandTraits) == 0 {
		return goal
	}
	return goal + " with a " + strings.ToLower(joinLabels(ctx.BrandTraits)) + " voice"
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

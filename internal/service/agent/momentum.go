package agent

import (
	"strings"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
)

// Summarize projects ctx into labelled lines in a fixed order: goals,
// channels, pain points, budget, timeline, contact. Absent fields are skipped.
func Summarize(ctx chat.AgentContext) []string {
	lines := make([]string, 0, 6)
	if len(ctx.Goals) > 0 {
		lines = append(lines, "Goals: "+strings.Join(ctx.Goals, ", "))
	}
	if len(ctx.Channels) > 0 {
		lines = append(lines, "Channels: "+strings.Join(ctx.Channels, ", "))
	}
	if len(ctx.PainPoints) > 0 {
		lines = append(lines, "Pain points: "+strings.Join(ctx.PainPoints, ", "))
	}
	if ctx.Budget != "" {
		lines = append(lines, "Budget: "+ctx.Budget)
	}
	if ctx.Timeline != "" {
		lines = append(lines, "Timeline: "+ctx.Timeline)
	}
	if ctx.Contact != "" {
		lines = append(lines, "Contact: "+ctx.Contact)
	}
	return lines
}

// hasSignal reports whether Summarize would produce anything.
func hasSignal(ctx chat.AgentContext) bool {
	return len(ctx.Goals) > 0 || len(ctx.Channels) > 0 || len(ctx.PainPoints) > 0 ||
		ctx.Budget != "" || ctx.Timeline != "" || ctx.Contact != ""
}

func bulletList(lines []string) string {
	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("• ")
		builder.WriteString(line)
	}
	return builder.String()
}

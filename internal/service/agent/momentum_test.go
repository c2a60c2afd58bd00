package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
)

func TestSummarizeEmpty(t *testing.T) {
	lines := Summarize(chat.NewContext())
	assert.NotNil(t, lines)
	assert.Len(t, lines, 0)
}

func TestSummarizeGoalsOnly(t *testing.T) {
	ctx := chat.NewContext()
	ctx.Goals = []string{"Lead Generation"}

	assert.Equal(t, []string{"Goals: Lead Generation"}, Summarize(ctx))
}

func TestSummarizeOrder(t *testing.T) {
	ctx := chat.AgentContext{
		Contact:     "joe@acme.com",
		Timeline:    "Q1",
		Budget:      "$10k",
		PainPoints:  []string{"Low Conversion"},
		BrandTraits: []string{"Bold"},
		Channels:    []string{"SEO", "Email Marketing"},
		Goals:       []string{"Sales Growth"},
	}

	assert.Equal(t, []string{
		"Goals: Sales Growth",
		"Channels: SEO, Email Marketing",
		"Pain points: Low Conversion",
		"Budget: $10k",
		"Timeline: Q1",
		"Contact: joe@acme.com",
	}, Summarize(ctx))
}

func TestBrandTraitsAloneAreNotASignal(t *testing.T) {
	ctx := chat.NewContext()
	ctx.BrandTraits = []string{"Playful"}

	assert.False(t, hasSignal(ctx))
	assert.Empty(t, Summarize(ctx))
}

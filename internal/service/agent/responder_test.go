package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/campaign-concierge/backend/internal/analysis/intent"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
)

func newResponder() *Responder {
	return NewResponder(rules.Seed())
}

func TestRespondFirstMessageBlueprint(t *testing.T) {
	result := newResponder().Respond("We want to boost leads, budget is $10k, email me at joe@acme.com", nil, chat.NewContext())

	assert.Equal(t, intent.Blueprint, result.Intent)
	assert.Equal(t, []string{"Lead Generation"}, result.Context.Goals)
	assert.Equal(t, "$10k", result.Context.Budget)
	assert.Equal(t, "joe@acme.com", result.Context.Contact)

	assert.True(t, strings.HasPrefix(result.Reply, "Here's how I'd shape a campaign around what you've shared:"))
	assert.Contains(t, result.Reply, "Signal snapshot:\n• Goals: Lead Generation\n• Budget: $10k\n• Contact: joe@acme.com")
	assert.NotContains(t, result.Reply, budgetAsk)
	assert.NotContains(t, result.Reply, contactAsk)
	assert.Equal(t, []string{TagBlueprint, TagInsight}, result.Tags)
}

func TestRespondBlueprintWithoutSignals(t *testing.T) {
	result := newResponder().Respond("We sell handmade candles", nil, chat.NewContext())

	require.Equal(t, intent.Blueprint, result.Intent)
	assert.Equal(t, []string{TagBlueprint}, result.Tags)

	segments := strings.Split(result.Reply, segmentSeparator)
	require.Len(t, segments, 3)
	assert.Len(t, strings.Split(segments[0], "\n"), 6)
	assert.True(t, strings.HasPrefix(segments[0], "Here's a starter blueprint"))
	assert.Equal(t, budgetAsk, segments[1])
	assert.Equal(t, contactAsk, segments[2])
	assert.NotContains(t, result.Reply, "Signal snapshot")
}

func TestRespondBlueprintVoiceFromBrandTraits(t *testing.T) {
	ctx := chat.NewContext()
	ctx.BrandTraits = []string{"Playful", "Bold"}
	ctx.Goals = []string{"Brand Awareness"}

	result := newResponder().Respond("We sell handmade candles", nil, ctx)
	assert.Contains(t, result.Reply, "• Mission control: Brand Awareness with a playful and bold voice")
}

func TestRespondThanksPriority(t *testing.T) {
	result := newResponder().Respond("Thank you! How much does it cost?", nil, chat.NewContext())

	assert.Equal(t, intent.Thanks, result.Intent)
	assert.Equal(t, []string{TagRapport}, result.Tags)
	assert.NotContains(t, result.Reply, "momentum we've built")
}

func TestRespondThanksWithSnapshot(t *testing.T) {
	ctx := chat.NewContext()
	ctx.Goals = []string{"Lead Generation"}
	ctx.Budget = "$10k"

	result := newResponder().Respond("thanks!", nil, ctx)

	assert.Equal(t, []string{TagRapport, TagInsight}, result.Tags)
	assert.Contains(t, result.Reply, "Here's the momentum we've built so far:\n• Goals: Lead Generation\n• Budget: $10k")
}

func TestRespondPricingUsesBudget(t *testing.T) {
	responder := newResponder()

	withBudget := chat.NewContext()
	withBudget.Budget = "$10k"
	result := responder.Respond("how much would this cost?", nil, withBudget)
	assert.Equal(t, intent.Pricing, result.Intent)
	assert.Equal(t, []string{TagBudget}, result.Tags)
	assert.Contains(t, result.Reply, "With $10k to work with")

	result = responder.Respond("how much would this cost?", nil, chat.NewContext())
	assert.Contains(t, result.Reply, "Share a rough monthly budget")
}

func TestRespondNextStepsUsesContact(t *testing.T) {
	ctx := chat.NewContext()
	ctx.Contact = "ana@studio.co"

	result := newResponder().Respond("Can we book a call?", nil, ctx)

	assert.Equal(t, intent.NextSteps, result.Intent)
	assert.Equal(t, []string{TagHandoff}, result.Tags)
	assert.Contains(t, result.Reply, "reach out at ana@studio.co")
}

func TestRespondGreetingMentionsCapturedDetails(t *testing.T) {
	result := newResponder().Respond("Hi, we need more leads", nil, chat.NewContext())

	assert.Equal(t, intent.Greeting, result.Intent)
	assert.Equal(t, []string{TagWelcome}, result.Tags)
	assert.Contains(t, result.Reply, "(Goals: Lead Generation)")
}

func TestRespondSegmentsAreSeparated(t *testing.T) {
	result := newResponder().Respond("What services do you offer?", nil, chat.NewContext())

	segments := strings.Split(result.Reply, "\n\n")
	assert.Len(t, segments, 2)
	for _, s := range segments {
		assert.NotEmpty(t, strings.TrimSpace(s))
	}
}

func TestRespondIsPure(t *testing.T) {
	responder := newResponder()
	ctx := chat.NewContext()
	ctx.Goals = []string{"Brand Awareness"}
	history := []chat.Message{{Sender: chat.SenderUser, Text: "hello"}}

	first := responder.Respond("we post on tiktok", history, ctx)
	second := responder.Respond("we post on tiktok", history, ctx)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("responses differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"Brand Awareness"}, ctx.Goals)
	assert.Empty(t, ctx.Channels)
}

func TestPipelineMatchesResponder(t *testing.T) {
	responder := newResponder()
	pipeline, err := NewPipeline(context.Background(), responder)
	require.NoError(t, err)

	turn := Turn{
		Message: "We want to boost leads, budget is $10k, email me at joe@acme.com",
		History: []chat.Message{{Sender: chat.SenderUser, Text: "hi"}},
		Context: chat.NewContext(),
	}

	got, err := pipeline.Run(context.Background(), turn)
	require.NoError(t, err)

	want := responder.Respond(turn.Message, turn.History, turn.Context)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pipeline result mismatch (-want +got):\n%s", diff)
	}
}

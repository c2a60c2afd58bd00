package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
)

func TestRunChatThreadsContext(t *testing.T) {
	in := strings.NewReader("hi\n\nwe need more leads\nthanks!\n")
	var out bytes.Buffer

	require.NoError(t, runChat(agent.NewResponder(rules.Seed()), in, &out))

	transcript := out.String()
	assert.Contains(t, transcript, "[greeting] tags=welcome")
	assert.Contains(t, transcript, "[thanks] tags=rapport,insight")
	assert.Contains(t, transcript, "• Goals: Lead Generation")
}

func TestRespondCommandPrintsJSON(t *testing.T) {
	var out bytes.Buffer
	respondCmd.SetOut(&out)
	t.Cleanup(func() { respondCmd.SetOut(nil) })

	require.NoError(t, respondCmd.RunE(respondCmd, []string{"how", "much", "does", "it", "cost?"}))

	var result struct {
		Reply  string   `json:"reply"`
		Tags   []string `json:"tags"`
		Intent string   `json:"intent"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "pricing", result.Intent)
	assert.Equal(t, []string{"budget"}, result.Tags)
	assert.NotEmpty(t, result.Reply)
}

package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{name: "dollar shorthand", text: "budget is $10k", want: "$10k", found: true},
		{name: "per month", text: "around 5,000 per month", want: "5,000 per month", found: true},
		{name: "slash mo", text: "we can do $2.5k/mo", want: "$2.5k/mo", found: true},
		{name: "currency word", text: "roughly 10000 USD", want: "10000 USD", found: true},
		{name: "monthly", text: "$3,500 monthly", want: "$3,500 monthly", found: true},
		{name: "quarter token is not money", text: "launching in Q1", found: false},
		{name: "year after quarter reads as budget", text: "We launch in Q3 2025", want: "2025", found: true},
		{name: "no figures", text: "not sure yet", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBudget(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTimeline(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{name: "relative span", text: "launch in the next 3 months", want: "next 3 months", found: true},
		{name: "quarter with year", text: "Targeting Q3 2025", want: "Q3 2025", found: true},
		{name: "next quarter", text: "maybe next quarter", want: "next quarter", found: true},
		{name: "relative span wins", text: "next quarter or the next 2 weeks", want: "next 2 weeks", found: true},
		{name: "whitespace collapsed", text: "in the next   couple of   months", want: "next couple of months", found: true},
		{name: "nothing", text: "sometime soon", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTimeline(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractContact(t *testing.T) {
	got, ok := ExtractContact("ping Joe.Smith+ads@Acme.co.uk today")
	assert.True(t, ok)
	assert.Equal(t, "Joe.Smith+ads@Acme.co.uk", got)

	_, ok = ExtractContact("call me at joe at acme")
	assert.False(t, ok)
}

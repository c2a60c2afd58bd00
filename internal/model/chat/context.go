package chat

// AgentContext accumulates the signals detected over a conversation.
//
// The label sets only ever grow. Budget, Timeline and Contact hold the most
// recently detected value; an empty string means nothing was detected yet.
type AgentContext struct {
	Goals       []string `json:"goals"`
	Channels    []string `json:"channels"`
	BrandTraits []string `json:"brandTraits"`
	PainPoints  []string `json:"painPoints"`
	Budget      string   `json:"budget,omitempty"`
	Timeline    string   `json:"timeline,omitempty"`
	Contact     string   `json:"contact,omitempty"`
}

// NewContext returns an empty context with non-nil sets.
func NewContext() AgentContext {
	return AgentContext{
		Goals:       []string{},
		Channels:    []string{},
		BrandTraits: []string{},
		PainPoints:  []string{},
	}
}

// Clone returns a deep copy so callers can derive new values without sharing slices.
func (c AgentContext) Clone() AgentContext {
	return AgentContext{
		Goals:       cloneStrings(c.Goals),
		Channels:    cloneStrings(c.Channels),
		BrandTraits: cloneStrings(c.BrandTraits),
		PainPoints:  cloneStrings(c.PainPoints),
		Budget:      c.Budget,
		Timeline:    c.Timeline,
		Contact:     c.Contact,
	}
}

// IsEmpty reports whether no signal of any kind has been captured.
func (c AgentContext) IsEmpty() bool {
	return len(c.Goals) == 0 && len(c.Channels) == 0 && len(c.BrandTraits) == 0 &&
		len(c.PainPoints) == 0 && c.Budget == "" && c.Timeline == "" && c.Contact == ""
}

func cloneStrings(items []string) []string {
	return append([]string{}, items...)
}

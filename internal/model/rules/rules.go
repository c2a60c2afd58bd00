package rules

import "strings"

// Dimension names one of the keyword tables in a Catalog.
type Dimension string

const (
	Goals       Dimension = "goals"
	Channels    Dimension = "channels"
	PainPoints  Dimension = "painPoints"
	BrandTraits Dimension = "brandTraits"
	Intents     Dimension = "intents"
)

// Dimensions lists every table in catalog order.
var Dimensions = []Dimension{Goals, Channels, PainPoints, BrandTraits, Intents}

// Rule maps a label to the phrases that trigger it.
type Rule struct {
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Matches reports whether any keyword occurs in normalized text.
// Keywords are compared lower-cased; callers pass text from Normalize.
func (r Rule) Matches(normalized string) bool {
	for _, keyword := range r.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// Catalog is the full set of matcher tables.
type Catalog struct {
	Goals       []Rule `json:"goals" yaml:"goals"`
	Channels    []Rule `json:"channels" yaml:"channels"`
	PainPoints  []Rule `json:"painPoints" yaml:"painPoints"`
	BrandTraits []Rule `json:"brandTraits" yaml:"brandTraits"`
	Intents     []Rule `json:"intents" yaml:"intents"`
}

// Table returns the rules for a dimension.
func (c Catalog) Table(d Dimension) ([]Rule, bool) {
	switch d {
	case Goals:
		return c.Goals, true
	case Channels:
		return c.Channels, true
	case PainPoints:
		return c.PainPoints, true
	case BrandTraits:
		return c.BrandTraits, true
	case Intents:
		return c.Intents, true
	default:
		return nil, false
	}
}

// Find looks up a rule by label within a dimension.
func (c Catalog) Find(d Dimension, label string) (Rule, bool) {
	table, _ := c.Table(d)
	for _, rule := range table {
		if rule.Label == label {
			return rule, true
		}
	}
	return Rule{}, false
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Goals:       cloneRules(c.Goals),
		Channels:    cloneRules(c.Channels),
		PainPoints:  cloneRules(c.PainPoints),
		BrandTraits: cloneRules(c.BrandTraits),
		Intents:     cloneRules(c.Intents),
	}
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		out[i] = Rule{Label: rule.Label, Keywords: append([]string(nil), rule.Keywords...)}
	}
	return out
}

// Normalize lower-cases text, collapses whitespace and pads it with a single
// space on each side so keywords such as " hi " can anchor on word edges.
func Normalize(text string) string {
	return " " + strings.Join(strings.Fields(strings.ToLower(text)), " ") + " "
}

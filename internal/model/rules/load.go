package rules

import (
	"log/slog"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

var knownIntents = []string{
	IntentThanks, IntentPricing, IntentServices, IntentTimeline,
	IntentPerformance, IntentNextSteps, IntentGreeting,
}

// LoadFile reads a YAML catalog from path and merges it into base.
func LoadFile(path string, base Catalog) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, oops.In("rules").With("path", path).Wrapf(err, "failed to read rules file")
	}

	extension, err := Parse(data)
	if err != nil {
		return Catalog{}, oops.In("rules").With("path", path).Wrap(err)
	}

	return Merge(base, extension), nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, oops.In("rules").Wrapf(err, "failed to parse YAML rules")
	}
	return catalog, nil
}

// Merge appends extension to base. Keywords of an existing label are added to
// it; unseen labels are appended to the end of their table. Intent labels the
// router does not know are dropped.
func Merge(base, extension Catalog) Catalog {
	merged := base.Clone()
	merged.Goals = mergeTable(merged.Goals, extension.Goals)
	merged.Channels = mergeTable(merged.Channels, extension.Channels)
	merged.PainPoints = mergeTable(merged.PainPoints, extension.PainPoints)
	merged.BrandTraits = mergeTable(merged.BrandTraits, extension.BrandTraits)

	intents := lo.Filter(extension.Intents, func(rule Rule, _ int) bool {
		if lo.Contains(knownIntents, rule.Label) {
			return true
		}
		slog.Warn("ignoring unknown intent group in rules file", "label", rule.Label)
		return false
	})
	merged.Intents = mergeTable(merged.Intents, intents)
	return merged
}

func mergeTable(table, extra []Rule) []Rule {
	for _, rule := range extra {
		label := strings.TrimSpace(rule.Label)
		if label == "" {
			continue
		}
		keywords := lo.Compact(lo.Map(rule.Keywords, func(k string, _ int) string {
			return strings.ToLower(k)
		}))

		_, idx, found := lo.FindIndexOf(table, func(r Rule) bool { return r.Label == label })
		if found {
			table[idx].Keywords = lo.Uniq(append(table[idx].Keywords, keywords...))
			continue
		}
		table = append(table, Rule{Label: label, Keywords: lo.Uniq(keywords)})
	}
	return table
}

package reasoning

import (
	"gonum.org/v1/gonum/stat"

	"github.com/casetrace/casetrace/pkg/models"
)

// requiredEvidenceTypes must all be present for a gap-free chain.
var requiredEvidenceTypes = []models.EvidenceType{
	models.EvidenceDocument,
	models.EvidenceElectronic,
	models.EvidenceAudioVideo,
}

// analyzeEvidenceChain grades the evidence set on completeness (type
// coverage) and consistency (mean weight), then derives the strength tier
// and concrete gaps.
func analyzeEvidenceChain(evidences []models.Evidence) models.EvidenceChain {
	if len(evidences) == 0 {
		return models.EvidenceChain{
			Completeness: 0.0,
			Consistency:  0.0,
			Strength:     models.StrengthWeak,
			Gaps:         []string{"缺少证据材料"},
			Suggestions:  []string{"建议补充证据材料"},
		}
	}

	chain := models.EvidenceChain{
		Completeness: evidenceCompleteness(evidences),
		Consistency:  evidenceConsistency(evidences),
	}

	switch {
	case chain.Completeness >= 0.8 && chain.Consistency >= 0.8:
		chain.Strength = models.StrengthStrong
	case chain.Completeness >= 0.6 && chain.Consistency >= 0.6:
		chain.Strength = models.StrengthModerate
	default:
		chain.Strength = models.StrengthWeak
	}

	chain.Gaps = evidenceGaps(evidences)
	chain.Suggestions = evidenceSuggestions(chain.Gaps)
	return chain
}

// evidenceCompleteness counts distinct types against the three required ones.
func evidenceCompleteness(evidences []models.Evidence) float64 {
	types := make(map[models.EvidenceType]bool)
	for _, ev := range evidences {
		types[ev.Type] = true
	}

	completeness := float64(len(types)) / 3.0
	if completeness > 1.0 {
		completeness = 1.0
	}
	return completeness
}

func evidenceConsistency(evidences []models.Evidence) float64 {
	weights := make([]float64, len(evidences))
	for i, ev := range evidences {
		weights[i] = ev.Weight
	}
	return stat.Mean(weights, nil)
}

func evidenceGaps(evidences []models.Evidence) []string {
	present := make(map[models.EvidenceType]bool)
	for _, ev := range evidences {
		present[ev.Type] = true
	}

	gaps := make([]string, 0)
	for _, required := range requiredEvidenceTypes {
		if !present[required] {
			gaps = append(gaps, "缺少"+required.Label())
		}
	}

	if len(evidences) < 3 {
		gaps = append(gaps, "证据数量不足")
	}
	return gaps
}

func evidenceSuggestions(gaps []string) []string {
	if len(gaps) == 0 {
		return []string{"证据链较为完整"}
	}

	suggestions := make([]string, 0, len(gaps)+1)
	suggestions = append(suggestions, "建议补充以下证据:")
	for _, gap := range gaps {
		suggestions = append(suggestions, "  • "+gap)
	}
	return suggestions
}

package causal

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// RootCause is the verdict on what started the chain of events.
type RootCause struct {
	Cause      string
	Confidence float64
	Reason     string
	Others     []string
}

// Analysis is the full causal picture of one text.
type Analysis struct {
	Relations    []Relation
	Chains       []Chain
	Gaps         []Gap
	KeyCauses    []string
	KeyEffects   []string
	RootCause    RootCause
	Alternatives []string
}

// Analyze runs the full causal pipeline: extraction, chain building, gap
// detection, key-event ranking, root-cause determination, and alternative
// explanations.
func (r *Reasoner) Analyze(text string) Analysis {
	relations := r.ExtractRelations(text)
	chains := r.BuildChains(relations)

	gaps := make([]Gap, 0)
	for _, chain := range chains {
		gaps = append(gaps, r.DetectGaps(chain)...)
	}

	analysis := Analysis{
		Relations:    relations,
		Chains:       chains,
		Gaps:         gaps,
		KeyCauses:    rankByFrequency(relations, func(rel Relation) string { return rel.Cause }),
		KeyEffects:   rankByFrequency(relations, func(rel Relation) string { return rel.Effect }),
		RootCause:    determineRootCause(chains),
		Alternatives: alternativeExplanations(text, relations),
	}

	return analysis
}

// rankByFrequency returns the five most frequent events, ties broken by first
// appearance.
func rankByFrequency(relations []Relation, pick func(Relation) string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rel := range relations {
		event := pick(rel)
		if counts[event] == 0 {
			order = append(order, event)
		}
		counts[event]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

// determineRootCause picks the starting cause: unambiguous with a single
// chain, shortest root with several, unknown with none.
func determineRootCause(chains []Chain) RootCause {
	switch len(chains) {
	case 0:
		return RootCause{
			Cause:      "无法确定",
			Confidence: 0.0,
			Reason:     "未发现明确的因果链",
			Others:     make([]string, 0),
		}
	case 1:
		return RootCause{
			Cause:      chains[0].RootCause,
			Confidence: 0.9,
			Reason:     "单一因果链,根本原因明确",
			Others:     make([]string, 0),
		}
	}

	// several chains: the shortest root description is usually the most
	// fundamental one
	best := chains[0].RootCause
	others := make([]string, 0, len(chains))
	for _, chain := range chains {
		others = append(others, chain.RootCause)
		if utf8.RuneCountInString(chain.RootCause) < utf8.RuneCountInString(best) {
			best = chain.RootCause
		}
	}

	return RootCause{
		Cause:      best,
		Confidence: 0.7,
		Reason:     "存在多条因果链,选择最可能的原因",
		Others:     others,
	}
}

// alternativeExplanations lists innocent readings of the events that a
// one-sided causal story would miss.
func alternativeExplanations(text string, relations []Relation) []string {
	alternatives := make([]string, 0)

	if strings.Contains(text, "投诉") {
		alternatives = append(alternatives,
			"替代解释: 投诉可能是出于维护自身合法权益,而非恶意")
	}
	if strings.Contains(text, "争执") || strings.Contains(text, "冲突") {
		alternatives = append(alternatives,
			"替代解释: 争执可能是双方沟通不畅导致,而非单方面责任")
	}
	if strings.Contains(text, "网络") && strings.Contains(text, "发布") {
		alternatives = append(alternatives,
			"替代解释: 网络发布可能是出于警示他人,而非诽谤")
	}
	if len(relations) > 0 {
		alternatives = append(alternatives,
			"替代解释: 原因和结果之间可能存在其他未被观察到的中间因素")
	}

	return alternatives
}

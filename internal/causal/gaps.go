package causal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Gap is a detected discontinuity in a causal chain.
type Gap struct {
	ID             string
	FromEvent      string
	ToEvent        string
	Type           GapType
	Description    string
	PossibleCauses []string
}

// DetectGaps inspects one chain for missing intermediate links, a truncated
// root cause, and a truncated final effect. Gap IDs are sequential within
// the chain.
func (r *Reasoner) DetectGaps(chain Chain) []Gap {
	gaps := make([]Gap, 0)
	gapID := 1

	for i := 0; i+1 < len(chain.Relations); i++ {
		cur := chain.Relations[i]
		next := chain.Relations[i+1]
		if cur.Effect == next.Cause {
			continue
		}
		gaps = append(gaps, Gap{
			ID:        fmt.Sprintf("gap_%d", gapID),
			FromEvent: cur.Effect,
			ToEvent:   next.Cause,
			Type:      GapMissingIntermediate,
			Description: fmt.Sprintf("因果链断裂: %s → %s 之间缺少中间环节",
				cur.Effect, next.Cause),
			PossibleCauses: inferMissingCauses(next.Cause),
		})
		gapID++
	}

	if len(chain.Relations) > 0 {
		first := chain.Relations[0]
		if utf8.RuneCountInString(first.Cause) < 10 {
			gaps = append(gaps, Gap{
				ID:             fmt.Sprintf("gap_%d", gapID),
				FromEvent:      "?",
				ToEvent:        first.Cause,
				Type:           GapMissingCause,
				Description:    fmt.Sprintf("缺少根本原因: %s 之前可能有其他原因", first.Cause),
				PossibleCauses: inferMissingCauses(first.Cause),
			})
			gapID++
		}

		last := chain.Relations[len(chain.Relations)-1]
		if utf8.RuneCountInString(last.Effect) < 10 {
			gaps = append(gaps, Gap{
				ID:             fmt.Sprintf("gap_%d", gapID),
				FromEvent:      last.Effect,
				ToEvent:        "?",
				Type:           GapMissingEffect,
				Description:    fmt.Sprintf("缺少最终结果: %s 之后可能有其他结果", last.Effect),
				PossibleCauses: inferMissingEffects(last.Effect),
			})
		}
	}

	return gaps
}

func inferMissingCauses(event string) []string {
	causes := make([]string, 0)
	if strings.Contains(event, "争执") || strings.Contains(event, "冲突") {
		causes = append(causes, "情绪激动", "言语冲突", "行为不当", "误解")
	}
	if strings.Contains(event, "投诉") {
		causes = append(causes, "权益受损", "服务不满", "期望未满足", "纠纷未解决")
	}
	return causes
}

func inferMissingEffects(event string) []string {
	effects := make([]string, 0)
	if strings.Contains(event, "投诉") {
		effects = append(effects, "行政介入", "媒体曝光", "舆论发酵", "声誉受损")
	}
	if strings.Contains(event, "冲突") {
		effects = append(effects, "报警", "肢体冲突", "人身伤害", "财产损失")
	}
	return effects
}

// InferHiddenCauses flags causes in the chain that never appear as an effect
// and are not the root cause: side branches feeding the chain from events the
// narrative leaves unexplained. Advisory only; relation order.
func (r *Reasoner) InferHiddenCauses(chain Chain) []string {
	effects := make(map[string]bool, len(chain.Relations))
	for _, rel := range chain.Relations {
		effects[rel.Effect] = true
	}

	hidden := make([]string, 0)
	seen := make(map[string]bool)
	for _, rel := range chain.Relations {
		if effects[rel.Cause] || rel.Cause == chain.RootCause || seen[rel.Cause] {
			continue
		}
		seen[rel.Cause] = true
		hidden = append(hidden, fmt.Sprintf("隐藏原因: %s", rel.Cause))
	}

	return hidden
}

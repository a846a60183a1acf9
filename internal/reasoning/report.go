package reasoning

import (
	"fmt"
	"strings"

	"github.com/casetrace/casetrace/pkg/models"
)

// GenerateReport renders a reasoning result as a human-readable Chinese
// report.
func GenerateReport(result models.ReasoningResult) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	divider := strings.Repeat("=", 60)
	line(divider)
	line("深度推理分析报告")
	line(divider)

	line("\n【时间序列分析】")
	line("  时间范围: %s", orNone(result.TimeAnalysis.Timeline.TimeRange))
	line("  总持续时间: %s", orNone(result.TimeAnalysis.Timeline.TotalDuration))
	line("  关键时间点: %d 个", len(result.TimeAnalysis.CriticalTimestamps))
	line("  时间冲突: %d 个", len(result.TimeAnalysis.TimeConflicts))
	line("  逻辑有效性: %s", checkmark(result.TimeAnalysis.LogicValid))

	line("\n【因果关系分析】")
	line("  因果关系: %d 个", result.CausalAnalysis.RelationsCount)
	line("  因果链: %d 条", result.CausalAnalysis.ChainsCount)
	line("  因果缺口: %d 个", result.CausalAnalysis.GapsCount)
	line("  根本原因: %s", orNone(result.CausalAnalysis.RootCause))

	line("\n【矛盾检测】")
	line("  总矛盾数: %d 个", result.ConflictAnalysis.TotalConflicts)
	if len(result.ConflictAnalysis.FactConflicts) > 0 {
		line("  事实矛盾:")
		for _, conflict := range result.ConflictAnalysis.FactConflicts {
			line("    • %s", conflict.Description)
		}
	}

	line("\n【逻辑分析】")
	line("  逻辑有效性: %s", checkmark(result.LogicalAnalysis.LogicValid))
	line("  逻辑一致性: %.2f", result.LogicalAnalysis.LogicalConsistency)
	line("  逻辑完整性: %.2f", result.LogicalAnalysis.LogicalCompleteness)

	line("\n【预谋性分析】")
	premeditation := result.PremeditationAnalysis
	if premeditation.IsPremeditated {
		line("  是否预谋: ✅ 是")
	} else {
		line("  是否预谋: ❌ 否")
	}
	line("  预谋得分: %.2f", premeditation.PremeditationScore)
	line("  预谋迹象: %d 个", len(premeditation.Indicators))
	for _, indicator := range premeditation.Indicators {
		line("    • %s", indicator)
	}
	line("  推理: %s", premeditation.Reasoning)

	line("\n【证据链分析】")
	line("  完整度: %.2f", result.EvidenceChain.Completeness)
	line("  一致性: %.2f", result.EvidenceChain.Consistency)
	line("  强度: %s", result.EvidenceChain.Strength)

	line("\n【建议】")
	for _, rec := range result.Recommendations {
		line("  %s", rec)
	}

	line("\n【整体置信度】: %.2f", result.Confidence)
	line("\n" + divider)

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "无"
	}
	return s
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

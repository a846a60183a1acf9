package reasoning

import (
	"fmt"
	"strings"

	"github.com/casetrace/casetrace/pkg/models"
)

var premeditationKeywords = []string{"准备", "计划", "安排", "设计", "预谋", "策划"}
var planningKeywords = []string{"随即", "立刻", "立即", "马上", "紧接着"}
var calmKeywords = []string{"冷静", "拍照", "录像", "取证", "报警"}

// analyzePremeditation scores five independent indicators and classifies the
// narrative as premeditated at 0.5 or above.
func analyzePremeditation(text string, ta models.TimeAnalysis, ca models.CausalSummary) models.PremeditationAnalysis {
	score := 0.0
	indicators := make([]string, 0)

	if ta.TimestampsCount > 0 {
		for _, ct := range ta.CriticalTimestamps {
			if strings.Contains(ct.Event, "之前") {
				score += 0.2
				indicators = append(indicators, "存在准备时间")
				break
			}
		}
	}

	if ca.ChainsCount > 0 && ca.RootCauseConfidence > 0.7 {
		score += 0.2
		indicators = append(indicators, "因果链清晰,有明确目标")
	}

	if containsAnyKeyword(text, premeditationKeywords) {
		score += 0.3
		indicators = append(indicators, "出现预谋性关键词")
	}

	if containsAnyKeyword(text, planningKeywords) {
		score += 0.2
		indicators = append(indicators, "行为连贯,显示出计划性")
	}

	if containsAnyKeyword(text, calmKeywords) {
		score += 0.2
		indicators = append(indicators, "冷静执行,显示出专业性")
	}

	analysis := models.PremeditationAnalysis{
		IsPremeditated: score >= 0.5,
		Indicators:     indicators,
	}

	analysis.PremeditationScore = score
	if analysis.PremeditationScore > 1.0 {
		analysis.PremeditationScore = 1.0
	}

	switch {
	case score >= 0.7:
		analysis.Reasoning = fmt.Sprintf("高度预谋: 得分 %.2f, 存在 %d 个预谋迹象", score, len(indicators))
	case score >= 0.5:
		analysis.Reasoning = fmt.Sprintf("可能预谋: 得分 %.2f, 存在 %d 个预谋迹象", score, len(indicators))
	case score >= 0.3:
		analysis.Reasoning = fmt.Sprintf("不太像预谋: 得分 %.2f, 仅存在 %d 个预谋迹象", score, len(indicators))
	default:
		analysis.Reasoning = fmt.Sprintf("不太可能是预谋: 得分 %.2f", score)
	}

	return analysis
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

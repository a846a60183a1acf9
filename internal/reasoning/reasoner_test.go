package reasoning

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace/pkg/models"
)

func newTestReasoner() *Reasoner {
	return NewReasoner(Config{
		Now: func() time.Time {
			return time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)
		},
	})
}

func TestReason_FactContradiction(t *testing.T) {
	r := newTestReasoner()

	result := r.Reason("他是股东。他不是股东。", nil, nil)

	require.Len(t, result.ConflictAnalysis.FactConflicts, 1)
	conflict := result.ConflictAnalysis.FactConflicts[0]
	assert.Equal(t, "fact", conflict.Type)
	assert.Equal(t, models.SeverityMedium, conflict.Severity)
	assert.Equal(t, []int{0, 1}, conflict.Sentences)
	assert.Contains(t, conflict.Description, "事实矛盾")
	assert.Equal(t, 1, result.ConflictAnalysis.TotalConflicts)
}

func TestReason_EvidenceContradiction(t *testing.T) {
	r := newTestReasoner()

	evidences := []models.Evidence{
		{Name: "合同", Description: "约定是分期付款", Type: models.EvidenceDocument, Weight: 0.9},
		{Name: "聊天记录", Description: "对方称合同不是真实意思表示", Type: models.EvidenceElectronic, Weight: 0.6},
	}

	result := r.Reason("双方就付款方式产生分歧。", evidences, nil)

	require.Len(t, result.ConflictAnalysis.EvidenceConflicts, 1)
	conflict := result.ConflictAnalysis.EvidenceConflicts[0]
	assert.Equal(t, "evidence", conflict.Type)
	assert.Equal(t, models.SeverityHigh, conflict.Severity)
	assert.Equal(t, []int{0, 1}, conflict.Evidences)
}

func TestReason_NoEvidence(t *testing.T) {
	r := newTestReasoner()

	result := r.Reason("店铺正常营业。", nil, nil)

	chain := result.EvidenceChain
	assert.Equal(t, models.StrengthWeak, chain.Strength)
	assert.InDelta(t, 0.0, chain.Completeness, 1e-9)
	assert.Equal(t, []string{"缺少证据材料"}, chain.Gaps)
	assert.Equal(t, []string{"建议补充证据材料"}, chain.Suggestions)
}

func TestReason_StrongEvidenceChain(t *testing.T) {
	r := newTestReasoner()

	evidences := []models.Evidence{
		{Name: "合同", Description: "双方签订的买卖合同", Type: models.EvidenceDocument, Weight: 0.9},
		{Name: "转账记录", Description: "支付宝转账凭证", Type: models.EvidenceElectronic, Weight: 0.9},
		{Name: "监控录像", Description: "店内监控视频", Type: models.EvidenceAudioVideo, Weight: 0.9},
	}

	result := r.Reason("店铺正常营业。", evidences, nil)

	chain := result.EvidenceChain
	assert.Equal(t, models.StrengthStrong, chain.Strength)
	assert.InDelta(t, 1.0, chain.Completeness, 1e-9)
	assert.InDelta(t, 0.9, chain.Consistency, 1e-9)
	assert.Empty(t, chain.Gaps)
	assert.Equal(t, []string{"证据链较为完整"}, chain.Suggestions)
}

func TestReason_Premeditation(t *testing.T) {
	r := newTestReasoner()

	result := r.Reason("他提前准备了计划,随即立即行动,并冷静拍照取证。", nil, nil)

	p := result.PremeditationAnalysis
	assert.True(t, p.IsPremeditated)
	assert.InDelta(t, 0.7, p.PremeditationScore, 1e-9)
	assert.Contains(t, p.Indicators, "出现预谋性关键词")
	assert.Contains(t, p.Indicators, "行为连贯,显示出计划性")
	assert.Contains(t, p.Indicators, "冷静执行,显示出专业性")
	assert.True(t, strings.HasPrefix(p.Reasoning, "高度预谋"))
}

func TestReason_NotPremeditated(t *testing.T) {
	r := newTestReasoner()

	result := r.Reason("双方当场发生口角。", nil, nil)

	p := result.PremeditationAnalysis
	assert.False(t, p.IsPremeditated)
	assert.InDelta(t, 0.0, p.PremeditationScore, 1e-9)
	assert.Empty(t, p.Indicators)
	assert.True(t, strings.HasPrefix(p.Reasoning, "不太可能是预谋"))
}

func TestReason_ConfidenceBounds(t *testing.T) {
	r := newTestReasoner()

	texts := []string{
		"",
		"店铺正常营业。",
		"他是股东。他不是股东。",
		"因为商品存在质量问题所以她要求退款,她随后现场投诉并报警。",
	}

	for _, text := range texts {
		result := r.Reason(text, nil, nil)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestReason_Deterministic(t *testing.T) {
	r := newTestReasoner()
	text := "2024年5月1日下午3点她到店,4点支付了400元。支付后她立即要求退款,双方发生争执。对方现场报警并拍照取证。"

	first := r.Reason(text, nil, nil)
	second := r.Reason(text, nil, nil)

	first.AnalyzedAt = second.AnalyzedAt
	assert.Equal(t, first, second)
}

func TestReason_FullNarrative(t *testing.T) {
	r := newTestReasoner()
	text := "2024年5月1日下午3点她到店,4点支付了400元。支付后她立即要求退款,双方发生争执。对方现场报警并拍照取证。"

	result := r.Reason(text, nil, nil)

	assert.Greater(t, result.TimeAnalysis.TimestampsCount, 0)
	assert.NotEmpty(t, result.TimeAnalysis.CriticalTimestamps)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotZero(t, result.AnalyzedAt)
}

func TestGenerateReport(t *testing.T) {
	r := newTestReasoner()
	result := r.Reason("他是股东。他不是股东。", nil, nil)

	report := GenerateReport(result)

	assert.Contains(t, report, "深度推理分析报告")
	assert.Contains(t, report, "【时间序列分析】")
	assert.Contains(t, report, "【因果关系分析】")
	assert.Contains(t, report, "【矛盾检测】")
	assert.Contains(t, report, "【预谋性分析】")
	assert.Contains(t, report, "【证据链分析】")
	assert.Contains(t, report, "【整体置信度】")
	assert.Contains(t, report, "事实矛盾")
}

func TestAnalyzeLogic_ConsistencyDropsWithConflicts(t *testing.T) {
	conflicts := models.ConflictAnalysis{TotalConflicts: 3}
	logic := analyzeLogic(models.TimeAnalysis{LogicValid: true}, models.CausalSummary{}, conflicts)

	assert.InDelta(t, 0.7, logic.LogicalConsistency, 1e-9)
	assert.True(t, logic.LogicValid)
	assert.InDelta(t, 0.5, logic.LogicalCompleteness, 1e-9, "no chains means unknown completeness")
}

func TestAnalyzeLogic_CausalGapsInvalidate(t *testing.T) {
	logic := analyzeLogic(
		models.TimeAnalysis{LogicValid: true},
		models.CausalSummary{ChainsCount: 2, GapsCount: 3},
		models.ConflictAnalysis{},
	)

	assert.False(t, logic.LogicValid)
	assert.Contains(t, logic.LogicIssues, "因果逻辑存在问题")
	assert.InDelta(t, 0.3, logic.LogicalCompleteness, 1e-9)
}

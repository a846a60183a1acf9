// Package reasoning composes the temporal and causal analyzers with
// contradiction detection, premeditation scoring, and evidence-chain
// assessment into one deterministic reasoning run.
package reasoning

import (
	"fmt"
	"time"

	"github.com/casetrace/casetrace/internal/causal"
	"github.com/casetrace/casetrace/internal/temporal"
	"github.com/casetrace/casetrace/pkg/models"
)

// Config holds reasoner configuration.
type Config struct {
	// Now anchors relative time expressions when the text has no absolute
	// date, and stamps the result.
	Now func() time.Time
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{Now: time.Now}
}

// Reasoner runs the full pipeline. Stateless across calls; safe for
// concurrent use.
type Reasoner struct {
	temporal *temporal.Analyzer
	causal   *causal.Reasoner
	now      func() time.Time
}

// NewReasoner creates a reasoner from config.
func NewReasoner(config Config) *Reasoner {
	if config.Now == nil {
		config.Now = DefaultConfig().Now
	}
	return &Reasoner{
		temporal: temporal.NewAnalyzer(temporal.Config{Now: config.Now}),
		causal:   causal.NewReasoner(),
		now:      config.Now,
	}
}

// Reason analyzes one narrative with its evidence set. The context map is
// accepted for callers that carry request metadata; it does not influence
// the analysis. Identical inputs always produce identical results apart from
// the AnalyzedAt stamp.
func (r *Reasoner) Reason(text string, evidences []models.Evidence, context map[string]any) models.ReasoningResult {
	result := models.ReasoningResult{AnalyzedAt: r.now()}

	timestamps := r.temporal.ExtractTimestamps(text)
	timeline := r.temporal.BuildTimeline(timestamps)
	r.temporal.DetectConflicts(timeline)
	timeLogic := r.temporal.AnalyzeTimeLogic(timeline)

	result.TimeAnalysis = timeAnalysisOf(timestamps, timeLogic)

	causality := r.causal.Analyze(text)
	result.CausalAnalysis = models.CausalSummary{
		RelationsCount:          len(causality.Relations),
		ChainsCount:             len(causality.Chains),
		GapsCount:               len(causality.Gaps),
		RootCause:               causality.RootCause.Cause,
		RootCauseConfidence:     causality.RootCause.Confidence,
		KeyCauses:               causality.KeyCauses,
		KeyEffects:              causality.KeyEffects,
		AlternativeExplanations: causality.Alternatives,
	}

	result.ConflictAnalysis = detectConflicts(text, evidences)
	result.LogicalAnalysis = analyzeLogic(result.TimeAnalysis, result.CausalAnalysis, result.ConflictAnalysis)
	result.PremeditationAnalysis = analyzePremeditation(text, result.TimeAnalysis, result.CausalAnalysis)
	result.EvidenceChain = analyzeEvidenceChain(evidences)
	result.Recommendations = recommendations(result)
	result.Confidence = overallConfidence(result)

	return result
}

func timeAnalysisOf(timestamps []temporal.Timestamp, logic temporal.LogicSummary) models.TimeAnalysis {
	conflicts := make([]models.ConflictSummary, 0, len(logic.Conflicts))
	for _, c := range logic.Conflicts {
		conflicts = append(conflicts, models.ConflictSummary{
			Type:        string(c.Type),
			Description: c.Description,
			Severity:    c.Severity,
		})
	}

	return models.TimeAnalysis{
		TimestampsCount:    len(timestamps),
		Timeline:           logic.Summary,
		TimePatterns:       logic.Patterns,
		TimeGaps:           logic.Gaps,
		CriticalTimestamps: logic.Critical,
		TimeConflicts:      conflicts,
		LogicValid:         logic.LogicValid,
		LogicIssues:        logic.LogicIssues,
	}
}

// analyzeLogic derives the soundness verdict from the already-computed
// temporal, causal, and conflict summaries.
func analyzeLogic(ta models.TimeAnalysis, ca models.CausalSummary, conflicts models.ConflictAnalysis) models.LogicalAnalysis {
	logic := models.LogicalAnalysis{
		LogicValid:  true,
		LogicIssues: make([]string, 0),
	}

	if !ta.LogicValid {
		logic.LogicValid = false
		logic.LogicIssues = append(logic.LogicIssues, "时间逻辑存在问题")
	}
	if ca.GapsCount > 0 {
		logic.LogicValid = false
		logic.LogicIssues = append(logic.LogicIssues, "因果逻辑存在问题")
	}

	consistency := 1.0 - float64(conflicts.TotalConflicts)*0.1
	if consistency < 0 {
		consistency = 0
	}
	logic.LogicalConsistency = consistency

	if ca.ChainsCount == 0 {
		logic.LogicalCompleteness = 0.5
	} else {
		completeness := float64(ca.ChainsCount) * 0.3
		if completeness > 1.0 {
			completeness = 1.0
		}
		completeness -= float64(ca.GapsCount) * 0.1
		if completeness < 0 {
			completeness = 0
		}
		logic.LogicalCompleteness = completeness
	}

	return logic
}

func recommendations(result models.ReasoningResult) []string {
	recs := make([]string, 0)

	if len(result.TimeAnalysis.LogicIssues) > 0 {
		recs = append(recs, "⚠️ 时间逻辑存在问题,建议核实时间信息")
	}
	if n := result.CausalAnalysis.GapsCount; n > 0 {
		recs = append(recs, fmt.Sprintf("⚠️ 存在 %d 个因果链缺口,建议补充中间环节", n))
	}
	if n := result.ConflictAnalysis.TotalConflicts; n > 0 {
		recs = append(recs, fmt.Sprintf("⚠️ 发现 %d 个矛盾,需要核实", n))
	}
	if !result.LogicalAnalysis.LogicValid {
		recs = append(recs, "⚠️ 逻辑存在问题,需要重新梳理")
	}
	if result.PremeditationAnalysis.IsPremeditated &&
		result.PremeditationAnalysis.PremeditationScore >= 0.7 {
		recs = append(recs, "⚠️ 高度预谋,建议深入调查对方背景")
	}

	recs = append(recs, result.EvidenceChain.Suggestions...)

	if len(recs) == 0 {
		recs = append(recs, "✅ 深度推理未发现明显问题,逻辑清晰")
	} else {
		recs = append(recs, "ℹ️ 建议基于以上发现进一步调查取证")
	}
	return recs
}

// overallConfidence blends the four analysis axes into [0,1].
func overallConfidence(result models.ReasoningResult) float64 {
	confidence := 0.10
	if result.TimeAnalysis.LogicValid {
		confidence = 0.25
	}

	confidence += 0.25 * result.CausalAnalysis.RootCauseConfidence
	confidence += 0.25 * result.LogicalAnalysis.LogicalConsistency

	switch result.EvidenceChain.Strength {
	case models.StrengthStrong:
		confidence += 0.25
	case models.StrengthModerate:
		confidence += 0.15
	default:
		confidence += 0.05
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

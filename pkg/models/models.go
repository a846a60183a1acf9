package models

import (
	"time"
)

// Severity grades how serious a detected conflict is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// EvidenceType is the closed taxonomy of evidence categories.
type EvidenceType string

const (
	EvidenceDocument         EvidenceType = "document"
	EvidencePhysical         EvidenceType = "physical"
	EvidenceTestimony        EvidenceType = "testimony"
	EvidencePartyStatement   EvidenceType = "party_statement"
	EvidenceAudioVideo       EvidenceType = "audio_video"
	EvidenceElectronic       EvidenceType = "electronic"
	EvidenceExpertOpinion    EvidenceType = "expert_opinion"
	EvidenceInspectionRecord EvidenceType = "inspection_record"
)

// Label returns the Chinese category name used in rendered output.
func (t EvidenceType) Label() string {
	switch t {
	case EvidenceDocument:
		return "书证"
	case EvidencePhysical:
		return "物证"
	case EvidenceTestimony:
		return "证人证言"
	case EvidencePartyStatement:
		return "当事人陈述"
	case EvidenceAudioVideo:
		return "视听资料"
	case EvidenceElectronic:
		return "电子证据"
	case EvidenceExpertOpinion:
		return "鉴定意见"
	case EvidenceInspectionRecord:
		return "勘验笔录"
	}
	return string(t)
}

// EvidenceStrength is the three-tier evidence-chain classification.
type EvidenceStrength string

const (
	StrengthStrong   EvidenceStrength = "strong"
	StrengthModerate EvidenceStrength = "moderate"
	StrengthWeak     EvidenceStrength = "weak"
)

// Evidence is a caller-supplied evidence item. Read-only to the reasoning core.
type Evidence struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        EvidenceType `json:"evidence_type"`
	Weight      float64      `json:"weight"`
}

// TimelineSummary digests the reconstructed timeline.
type TimelineSummary struct {
	TotalTimestamps int    `json:"total_timestamps"`
	TimeRange       string `json:"time_range"`
	TotalDuration   string `json:"total_duration"`
}

// IntervalPattern describes one inter-event interval.
type IntervalPattern struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	DurationMinutes float64 `json:"duration_minutes"`
	Description     string  `json:"description"`
}

// TimePatterns summarizes the interval structure of the timeline.
type TimePatterns struct {
	TimeIntervals         []IntervalPattern `json:"time_intervals"`
	MeanIntervalMinutes   float64           `json:"mean_interval_minutes"`
	StddevIntervalMinutes float64           `json:"stddev_interval_minutes"`
}

// TimeGap flags a long stretch with no recorded events.
type TimeGap struct {
	Start         string  `json:"start"`
	End           string  `json:"end"`
	DurationHours float64 `json:"duration_hours"`
	Description   string  `json:"description"`
	Note          string  `json:"note"`
}

// CriticalTimestamp is a time-stamped event matching the critical-event allowlist.
type CriticalTimestamp struct {
	Time         string `json:"time"`
	Event        string `json:"event"`
	Precision    string `json:"precision"`
	Reason       string `json:"reason"`
	OriginalText string `json:"original_text"`
}

// ConflictSummary is the wire shape of a temporal conflict.
type ConflictSummary struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// TimeAnalysis is the time-series portion of the reasoning result.
type TimeAnalysis struct {
	TimestampsCount    int                 `json:"timestamps_count"`
	Timeline           TimelineSummary     `json:"timeline"`
	TimePatterns       TimePatterns        `json:"time_patterns"`
	TimeGaps           []TimeGap           `json:"time_gaps"`
	CriticalTimestamps []CriticalTimestamp `json:"critical_timestamps"`
	TimeConflicts      []ConflictSummary   `json:"time_conflicts"`
	LogicValid         bool                `json:"logic_valid"`
	LogicIssues        []string            `json:"logic_issues"`
}

// CausalSummary is the causal portion of the reasoning result.
type CausalSummary struct {
	RelationsCount          int      `json:"relations_count"`
	ChainsCount             int      `json:"chains_count"`
	GapsCount               int      `json:"gaps_count"`
	RootCause               string   `json:"root_cause"`
	RootCauseConfidence     float64  `json:"root_cause_confidence"`
	KeyCauses               []string `json:"key_causes"`
	KeyEffects              []string `json:"key_effects"`
	AlternativeExplanations []string `json:"alternative_explanations"`
}

// FactConflict is a contradiction between two sentences of the narrative.
type FactConflict struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Sentences   []int    `json:"sentences"`
}

// EvidenceConflict is a contradiction between two evidence descriptions.
type EvidenceConflict struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Evidences   []int    `json:"evidences"`
}

// ConflictAnalysis aggregates detected contradictions.
type ConflictAnalysis struct {
	TotalConflicts    int                `json:"total_conflicts"`
	FactConflicts     []FactConflict     `json:"fact_conflicts"`
	EvidenceConflicts []EvidenceConflict `json:"evidence_conflicts"`
}

// LogicalAnalysis scores overall logical soundness of the narrative.
type LogicalAnalysis struct {
	LogicValid          bool     `json:"logic_valid"`
	LogicIssues         []string `json:"logic_issues"`
	LogicalConsistency  float64  `json:"logical_consistency"`
	LogicalCompleteness float64  `json:"logical_completeness"`
}

// PremeditationAnalysis classifies the narrative as planned or spontaneous.
type PremeditationAnalysis struct {
	IsPremeditated     bool     `json:"is_premeditated"`
	PremeditationScore float64  `json:"premeditation_score"`
	Indicators         []string `json:"indicators"`
	Reasoning          string   `json:"reasoning"`
}

// EvidenceChain assesses the supplied evidence set.
type EvidenceChain struct {
	Completeness float64          `json:"completeness"`
	Consistency  float64          `json:"consistency"`
	Strength     EvidenceStrength `json:"strength"`
	Gaps         []string         `json:"gaps"`
	Suggestions  []string         `json:"suggestions"`
}

// ReasoningResult is the aggregate output of one reasoning run.
type ReasoningResult struct {
	AnalyzedAt            time.Time             `json:"analyzed_at"`
	TimeAnalysis          TimeAnalysis          `json:"time_analysis"`
	CausalAnalysis        CausalSummary         `json:"causal_analysis"`
	ConflictAnalysis      ConflictAnalysis      `json:"conflict_analysis"`
	LogicalAnalysis       LogicalAnalysis       `json:"logical_analysis"`
	PremeditationAnalysis PremeditationAnalysis `json:"premeditation_analysis"`
	EvidenceChain         EvidenceChain         `json:"evidence_chain"`
	Recommendations       []string              `json:"recommendations"`
	Confidence            float64               `json:"confidence"`
}

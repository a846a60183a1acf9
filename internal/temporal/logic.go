package temporal

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/casetrace/casetrace/pkg/models"
)

// LogicSummary is the full time-logic analysis of a timeline.
type LogicSummary struct {
	Summary         models.TimelineSummary
	Patterns        models.TimePatterns
	Gaps            []models.TimeGap
	Critical        []models.CriticalTimestamp
	Conflicts       []Conflict
	LogicValid      bool
	LogicIssues     []string
	TimeSequence    string
	Recommendations []string
}

// AnalyzeTimeLogic summarizes the timeline: range and duration, interval
// patterns, long gaps, critical events, and the validity verdict derived
// from the attached conflicts.
func (a *Analyzer) AnalyzeTimeLogic(timeline *Timeline) LogicSummary {
	summary := LogicSummary{
		Summary: models.TimelineSummary{
			TotalTimestamps: len(timeline.Timestamps),
			TimeRange:       timeRange(timeline),
			TotalDuration:   totalDuration(timeline),
		},
		Patterns:     intervalPatterns(timeline),
		Gaps:         timeGaps(timeline),
		Critical:     criticalTimestamps(timeline),
		Conflicts:    timeline.Conflicts,
		LogicValid:   true,
		LogicIssues:  make([]string, 0),
		TimeSequence: "正常",
	}

	for _, c := range timeline.Conflicts {
		if c.Severity == models.SeverityCritical || c.Severity == models.SeverityHigh {
			summary.LogicValid = false
			summary.LogicIssues = append(summary.LogicIssues, c.Description)
			summary.TimeSequence = "存在矛盾"
		}
	}

	summary.Recommendations = a.recommendations(timeline, summary)
	return summary
}

func timeRange(timeline *Timeline) string {
	if len(timeline.Timestamps) == 0 {
		return "无时间信息"
	}

	var start, end *time.Time
	for _, ts := range timeline.Timestamps {
		if ts.Time == nil {
			continue
		}
		if start == nil || ts.Time.Before(*start) {
			start = ts.Time
		}
		if end == nil || ts.Time.After(*end) {
			end = ts.Time
		}
	}
	if start == nil {
		return "无有效时间信息"
	}

	return fmt.Sprintf("%s → %s", start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"))
}

func totalDuration(timeline *Timeline) string {
	var start, end *time.Time
	count := 0
	for _, ts := range timeline.Timestamps {
		if ts.Time == nil {
			continue
		}
		count++
		if start == nil || ts.Time.Before(*start) {
			start = ts.Time
		}
		if end == nil || ts.Time.After(*end) {
			end = ts.Time
		}
	}
	if count < 2 {
		return "无法计算"
	}

	duration := end.Sub(*start)
	days := int(duration.Hours()) / 24
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d天%d小时", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d小时%d分钟", hours, minutes)
	default:
		return fmt.Sprintf("%d分钟", minutes)
	}
}

func intervalPatterns(timeline *Timeline) models.TimePatterns {
	patterns := models.TimePatterns{TimeIntervals: make([]models.IntervalPattern, 0)}

	minutes := make([]float64, 0, len(timeline.Intervals))
	for _, interval := range timeline.Intervals {
		m := interval.Duration.Minutes()
		minutes = append(minutes, m)
		patterns.TimeIntervals = append(patterns.TimeIntervals, models.IntervalPattern{
			Start:           interval.Start.Time.Format("15:04"),
			End:             interval.End.Time.Format("15:04"),
			DurationMinutes: m,
			Description:     interval.Description,
		})
	}

	if len(minutes) > 0 {
		patterns.MeanIntervalMinutes = stat.Mean(minutes, nil)
	}
	if len(minutes) > 1 {
		patterns.StddevIntervalMinutes = stat.StdDev(minutes, nil)
	}

	return patterns
}

func timeGaps(timeline *Timeline) []models.TimeGap {
	gaps := make([]models.TimeGap, 0)
	for _, interval := range timeline.Intervals {
		if interval.Duration <= time.Hour {
			continue
		}
		gaps = append(gaps, models.TimeGap{
			Start:         interval.Start.Time.Format("2006-01-02 15:04"),
			End:           interval.End.Time.Format("2006-01-02 15:04"),
			DurationHours: interval.Duration.Hours(),
			Description:   interval.Description,
			Note:          "此时间段较长,可能有其他事件未记录",
		})
	}
	return gaps
}

func criticalTimestamps(timeline *Timeline) []models.CriticalTimestamp {
	critical := make([]models.CriticalTimestamp, 0)
	for _, ts := range timeline.Timestamps {
		if !containsAny(ts.Event, criticalEventCues) {
			continue
		}
		when := ts.Text
		if ts.Time != nil {
			when = ts.Time.Format("2006-01-02 15:04")
		}
		critical = append(critical, models.CriticalTimestamp{
			Time:         when,
			Event:        ts.Event,
			Precision:    string(ts.Precision),
			Reason:       "涉及关键事件",
			OriginalText: ts.Text,
		})
	}
	return critical
}

func (a *Analyzer) recommendations(timeline *Timeline, summary LogicSummary) []string {
	recommendations := make([]string, 0)

	lowPrecision := 0
	for _, ts := range timeline.Timestamps {
		if ts.Precision == PrecisionYear || ts.Precision == PrecisionMonth {
			lowPrecision++
		}
	}
	if lowPrecision > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("⚠️ 有 %d 个时间点精度较低(年/月级),建议补充更精确的时间", lowPrecision))
	}

	highConflicts := 0
	for _, c := range timeline.Conflicts {
		if c.Severity == models.SeverityCritical || c.Severity == models.SeverityHigh {
			highConflicts++
		}
	}
	if highConflicts > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("⚠️ 发现 %d 个高严重性的时间冲突,需要核实", highConflicts))
	}

	if len(summary.Gaps) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("ℹ️ 有 %d 个较长的时间间隔,确认是否有遗漏的事件", len(summary.Gaps)))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "✅ 时间线逻辑清晰,无明显问题")
	}
	return recommendations
}

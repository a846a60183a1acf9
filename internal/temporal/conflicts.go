package temporal

import (
	"fmt"
	"strings"
	"time"

	"github.com/casetrace/casetrace/pkg/models"
)

// DetectConflicts runs pairwise ordering, duration, and precision checks over
// the timeline and attaches the findings to it.
func (a *Analyzer) DetectConflicts(timeline *Timeline) []Conflict {
	conflicts := make([]Conflict, 0)
	conflictID := 1

	timestamps := timeline.Timestamps

	// ordering: an event carrying an after-class cue whose resolved time
	// precedes a timestamp it should logically follow
	for i := 0; i < len(timestamps); i++ {
		for j := i + 1; j < len(timestamps); j++ {
			ts1, ts2 := timestamps[i], timestamps[j]
			if ts1.Time == nil || ts2.Time == nil {
				continue
			}
			if !hasOrderConflict(ts1, ts2) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				ID:   fmt.Sprintf("conflict_%d", conflictID),
				Type: ConflictOrder,
				Description: fmt.Sprintf("时间顺序矛盾: %s (%s) 发生于 %s, 但应在 %s (%s) (%s) 之后",
					ts1.Event, ts1.Text, ts1.Time.Format("2006-01-02 15:04"),
					ts2.Event, ts2.Text, ts2.Time.Format("2006-01-02 15:04")),
				Timestamps: []Timestamp{ts1, ts2},
				Severity:   models.SeverityHigh,
			})
			conflictID++
		}
	}

	// durations: long stretches between events described as continuous, and
	// near-zero stretches between events that needed time in between
	for _, interval := range timeline.Intervals {
		if interval.Duration > 24*time.Hour && containsAny(interval.Description, continuityCues) {
			conflicts = append(conflicts, Conflict{
				ID:   fmt.Sprintf("conflict_%d", conflictID),
				Type: ConflictDuration,
				Description: fmt.Sprintf("时间间隔异常: %s 间隔 %s, 可能存在问题",
					interval.Description, interval.Duration),
				Timestamps: []Timestamp{interval.Start, interval.End},
				Severity:   models.SeverityMedium,
			})
			conflictID++
		}

		if interval.Duration < time.Minute && containsAny(interval.Description, separationCues) {
			conflicts = append(conflicts, Conflict{
				ID:   fmt.Sprintf("conflict_%d", conflictID),
				Type: ConflictDuration,
				Description: fmt.Sprintf("时间间隔过短: %s 间隔仅 %s, 可能不足以完成",
					interval.Description, interval.Duration),
				Timestamps: []Timestamp{interval.Start, interval.End},
				Severity:   models.SeverityLow,
			})
			conflictID++
		}
	}

	// precision: mixing resolution tiers is a single advisory note
	if desc := precisionConflict(timestamps); desc != "" {
		conflicts = append(conflicts, Conflict{
			ID:          fmt.Sprintf("conflict_%d", conflictID),
			Type:        ConflictPrecision,
			Description: desc,
			Timestamps:  []Timestamp{},
			Severity:    models.SeverityLow,
		})
	}

	timeline.Conflicts = conflicts
	return conflicts
}

// hasOrderConflict reports whether ts1 claims to follow something yet
// resolves earlier than ts2.
func hasOrderConflict(ts1, ts2 Timestamp) bool {
	for _, cue := range afterCues {
		if strings.Contains(ts1.Event, cue) && ts1.Time.Before(*ts2.Time) {
			return true
		}
	}
	return false
}

// precisionConflict summarizes mixed precision tiers, or "" when uniform.
func precisionConflict(timestamps []Timestamp) string {
	counts := make(map[Precision]int)
	for _, ts := range timestamps {
		counts[ts.Precision]++
	}
	if len(counts) <= 1 {
		return ""
	}

	parts := make([]string, 0, len(counts))
	for _, p := range precisionOrder {
		if n, ok := counts[p]; ok {
			parts = append(parts, fmt.Sprintf("%s:%d", p.Label(), n))
		}
	}
	return "时间精度不一致: " + strings.Join(parts, ", ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

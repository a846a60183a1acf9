package temporal

import (
	"fmt"
	"sort"
	"time"

	"github.com/casetrace/casetrace/pkg/models"
)

// ConflictType categorizes a temporal conflict.
type ConflictType string

const (
	ConflictOrder     ConflictType = "order"
	ConflictDuration  ConflictType = "duration"
	ConflictPrecision ConflictType = "precision"
)

// Conflict is one detected timeline anomaly. Immutable once created.
type Conflict struct {
	ID          string
	Type        ConflictType
	Description string
	Timestamps  []Timestamp
	Severity    models.Severity
}

// Interval is the span between two adjacent resolved timestamps. Derived;
// recomputed whenever the timeline is rebuilt.
type Interval struct {
	Start       Timestamp
	End         Timestamp
	Duration    time.Duration
	Description string
}

// Timeline owns the ordered resolved timestamps, their intervals, and any
// detected conflicts.
type Timeline struct {
	ID         string
	Timestamps []Timestamp
	Intervals  []Interval
	Conflicts  []Conflict
}

// AddTimestamp inserts a timestamp keeping the sequence sorted ascending by
// resolved time; entries without a resolved time sort last.
func (tl *Timeline) AddTimestamp(ts Timestamp) {
	tl.Timestamps = append(tl.Timestamps, ts)
	sort.SliceStable(tl.Timestamps, func(i, j int) bool {
		a, b := tl.Timestamps[i].Time, tl.Timestamps[j].Time
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}

// Before returns timestamps resolved strictly before t.
func (tl *Timeline) Before(t time.Time) []Timestamp {
	out := make([]Timestamp, 0)
	for _, ts := range tl.Timestamps {
		if ts.Time != nil && ts.Time.Before(t) {
			out = append(out, ts)
		}
	}
	return out
}

// After returns timestamps resolved strictly after t.
func (tl *Timeline) After(t time.Time) []Timestamp {
	out := make([]Timestamp, 0)
	for _, ts := range tl.Timestamps {
		if ts.Time != nil && ts.Time.After(t) {
			out = append(out, ts)
		}
	}
	return out
}

// Between returns timestamps resolved within [start, end].
func (tl *Timeline) Between(start, end time.Time) []Timestamp {
	out := make([]Timestamp, 0)
	for _, ts := range tl.Timestamps {
		if ts.Time == nil {
			continue
		}
		if !ts.Time.Before(start) && !ts.Time.After(end) {
			out = append(out, ts)
		}
	}
	return out
}

// BuildTimeline orders the resolved timestamps and computes the intervals
// between consecutive pairs. Unresolved candidates are excluded from the
// timeline but remain in the caller's extraction output.
func (a *Analyzer) BuildTimeline(timestamps []Timestamp) *Timeline {
	timeline := &Timeline{ID: "timeline_1"}

	for _, ts := range timestamps {
		if ts.Time != nil {
			timeline.AddTimestamp(ts)
		}
	}

	for i := 0; i+1 < len(timeline.Timestamps); i++ {
		start := timeline.Timestamps[i]
		end := timeline.Timestamps[i+1]
		timeline.Intervals = append(timeline.Intervals, Interval{
			Start:       start,
			End:         end,
			Duration:    end.Time.Sub(*start.Time),
			Description: fmt.Sprintf("%s → %s", start.Event, end.Event),
		})
	}

	return timeline
}

// InferHiddenTimestamps synthesizes estimates for likely unrecorded events:
// a midpoint for every gap longer than an hour, and a point one hour before
// the first event. Advisory only; never merged into the timeline.
func (a *Analyzer) InferHiddenTimestamps(timeline *Timeline) []Timestamp {
	hidden := make([]Timestamp, 0)
	hiddenID := len(timeline.Timestamps) + 1

	for _, interval := range timeline.Intervals {
		if interval.Duration <= time.Hour {
			continue
		}
		middle := interval.Start.Time.Add(interval.Duration / 2)
		hidden = append(hidden, Timestamp{
			ID:         fmt.Sprintf("inferred_%d", hiddenID),
			Text:       fmt.Sprintf("推断时间 (约%s)", middle.Format("2006-01-02 15:04")),
			Time:       &middle,
			Precision:  PrecisionHour,
			Event:      fmt.Sprintf("推断: 在 %s 和 %s 之间", interval.Start.Event, interval.End.Event),
			Confidence: 0.5,
			IsEstimate: true,
		})
		hiddenID++
	}

	if len(timeline.Timestamps) > 0 && timeline.Timestamps[0].Time != nil {
		first := timeline.Timestamps[0]
		before := first.Time.Add(-time.Hour)
		hidden = append(hidden, Timestamp{
			ID:         fmt.Sprintf("inferred_%d", hiddenID),
			Text:       fmt.Sprintf("推断时间 (约%s)", before.Format("2006-01-02 15:04")),
			Time:       &before,
			Precision:  PrecisionHour,
			Event:      fmt.Sprintf("推断: 在 %s 开始前", first.Event),
			Confidence: 0.4,
			IsEstimate: true,
		})
	}

	return hidden
}

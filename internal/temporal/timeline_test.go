package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace/pkg/models"
)

func tsAt(id string, event string, at time.Time) Timestamp {
	return Timestamp{
		ID:         id,
		Text:       at.Format("15:04"),
		Time:       &at,
		Precision:  PrecisionMinute,
		Event:      event,
		Confidence: 0.9,
	}
}

func TestBuildTimeline_SortsAndComputesIntervals(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timestamps := []Timestamp{
		tsAt("timestamp_1", "发布笔记", day.Add(18 * time.Hour)),
		tsAt("timestamp_2", "到店", day.Add(15 * time.Hour)),
		tsAt("timestamp_3", "支付", day.Add(16 * time.Hour)),
		{ID: "timestamp_4", Text: "去年", Precision: PrecisionYear, Confidence: 0.7, IsEstimate: true},
	}

	timeline := a.BuildTimeline(timestamps)

	require.Len(t, timeline.Timestamps, 3, "unresolved candidates stay off the timeline")
	assert.Equal(t, "到店", timeline.Timestamps[0].Event)
	assert.Equal(t, "支付", timeline.Timestamps[1].Event)
	assert.Equal(t, "发布笔记", timeline.Timestamps[2].Event)

	require.Len(t, timeline.Intervals, 2)
	assert.Equal(t, time.Hour, timeline.Intervals[0].Duration)
	assert.Equal(t, "到店 → 支付", timeline.Intervals[0].Description)
}

func TestTimelineQueries(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timeline := a.BuildTimeline([]Timestamp{
		tsAt("timestamp_1", "到店", day.Add(15 * time.Hour)),
		tsAt("timestamp_2", "支付", day.Add(16 * time.Hour)),
		tsAt("timestamp_3", "发布笔记", day.Add(18 * time.Hour)),
	})

	assert.Len(t, timeline.Before(day.Add(16*time.Hour)), 1)
	assert.Len(t, timeline.After(day.Add(15*time.Hour)), 2)
	assert.Len(t, timeline.Between(day.Add(15*time.Hour), day.Add(16*time.Hour)), 2)
}

func TestDetectConflicts_OrderConflict(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timeline := a.BuildTimeline([]Timestamp{
		tsAt("timestamp_1", "收到货款后发货", day.Add(10*time.Hour)),
		tsAt("timestamp_2", "收到货款", day.Add(11*time.Hour)),
	})

	conflicts := a.DetectConflicts(timeline)

	require.NotEmpty(t, conflicts)
	found := false
	for _, c := range conflicts {
		if c.Type == ConflictOrder {
			found = true
			assert.Equal(t, models.SeverityHigh, c.Severity)
			assert.Contains(t, c.Description, "时间顺序矛盾")
		}
	}
	assert.True(t, found, "expected an order conflict")
	assert.Equal(t, conflicts, timeline.Conflicts)
}

func TestDetectConflicts_LongIntervalDescribedAsImmediate(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timeline := a.BuildTimeline([]Timestamp{
		tsAt("timestamp_1", "支付货款", day),
		tsAt("timestamp_2", "立即发货", day.Add(25*time.Hour)),
	})

	conflicts := a.DetectConflicts(timeline)

	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictDuration, conflicts[0].Type)
	assert.Equal(t, models.SeverityMedium, conflicts[0].Severity)
	assert.Contains(t, conflicts[0].Description, "时间间隔异常")
}

func TestDetectConflicts_ShortIntervalNeedsTimeBetween(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timeline := a.BuildTimeline([]Timestamp{
		tsAt("timestamp_1", "收到差评", day),
		tsAt("timestamp_2", "过了一会他回复", day.Add(30*time.Second)),
	})

	conflicts := a.DetectConflicts(timeline)

	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictDuration, conflicts[0].Type)
	assert.Equal(t, models.SeverityLow, conflicts[0].Severity)
	assert.Contains(t, conflicts[0].Description, "时间间隔过短")
}

func TestDetectConflicts_MixedPrecision(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	ts1 := tsAt("timestamp_1", "到店", day.Add(15*time.Hour))
	ts2 := tsAt("timestamp_2", "立案", day)
	ts2.Precision = PrecisionDay

	timeline := a.BuildTimeline([]Timestamp{ts1, ts2})
	conflicts := a.DetectConflicts(timeline)

	found := false
	for _, c := range conflicts {
		if c.Type == ConflictPrecision {
			found = true
			assert.Equal(t, models.SeverityLow, c.Severity)
			assert.Contains(t, c.Description, "时间精度不一致")
		}
	}
	assert.True(t, found, "expected a precision conflict")
}

func TestInferHiddenTimestamps(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timeline := a.BuildTimeline([]Timestamp{
		tsAt("timestamp_1", "到店", day.Add(15 * time.Hour)),
		tsAt("timestamp_2", "发布笔记", day.Add(19 * time.Hour)),
	})

	hidden := a.InferHiddenTimestamps(timeline)

	require.Len(t, hidden, 2, "one midpoint for the long gap, one before the first event")

	midpoint := hidden[0]
	require.NotNil(t, midpoint.Time)
	assert.Equal(t, day.Add(17*time.Hour), *midpoint.Time)
	assert.True(t, midpoint.IsEstimate)
	assert.InDelta(t, 0.5, midpoint.Confidence, 1e-9)
	assert.Contains(t, midpoint.Event, "推断")

	before := hidden[1]
	require.NotNil(t, before.Time)
	assert.Equal(t, day.Add(14*time.Hour), *before.Time)
	assert.InDelta(t, 0.4, before.Confidence, 1e-9)
}

func TestAnalyzeTimeLogic(t *testing.T) {
	a := newTestAnalyzer()
	day := fixedNow()

	timeline := a.BuildTimeline([]Timestamp{
		tsAt("timestamp_1", "到店", day.Add(10 * time.Hour)),
		tsAt("timestamp_2", "支付", day.Add(10*time.Hour + 30*time.Minute)),
		tsAt("timestamp_3", "发布笔记", day.Add(12 * time.Hour)),
	})
	a.DetectConflicts(timeline)

	summary := a.AnalyzeTimeLogic(timeline)

	assert.Equal(t, 3, summary.Summary.TotalTimestamps)
	assert.Equal(t, "2小时0分钟", summary.Summary.TotalDuration)
	assert.Contains(t, summary.Summary.TimeRange, "→")

	require.Len(t, summary.Patterns.TimeIntervals, 2)
	assert.InDelta(t, 60.0, summary.Patterns.MeanIntervalMinutes, 1e-9)

	require.Len(t, summary.Gaps, 1, "the 90 minute stretch is a gap")
	assert.Contains(t, summary.Gaps[0].Note, "可能有其他事件未记录")

	require.NotEmpty(t, summary.Critical, "支付 and 发布 are critical events")
	assert.True(t, summary.LogicValid)
	assert.NotEmpty(t, summary.Recommendations)
}

func TestAnalyzeTimeLogic_EmptyTimeline(t *testing.T) {
	a := newTestAnalyzer()

	summary := a.AnalyzeTimeLogic(a.BuildTimeline(nil))

	assert.Equal(t, 0, summary.Summary.TotalTimestamps)
	assert.Equal(t, "无时间信息", summary.Summary.TimeRange)
	assert.Equal(t, "无法计算", summary.Summary.TotalDuration)
	assert.True(t, summary.LogicValid)
}

package temporal

import (
	"regexp"
)

// Precision is the resolution tier of an extracted time expression.
type Precision string

const (
	PrecisionYear   Precision = "year"
	PrecisionMonth  Precision = "month"
	PrecisionDay    Precision = "day"
	PrecisionHour   Precision = "hour"
	PrecisionMinute Precision = "minute"
	PrecisionSecond Precision = "second"
)

// Label returns the Chinese tier name used in rendered output.
func (p Precision) Label() string {
	switch p {
	case PrecisionYear:
		return "年"
	case PrecisionMonth:
		return "月"
	case PrecisionDay:
		return "日"
	case PrecisionHour:
		return "时"
	case PrecisionMinute:
		return "分"
	case PrecisionSecond:
		return "秒"
	}
	return string(p)
}

// precisionOrder lists tiers coarse to fine, for deterministic reporting.
var precisionOrder = []Precision{
	PrecisionYear, PrecisionMonth, PrecisionDay,
	PrecisionHour, PrecisionMinute, PrecisionSecond,
}

// timePattern pairs one extraction regex with the precision tier of its matches.
type timePattern struct {
	re        *regexp.Regexp
	precision Precision
}

// timePatterns is the ordered extraction table. Every pattern is scanned over
// the whole text; patterns are not mutually exclusive and every match becomes
// a candidate timestamp. Order matters only for candidate ids, not matching.
var timePatterns = []timePattern{
	// exact date and time
	{regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日\s*(\d{1,2})[点时](\d{1,2})?分?`), PrecisionMinute},
	{regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日\s*(\d{1,2}):(\d{2})`), PrecisionMinute},
	{regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`), PrecisionDay},

	// month and day, no year
	{regexp.MustCompile(`(\d{1,2})月(\d{1,2})日\s*(\d{1,2})[点时](\d{1,2})?分?`), PrecisionMinute},
	{regexp.MustCompile(`(\d{1,2})月(\d{1,2})日\s*(\d{1,2}):(\d{2})`), PrecisionMinute},
	{regexp.MustCompile(`(\d{1,2})月(\d{1,2})日`), PrecisionDay},

	// named relative days
	{regexp.MustCompile(`今天|今日`), PrecisionDay},
	{regexp.MustCompile(`昨天|昨日`), PrecisionDay},
	{regexp.MustCompile(`大前天`), PrecisionDay},
	{regexp.MustCompile(`前天`), PrecisionDay},

	// counted offsets
	{regexp.MustCompile(`(\d+)天前`), PrecisionDay},
	{regexp.MustCompile(`(\d+)小时前`), PrecisionHour},
	{regexp.MustCompile(`(\d+)分钟前`), PrecisionMinute},

	// coarse relative periods; recognized but never resolved
	{regexp.MustCompile(`上周(\d)?`), PrecisionDay},
	{regexp.MustCompile(`上个月|上上月`), PrecisionMonth},
	{regexp.MustCompile(`今年|去年|前年`), PrecisionYear},

	// colloquial time of day
	{regexp.MustCompile(`早上(\d{1,2})[点时](\d{1,2})?分?`), PrecisionMinute},
	{regexp.MustCompile(`下午(\d{1,2})[点时](\d{1,2})?分?`), PrecisionMinute},
	{regexp.MustCompile(`晚上(\d{1,2})[点时](\d{1,2})?分?`), PrecisionMinute},
	{regexp.MustCompile(`中午(\d{1,2})[点时](\d{1,2})?分?`), PrecisionMinute},
	{regexp.MustCompile(`(\d{1,2})点(\d{1,2})分`), PrecisionMinute},
	{regexp.MustCompile(`(\d{1,2})点半`), PrecisionMinute},
}

// referencePatterns match an absolute year-month-day expression anywhere in
// the text; the first hit anchors relative-expression resolution.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`),
	regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
}

// parse helpers shared by resolveExpression
var (
	reDigits       = regexp.MustCompile(`\d+`)
	reFullDate     = regexp.MustCompile(`^\d{4}年\d{1,2}月\d{1,2}日`)
	reMonthDay     = regexp.MustCompile(`^\d{1,2}月\d{1,2}日`)
	reDaysAgo      = regexp.MustCompile(`^\d+天前`)
	reHoursAgo     = regexp.MustCompile(`^\d+小时前`)
	reMinutesAgo   = regexp.MustCompile(`^\d+分钟前`)
	reColloquial   = regexp.MustCompile(`^(?:早上|下午|晚上|中午)\d{1,2}[点时]`)
	reBareHour     = regexp.MustCompile(`^\d{1,2}点`)
	reMinuteSuffix = regexp.MustCompile(`(\d{1,2})分`)
)

// after-class ordering cues: an event carrying one of these should follow
// whatever it refers to.
var afterCues = []string{"之后", "后", "然后", "接着", "第二"}

// cues that suggest two events happened back to back
var continuityCues = []string{"后", "立即", "马上", "随即", "接着"}

// cues that suggest real time passed between two events
var separationCues = []string{"后", "一段时间", "过了一会", "然后"}

// criticalEventCues is the allowlist of narratively significant actions.
var criticalEventCues = []string{"报警", "投诉", "发布", "支付", "退款", "冲突", "争执"}

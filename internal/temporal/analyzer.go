// Package temporal extracts time expressions from narrative text, resolves
// them against a reference date, and reconstructs an ordered timeline with
// conflict detection.
package temporal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ParseOutcome distinguishes why an expression did or did not resolve.
type ParseOutcome int

const (
	// ParseResolved means the expression resolved to an absolute time.
	ParseResolved ParseOutcome = iota
	// ParseOutOfRange means the expression was recognized but carries an
	// impossible calendar value (month 13, hour 25).
	ParseOutOfRange
	// ParseUnresolvable means the expression matched a pattern but cannot be
	// anchored to an absolute time (e.g. 去年, 上周).
	ParseUnresolvable
)

// Timestamp is one extracted temporal fact. Immutable after extraction.
type Timestamp struct {
	ID         string
	Text       string     // raw matched expression
	Time       *time.Time // nil when unresolved
	Precision  Precision
	Event      string // surrounding context with the expression stripped
	Confidence float64
	IsEstimate bool
}

// Config holds analyzer configuration.
type Config struct {
	// Now supplies the processing time used when the text carries no
	// absolute date to anchor relative expressions. Read-only after
	// construction so calls stay independently reproducible.
	Now func() time.Time
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{Now: time.Now}
}

// Analyzer extracts and orders temporal facts. Stateless across calls.
type Analyzer struct {
	now func() time.Time
}

// NewAnalyzer creates a new time-series analyzer.
func NewAnalyzer(config Config) *Analyzer {
	if config.Now == nil {
		config.Now = DefaultConfig().Now
	}
	return &Analyzer{now: config.Now}
}

// ExtractTimestamps scans the whole text with every pattern in the extraction
// table. Expressions that match a pattern but fail to resolve are kept as
// low-confidence estimates rather than dropped. Candidates sharing identical
// raw text are deduplicated, keeping the highest-confidence one.
func (a *Analyzer) ExtractTimestamps(text string) []Timestamp {
	reference := a.determineReferenceDate(text)

	timestamps := make([]Timestamp, 0)
	factID := 1

	for _, pat := range timePatterns {
		for _, matched := range pat.re.FindAllString(text, -1) {
			resolved, outcome := a.resolveExpression(matched, reference)

			ts := Timestamp{
				ID:         fmt.Sprintf("timestamp_%d", factID),
				Text:       matched,
				Precision:  pat.precision,
				Event:      eventContext(matched, text),
				Confidence: 0.9,
			}
			if outcome == ParseResolved {
				t := resolved
				ts.Time = &t
			} else {
				ts.Confidence = 0.7
				ts.IsEstimate = true
			}

			timestamps = append(timestamps, ts)
			factID++
		}
	}

	return dedupeTimestamps(timestamps)
}

// determineReferenceDate scans the text for an absolute year-month-day
// expression; relative expressions resolve against the first valid one found.
// Without one, the current processing time is the anchor.
func (a *Analyzer) determineReferenceDate(text string) time.Time {
	for _, re := range referencePatterns {
		for _, groups := range re.FindAllStringSubmatch(text, -1) {
			year, _ := strconv.Atoi(groups[1])
			month, _ := strconv.Atoi(groups[2])
			day, _ := strconv.Atoi(groups[3])
			if validDate(year, month, day) {
				return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
			}
		}
	}
	return a.now()
}

// resolveExpression turns one matched expression into an absolute time.
// Branches mirror the extraction table; unmatched shapes are unresolvable.
func (a *Analyzer) resolveExpression(text string, reference time.Time) (time.Time, ParseOutcome) {
	switch {
	case reFullDate.MatchString(text):
		return resolveNumericDate(text, 0)

	case reMonthDay.MatchString(text):
		return resolveNumericDate(text, reference.Year())

	case strings.Contains(text, "今天") || strings.Contains(text, "今日"):
		return midnight(reference), ParseResolved
	case strings.Contains(text, "昨天") || strings.Contains(text, "昨日"):
		return midnight(reference.AddDate(0, 0, -1)), ParseResolved
	case strings.Contains(text, "大前天"):
		return midnight(reference.AddDate(0, 0, -3)), ParseResolved
	case strings.Contains(text, "前天"):
		return midnight(reference.AddDate(0, 0, -2)), ParseResolved

	case reDaysAgo.MatchString(text):
		n, _ := strconv.Atoi(reDigits.FindString(text))
		return reference.AddDate(0, 0, -n), ParseResolved
	case reHoursAgo.MatchString(text):
		n, _ := strconv.Atoi(reDigits.FindString(text))
		return reference.Add(-time.Duration(n) * time.Hour), ParseResolved
	case reMinutesAgo.MatchString(text):
		n, _ := strconv.Atoi(reDigits.FindString(text))
		return reference.Add(-time.Duration(n) * time.Minute), ParseResolved

	case reColloquial.MatchString(text):
		hour, _ := strconv.Atoi(reDigits.FindString(text))
		if strings.Contains(text, "下午") || strings.Contains(text, "晚上") {
			if hour != 12 {
				hour += 12
			}
		} else if strings.Contains(text, "中午") {
			hour = 12
		}
		return atClock(reference, hour, minuteOf(text))

	case reBareHour.MatchString(text):
		hour, _ := strconv.Atoi(reDigits.FindString(text))
		// no morning or noon marker: assume afternoon
		if hour < 12 {
			hour += 12
		}
		return atClock(reference, hour, minuteOf(text))
	}

	return time.Time{}, ParseUnresolvable
}

// resolveNumericDate parses 年/月/日 (optionally followed by hour and minute)
// digit groups. A zero fallbackYear means the year is the first group.
func resolveNumericDate(text string, fallbackYear int) (time.Time, ParseOutcome) {
	parts := reDigits.FindAllString(text, -1)

	nums := make([]int, len(parts))
	for i, p := range parts {
		nums[i], _ = strconv.Atoi(p)
	}

	var year, month, day int
	var rest []int
	if fallbackYear == 0 {
		if len(nums) < 3 {
			return time.Time{}, ParseUnresolvable
		}
		year, month, day = nums[0], nums[1], nums[2]
		rest = nums[3:]
	} else {
		if len(nums) < 2 {
			return time.Time{}, ParseUnresolvable
		}
		year, month, day = fallbackYear, nums[0], nums[1]
		rest = nums[2:]
	}

	hour, minute := 0, 0
	if len(rest) >= 2 {
		hour, minute = rest[0], rest[1]
	} else if len(rest) == 1 {
		hour = rest[0]
	}

	// time.Date silently normalizes month 13; reject impossible values here
	// so they surface as recognized-but-out-of-range.
	if !validDate(year, month, day) || hour > 23 || minute > 59 {
		return time.Time{}, ParseOutOfRange
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), ParseResolved
}

// minuteOf extracts the minute component of a colloquial expression.
// 半 means half past.
func minuteOf(text string) int {
	digits := reDigits.FindAllString(text, -1)
	if len(digits) >= 2 {
		if m := reMinuteSuffix.FindStringSubmatch(text); m != nil {
			minute, _ := strconv.Atoi(m[1])
			return minute
		}
	}
	if strings.Contains(text, "半") {
		return 30
	}
	return 0
}

func atClock(reference time.Time, hour, minute int) (time.Time, ParseOutcome) {
	if hour > 23 || minute > 59 {
		return time.Time{}, ParseOutOfRange
	}
	t := time.Date(reference.Year(), reference.Month(), reference.Day(), hour, minute, 0, 0, reference.Location())
	return t, ParseResolved
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validDate(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return false
	}
	// day bound via normalization round-trip
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Day() == day && d.Month() == time.Month(month)
}

// eventContext takes ±50 characters around the matched expression, with the
// expression itself removed, as the associated event description.
func eventContext(timeText, fullText string) string {
	idx := strings.Index(fullText, timeText)
	if idx < 0 {
		return ""
	}

	runes := []rune(fullText)
	start := utf8.RuneCountInString(fullText[:idx])
	tlen := utf8.RuneCountInString(timeText)

	lo := start - 50
	if lo < 0 {
		lo = 0
	}
	hi := start + tlen + 50
	if hi > len(runes) {
		hi = len(runes)
	}

	context := strings.TrimSpace(string(runes[lo:hi]))
	context = strings.TrimSpace(strings.ReplaceAll(context, timeText, ""))
	return context
}

// dedupeTimestamps collapses candidates sharing identical raw text, keeping
// the highest-confidence one. First-seen order is preserved.
func dedupeTimestamps(timestamps []Timestamp) []Timestamp {
	best := make(map[string]int)
	deduplicated := make([]Timestamp, 0, len(timestamps))

	for _, ts := range timestamps {
		if i, ok := best[ts.Text]; ok {
			if ts.Confidence > deduplicated[i].Confidence {
				deduplicated[i] = ts
			}
			continue
		}
		best[ts.Text] = len(deduplicated)
		deduplicated = append(deduplicated, ts)
	}

	return deduplicated
}

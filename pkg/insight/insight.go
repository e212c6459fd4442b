package insight

import (
	"fmt"
	"time"

	"github.com/weekbrief/weekbrief/pkg/stats"
)

// Kind groups insights by the aspect of the week they describe.
type Kind string

const (
	KindVolume       Kind = "volume"
	KindDistribution Kind = "distribution"
	KindBalance      Kind = "balance"
	KindFocus        Kind = "focus"
	KindSpike        Kind = "spike"
)

// Insight is one rule-derived observation about the analyzed week. Derived
// purely from the WeekSummary, no hidden state.
type Insight struct {
	Text string
	Kind Kind
}

// Thresholds configures the heuristic rules.
type Thresholds struct {
	HeavyWeekTotal       time.Duration
	HeavyDayMeetings     int
	DominanceProportion  float64
	AfterHoursProportion float64
}

type rule func(summary stats.WeekSummary, thresholds Thresholds) (Insight, bool)

// Generator evaluates a fixed, ordered set of independent rules against a
// WeekSummary. Each rule emits zero or one insight; outputs concatenate in
// rule order with no cross-rule suppression.
type Generator struct {
	thresholds Thresholds
	rules      []rule
}

func NewGenerator(thresholds Thresholds) *Generator {
	return &Generator{
		thresholds: thresholds,
		rules: []rule{
			heavyWeekRule,
			categoryDominanceRule,
			afterHoursRule,
			meetingFreeDayRule,
			busiestDayRule,
		},
	}
}

func (g *Generator) Generate(summary stats.WeekSummary) []Insight {
	var insights []Insight
	for _, r := range g.rules {
		if insight, ok := r(summary, g.thresholds); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}

func heavyWeekRule(summary stats.WeekSummary, thresholds Thresholds) (Insight, bool) {
	if thresholds.HeavyWeekTotal <= 0 || summary.TotalTime < thresholds.HeavyWeekTotal {
		return Insight{}, false
	}
	return Insight{
		Text: fmt.Sprintf("📅 Heavy meeting week: %s in meetings, consider blocking focus time", formatDuration(summary.TotalTime)),
		Kind: KindVolume,
	}, true
}

func categoryDominanceRule(summary stats.WeekSummary, thresholds Thresholds) (Insight, bool) {
	if summary.TotalTime == 0 {
		return Insight{}, false
	}
	for _, cs := range summary.Categories {
		proportion := float64(cs.TotalTime) / float64(summary.TotalTime)
		if proportion > thresholds.DominanceProportion {
			return Insight{
				Text: fmt.Sprintf("🎯 %s meetings dominate your week: %.0f%% of total meeting time",
					cs.Category.Display(), proportion*100),
				Kind: KindDistribution,
			}, true
		}
	}
	return Insight{}, false
}

func afterHoursRule(summary stats.WeekSummary, thresholds Thresholds) (Insight, bool) {
	if summary.TotalTime == 0 {
		return Insight{}, false
	}
	proportion := float64(summary.AfterHoursTime) / float64(summary.TotalTime)
	if proportion <= thresholds.AfterHoursProportion {
		return Insight{}, false
	}
	return Insight{
		Text: fmt.Sprintf("⏰ %.1f%% of meeting time was outside working hours", proportion*100),
		Kind: KindBalance,
	}, true
}

func meetingFreeDayRule(summary stats.WeekSummary, _ Thresholds) (Insight, bool) {
	for _, day := range summary.Days {
		if day.MeetingCount == 0 && day.TotalTime == 0 {
			return Insight{
				Text: fmt.Sprintf("🧘 %s had no meetings, a natural focus day", day.Date.Format("Monday")),
				Kind: KindFocus,
			}, true
		}
	}
	return Insight{}, false
}

func busiestDayRule(summary stats.WeekSummary, thresholds Thresholds) (Insight, bool) {
	if thresholds.HeavyDayMeetings <= 0 {
		return Insight{}, false
	}
	busiest := -1
	for i, day := range summary.Days {
		if busiest < 0 || day.MeetingCount > summary.Days[busiest].MeetingCount {
			busiest = i
		}
	}
	if busiest < 0 || summary.Days[busiest].MeetingCount < thresholds.HeavyDayMeetings {
		return Insight{}, false
	}
	day := summary.Days[busiest]
	return Insight{
		Text: fmt.Sprintf("📊 %s was packed with %d meetings (%s)",
			day.Date.Format("Monday"), day.MeetingCount, formatDuration(day.TotalTime)),
		Kind: KindSpike,
	}, true
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

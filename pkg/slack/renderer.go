package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/weekbrief/weekbrief/pkg/report"
)

// Block is a single Slack Block Kit block.
type Block struct {
	Type string     `json:"type"`
	Text *BlockText `json:"text,omitempty"`
}

type BlockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func headerBlock(text string) Block {
	return Block{Type: "header", Text: &BlockText{Type: "plain_text", Text: text}}
}

func sectionBlock(markdown string) Block {
	return Block{Type: "section", Text: &BlockText{Type: "mrkdwn", Text: markdown}}
}

func dividerBlock() Block {
	return Block{Type: "divider"}
}

// Renderer turns a Report into Slack Block Kit blocks. Rendering is
// deterministic given a report.
type Renderer struct {
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (t *Renderer) RenderReport(r report.Report) []Block {
	blocks := []Block{
		headerBlock("📊 Past Week Analysis"),
		dividerBlock(),
		sectionBlock(t.overviewSection(r)),
	}

	if daily := t.dailySection(r); daily != "" {
		blocks = append(blocks, sectionBlock(daily))
	}
	if categories := t.categorySection(r); categories != "" {
		blocks = append(blocks, sectionBlock(categories))
	}
	if insights := t.insightsSection(r); insights != "" {
		blocks = append(blocks, sectionBlock(insights))
	}
	if r.Narrative != "" {
		blocks = append(blocks, sectionBlock("📝 *Written Summary*\n"+r.Narrative))
	}

	blocks = append(blocks,
		dividerBlock(),
		headerBlock("📅 Upcoming Week Preview"),
		dividerBlock(),
		sectionBlock(t.upcomingSection(r)),
	)
	if focus := t.focusSection(r); focus != "" {
		blocks = append(blocks, sectionBlock(focus))
	}

	return blocks
}

func (t *Renderer) overviewSection(r report.Report) string {
	return fmt.Sprintf(
		"*Period:* %s to %s\n*Total Meetings:* %d\n*Total Meeting Time:* %s\n*Working Hours:* %s\n*After Hours:* %s",
		r.Week.StartDate.Format("2006-01-02"),
		r.Week.EndDate.Format("2006-01-02"),
		r.Week.TotalEvents,
		formatDuration(r.Week.TotalTime),
		formatDuration(r.Week.WorkingHoursTime),
		formatDuration(r.Week.AfterHoursTime),
	)
}

func (t *Renderer) dailySection(r report.Report) string {
	var lines []string
	for _, day := range r.Week.Days {
		if day.MeetingCount == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %d meetings (%s)",
			day.Date.Format("Monday"), day.MeetingCount, formatDuration(day.TotalTime)))
	}
	if len(lines) == 0 {
		return ""
	}
	return "*Daily Breakdown:*\n" + strings.Join(lines, "\n")
}

func (t *Renderer) categorySection(r report.Report) string {
	if len(r.Week.Categories) == 0 {
		return ""
	}
	var lines []string
	for _, cs := range r.Week.Categories {
		lines = append(lines, fmt.Sprintf("• %s: %d meetings (%s)",
			cs.Category.Display(), cs.Count, formatDuration(cs.TotalTime)))
	}
	return "*Meeting Types:*\n" + strings.Join(lines, "\n")
}

func (t *Renderer) insightsSection(r report.Report) string {
	if len(r.Insights) == 0 {
		return ""
	}
	var lines []string
	for _, i := range r.Insights {
		lines = append(lines, "• "+i.Text)
	}
	return "*Key Insights:*\n" + strings.Join(lines, "\n")
}

func (t *Renderer) upcomingSection(r report.Report) string {
	text := fmt.Sprintf("*Scheduled Meetings:* %d", r.Upcoming.TotalEvents)
	if len(r.Upcoming.KeyMeetings) == 0 {
		return text
	}
	var lines []string
	for _, m := range r.Upcoming.KeyMeetings {
		lines = append(lines, fmt.Sprintf("• %s: %s, %s (%d attendees)",
			m.Title,
			m.StartTime.Format("Monday 15:04"),
			formatDuration(m.Duration),
			m.AttendeeCount))
	}
	return text + "\n*Key Meetings:*\n" + strings.Join(lines, "\n")
}

func (t *Renderer) focusSection(r report.Report) string {
	if len(r.Upcoming.FocusDays) == 0 {
		return ""
	}
	var lines []string
	for _, day := range r.Upcoming.FocusDays {
		lines = append(lines, "• "+day.Format("Monday, January 2")+" - good for focus work")
	}
	return "*Focus Opportunities:*\n" + strings.Join(lines, "\n")
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

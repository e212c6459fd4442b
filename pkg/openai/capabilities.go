package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/weekbrief/weekbrief/pkg/category"
	"github.com/weekbrief/weekbrief/pkg/insight"
	"github.com/weekbrief/weekbrief/pkg/stats"
)

// Classifier adapts the completion client to the text-classification
// capability consumed by category.IntelligentCategorizer.
type Classifier struct {
	client Client
}

func NewClassifier(client Client) *Classifier {
	return &Classifier{client: client}
}

func (c *Classifier) ClassifyText(ctx context.Context, title string, description string) (string, error) {
	labels := make([]string, 0, len(category.AllCategories))
	for _, cat := range category.AllCategories {
		labels = append(labels, string(cat))
	}

	prompt := fmt.Sprintf(
		"Classify this calendar event into exactly one of the following categories: %s.\n"+
			"Respond with only the category name, nothing else.\n\n"+
			"Title: %s\nDescription: %s",
		strings.Join(labels, ", "), title, description)

	label, err := c.client.Complete(ctx, prompt, 10)
	if err != nil {
		return "", fmt.Errorf("%w: %v", category.ErrClassifierUnavailable, err)
	}
	return strings.TrimSpace(label), nil
}

// Summarizer adapts the completion client to the narrative capability
// consumed by the report pipeline.
type Summarizer struct {
	client Client
}

func NewSummarizer(client Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, summary stats.WeekSummary, insights []insight.Insight) (string, error) {
	var data strings.Builder
	fmt.Fprintf(&data, "Past week statistics:\n")
	fmt.Fprintf(&data, "- Total meetings: %d\n", summary.TotalEvents)
	fmt.Fprintf(&data, "- Total meeting time: %s\n", summary.TotalTime)
	fmt.Fprintf(&data, "- Working hours meetings: %s\n", summary.WorkingHoursTime)
	fmt.Fprintf(&data, "- After-hours meetings: %s\n", summary.AfterHoursTime)
	if len(summary.Categories) > 0 {
		parts := make([]string, 0, len(summary.Categories))
		for _, cs := range summary.Categories {
			parts = append(parts, fmt.Sprintf("%s (%d)", cs.Category.Display(), cs.Count))
		}
		fmt.Fprintf(&data, "- Meeting types: %s\n", strings.Join(parts, ", "))
	}
	if len(insights) > 0 {
		fmt.Fprintf(&data, "- Derived insights:\n")
		for _, i := range insights {
			fmt.Fprintf(&data, "  - %s\n", i.Text)
		}
	}

	prompt := fmt.Sprintf(
		"Write a brief, professional summary of this person's meeting week in 4-5 sentences. Focus on:\n"+
			"1. Overall meeting load and time investment\n"+
			"2. Key meeting patterns or notable trends\n"+
			"3. Work-life balance observations\n"+
			"4. One actionable insight for the upcoming week\n\n"+
			"Keep it conversational and helpful, like advice from a productivity coach.\n\n"+
			"Data:\n%s\n"+
			"Write a summary in this style: \"This week you had...\"\n",
		data.String())

	text, err := s.client.Complete(ctx, prompt, 150)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

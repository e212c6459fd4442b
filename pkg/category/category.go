package category

import (
	"context"
	"strings"

	"github.com/weekbrief/weekbrief/pkg/calendar"
)

// Category is the closed set of semantic meeting categories. Classification
// is total: every event maps to exactly one Category, with Other as the
// catch-all.
type Category string

const (
	Standup        Category = "standup"
	Planning       Category = "planning"
	Review         Category = "review"
	OneOnOne       Category = "one_on_one"
	Interview      Category = "interview"
	Training       Category = "training"
	Brainstorm     Category = "brainstorm"
	Client         Category = "client"
	Social         Category = "social"
	Administrative Category = "administrative"
	Technical      Category = "technical"
	Other          Category = "other"
)

// AllCategories lists every valid Category in display order.
var AllCategories = []Category{
	Standup,
	Planning,
	Review,
	OneOnOne,
	Interview,
	Training,
	Brainstorm,
	Client,
	Social,
	Administrative,
	Technical,
	Other,
}

// Display renders the category for human-readable output, e.g.
// "one_on_one" -> "One On One".
func (c Category) Display() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// FromLabel maps an arbitrary label to a Category. Unknown labels map to
// Other so classification never fails.
func FromLabel(label string) Category {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, c := range AllCategories {
		if string(c) == normalized {
			return c
		}
	}
	return Other
}

// CategorizedEvent pairs a normalized event with its Category. Produced once
// per event and never mutated afterwards.
type CategorizedEvent struct {
	calendar.Event
	Category Category
}

// Categorizer assigns a Category to an event. Implementations must be total:
// a Category is returned for every input within a bounded time.
type Categorizer interface {
	Classify(ctx context.Context, event calendar.Event) Category
}

// ClassifyAll classifies events one by one, preserving input order.
// Classification of one event never depends on another.
func ClassifyAll(ctx context.Context, categorizer Categorizer, events []calendar.Event) []CategorizedEvent {
	categorized := make([]CategorizedEvent, 0, len(events))
	for _, event := range events {
		categorized = append(categorized, CategorizedEvent{
			Event:    event,
			Category: categorizer.Classify(ctx, event),
		})
	}
	return categorized
}

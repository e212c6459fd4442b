package category

import (
	"context"
	"strings"

	"github.com/weekbrief/weekbrief/pkg/calendar"
)

// KeywordRule binds a Category to the keywords that select it. Rules are
// evaluated in declaration order; the first matching rule wins.
type KeywordRule struct {
	Category Category
	Keywords []string
}

// DefaultKeywordRules is the built-in rule table. Order matters: more
// specific categories come before broader ones.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{Standup, []string{"standup", "stand-up", "daily", "scrum"}},
		{OneOnOne, []string{"1:1", "1-1", "one on one", "one-on-one", "1on1", "catch up", "catch-up"}},
		{Interview, []string{"interview", "screening", "hiring", "candidate"}},
		{Planning, []string{"planning", "sprint planning", "roadmap", "grooming", "refinement", "backlog"}},
		{Review, []string{"review", "retro", "retrospective", "demo", "showcase"}},
		{Training, []string{"training", "workshop", "onboarding", "learning", "course"}},
		{Brainstorm, []string{"brainstorm", "ideation", "whiteboard", "design session"}},
		{Client, []string{"client", "customer", "vendor", "partner", "sales"}},
		{Social, []string{"lunch", "coffee", "social", "celebration", "team event", "happy hour", "birthday"}},
		{Administrative, []string{"admin", "expense", "compliance", "all hands", "all-hands", "town hall"}},
		{Technical, []string{"architecture", "incident", "postmortem", "debug", "tech", "engineering", "deploy"}},
	}
}

// KeywordCategorizer is the deterministic fallback classifier. It is a pure
// function of the event title and description given a fixed rule table.
type KeywordCategorizer struct {
	rules []KeywordRule
}

func NewKeywordCategorizer(rules []KeywordRule) *KeywordCategorizer {
	return &KeywordCategorizer{rules: rules}
}

func (c *KeywordCategorizer) Classify(_ context.Context, event calendar.Event) Category {
	text := strings.ToLower(event.Title + " " + event.Description)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category
			}
		}
	}
	return Other
}

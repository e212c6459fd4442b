package category

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/pkg/calendar"
)

var ErrClassifierUnavailable = fmt.Errorf("text classifier is unavailable")

// TextClassifier is the external text-classification capability. It returns
// one of the Category labels, or an error on timeout, malformed response, or
// unavailability.
type TextClassifier interface {
	ClassifyText(ctx context.Context, title string, description string) (string, error)
}

// IntelligentCategorizer delegates to an external text classifier and falls
// back to keyword rules per event on any failure. A transient external
// failure degrades accuracy, never availability.
type IntelligentCategorizer struct {
	classifier TextClassifier
	fallback   *KeywordCategorizer
	timeout    time.Duration
}

func NewIntelligentCategorizer(classifier TextClassifier, fallback *KeywordCategorizer, timeout time.Duration) *IntelligentCategorizer {
	return &IntelligentCategorizer{
		classifier: classifier,
		fallback:   fallback,
		timeout:    timeout,
	}
}

func (c *IntelligentCategorizer) Classify(ctx context.Context, event calendar.Event) Category {
	classifyCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	label, err := c.classifier.ClassifyText(classifyCtx, event.Title, event.Description)
	if err != nil {
		log.Warnf("classifier failed for event %q, falling back to keyword rules: %v", event.Title, err)
		return c.fallback.Classify(ctx, event)
	}
	return FromLabel(label)
}

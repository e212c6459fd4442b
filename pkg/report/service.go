package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/internal/utils"
	"github.com/weekbrief/weekbrief/pkg/calendar"
	"github.com/weekbrief/weekbrief/pkg/category"
	"github.com/weekbrief/weekbrief/pkg/insight"
	"github.com/weekbrief/weekbrief/pkg/preview"
	"github.com/weekbrief/weekbrief/pkg/stats"
)

// Service runs the full analysis pipeline and assembles the Report.
type Service interface {
	GenerateReport(ctx context.Context) (Report, error)
	LatestReport() (Report, bool)
}

type ServiceImpl struct {
	source      calendar.EventSource
	normalizer  *calendar.Normalizer
	categorizer category.Categorizer
	aggregator  *stats.Aggregator
	insights    *insight.Generator
	preview     *preview.Builder
	summarizer  insight.Summarizer
	calendarId  string
	previewDays int
	location    *time.Location
	clock       utils.Clock

	mu     sync.Mutex
	latest *Report
}

func NewServiceImpl(
	source calendar.EventSource,
	normalizer *calendar.Normalizer,
	categorizer category.Categorizer,
	aggregator *stats.Aggregator,
	insights *insight.Generator,
	previewBuilder *preview.Builder,
	summarizer insight.Summarizer,
	calendarId string,
	previewDays int,
	location *time.Location,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		source:      source,
		normalizer:  normalizer,
		categorizer: categorizer,
		aggregator:  aggregator,
		insights:    insights,
		preview:     previewBuilder,
		summarizer:  summarizer,
		calendarId:  calendarId,
		previewDays: previewDays,
		location:    location,
		clock:       clock,
	}
}

// GenerateReport analyzes the previous calendar week and previews the
// forward window. A source failure aborts the run; classifier and narrative
// failures only degrade it.
func (s *ServiceImpl) GenerateReport(ctx context.Context) (Report, error) {
	now := s.clock.Now().In(s.location)
	pastWeekStart := utils.PreviousWeekStart(now, time.Monday)
	pastWeekEnd := pastWeekStart.AddDate(0, 0, 7)
	forwardStart := utils.StartOfDay(now)
	forwardEnd := forwardStart.AddDate(0, 0, s.previewDays)

	log.Infof("Analyzing past week: %s to %s", pastWeekStart.Format("2006-01-02"), pastWeekEnd.AddDate(0, 0, -1).Format("2006-01-02"))
	week, err := s.analyzeWeek(ctx, pastWeekStart, pastWeekEnd)
	if err != nil {
		return Report{}, err
	}

	insights := s.insights.Generate(week)

	narrative := ""
	if s.summarizer != nil {
		narrative, err = s.summarizer.Summarize(ctx, week, insights)
		if err != nil {
			log.Warnf("narrative generation failed, omitting narrative: %v", err)
			narrative = ""
		}
	}

	log.Infof("Summarizing upcoming window: %s to %s", forwardStart.Format("2006-01-02"), forwardEnd.AddDate(0, 0, -1).Format("2006-01-02"))
	upcoming, err := s.buildPreview(ctx, forwardStart, forwardEnd)
	if err != nil {
		return Report{}, err
	}

	result := Assemble(uuid.NewString(), s.clock.Now(), week, insights, narrative, upcoming)
	s.mu.Lock()
	s.latest = &result
	s.mu.Unlock()
	return result, nil
}

// LatestReport returns the most recently assembled report, if any.
func (s *ServiceImpl) LatestReport() (Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Report{}, false
	}
	return *s.latest, true
}

func (s *ServiceImpl) analyzeWeek(ctx context.Context, from time.Time, to time.Time) (stats.WeekSummary, error) {
	rawEvents, err := s.source.FetchEvents(ctx, s.calendarId, from, to)
	if err != nil {
		return stats.WeekSummary{}, fmt.Errorf("failed to fetch past week events: %w", err)
	}
	events := s.normalizer.Normalize(rawEvents)
	categorized := category.ClassifyAll(ctx, s.categorizer, events)
	return s.aggregator.Aggregate(categorized, from), nil
}

func (s *ServiceImpl) buildPreview(ctx context.Context, from time.Time, to time.Time) (preview.UpcomingPreview, error) {
	rawEvents, err := s.source.FetchEvents(ctx, s.calendarId, from, to)
	if err != nil {
		return preview.UpcomingPreview{}, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}
	events := s.normalizer.Normalize(rawEvents)
	categorized := category.ClassifyAll(ctx, s.categorizer, events)
	return s.preview.Build(categorized, from, s.previewDays), nil
}

package app

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/internal/config"
	"github.com/weekbrief/weekbrief/internal/utils"
	"github.com/weekbrief/weekbrief/pkg/calendar"
	"github.com/weekbrief/weekbrief/pkg/category"
	"github.com/weekbrief/weekbrief/pkg/google"
	"github.com/weekbrief/weekbrief/pkg/insight"
	"github.com/weekbrief/weekbrief/pkg/openai"
	"github.com/weekbrief/weekbrief/pkg/preview"
	"github.com/weekbrief/weekbrief/pkg/report"
	"github.com/weekbrief/weekbrief/pkg/scheduler"
	"github.com/weekbrief/weekbrief/pkg/slack"
	"github.com/weekbrief/weekbrief/pkg/stats"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	GoogleAuth     *google.Auth
	CalendarSource calendar.EventSource
	Normalizer     *calendar.Normalizer
	Categorizer    category.Categorizer
	Aggregator     *stats.Aggregator
	Insights       *insight.Generator
	PreviewBuilder *preview.Builder
	Summarizer     insight.Summarizer

	ReportService report.Service
	ReportHandler *report.Handler

	SlackRenderer *slack.Renderer
	SlackSink     slack.Sink

	PipelineRunner   *scheduler.PipelineRunner
	Scheduler        *scheduler.Scheduler
	SchedulerHandler *scheduler.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) *Dependencies {
	deps := &Dependencies{}
	location := cfg.Location()

	deps.Clock = &utils.SystemClock{}

	deps.GoogleAuth = google.NewAuth(cfg.Calendar.CredentialsPath, cfg.Calendar.TokenPath)
	deps.CalendarSource = google.NewCalendarSource(deps.GoogleAuth, location)

	deps.Normalizer = calendar.NewNormalizer(calendar.Filters{
		IncludePrivate: cfg.Analysis.IncludePrivate,
		IncludeAllDay:  cfg.Analysis.IncludeAllDay,
	}, location)

	keyword := category.NewKeywordCategorizer(category.DefaultKeywordRules())
	deps.Categorizer = keyword

	var openAIClient openai.Client
	if cfg.OpenAI.ApiKey != "" {
		openAIClient = openai.NewClient(
			cfg.OpenAI.ApiKey,
			cfg.OpenAI.BaseUrl,
			cfg.OpenAI.Model,
			time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
		)
	} else {
		log.Info("OpenAI API key not configured, categorization and narrative fall back to keyword rules only")
	}

	if openAIClient != nil && cfg.OpenAI.CategorizationEnabled {
		classifier := openai.NewClassifier(openAIClient)
		deps.Categorizer = category.NewIntelligentCategorizer(
			classifier, keyword, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)
	}
	if openAIClient != nil && cfg.OpenAI.NarrativeEnabled {
		deps.Summarizer = openai.NewSummarizer(openAIClient)
	}

	deps.Aggregator = stats.NewAggregator(cfg.Analysis.WorkingHoursStart, cfg.Analysis.WorkingHoursEnd, location)
	deps.Insights = insight.NewGenerator(insight.Thresholds{
		HeavyWeekTotal:       time.Duration(cfg.Analysis.HeavyWeekHours) * time.Hour,
		HeavyDayMeetings:     cfg.Analysis.HeavyDayMeetings,
		DominanceProportion:  cfg.Analysis.DominanceProportion,
		AfterHoursProportion: cfg.Analysis.AfterHoursProportion,
	})
	deps.PreviewBuilder = preview.NewBuilder(
		cfg.Analysis.MaxKeyMeetings,
		time.Duration(cfg.Analysis.FocusDayMaxMinutes)*time.Minute,
		location,
	)

	deps.ReportService = report.NewServiceImpl(
		deps.CalendarSource,
		deps.Normalizer,
		deps.Categorizer,
		deps.Aggregator,
		deps.Insights,
		deps.PreviewBuilder,
		deps.Summarizer,
		cfg.Calendar.Id,
		cfg.Analysis.PreviewDays,
		location,
		deps.Clock,
	)
	deps.ReportHandler = report.NewHandler(deps.ReportService)

	deps.SlackRenderer = slack.NewRenderer()
	deps.SlackSink = slack.NewWebhookSink(cfg.Slack.WebhookUrl, cfg.Slack.Channel, deps.SlackRenderer)

	deps.PipelineRunner = scheduler.NewPipelineRunner(deps.ReportService, deps.SlackSink)
	deps.Scheduler = scheduler.New(deps.PipelineRunner, deps.Clock)
	deps.SchedulerHandler = scheduler.NewHandler(deps.Scheduler)

	return deps
}

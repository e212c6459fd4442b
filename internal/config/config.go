package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidConfig = fmt.Errorf("invalid configuration")

type Application struct {
	Calendar  Calendar  `koanf:"calendar"`
	Slack     Slack     `koanf:"slack"`
	OpenAI    OpenAI    `koanf:"openai"`
	Analysis  Analysis  `koanf:"analysis"`
	Scheduler Scheduler `koanf:"scheduler"`
	Listen    string    `koanf:"listen"`
}

type Calendar struct {
	Id              string `koanf:"id"`
	CredentialsPath string `koanf:"credentialspath"`
	TokenPath       string `koanf:"tokenpath"`
}

type Slack struct {
	WebhookUrl string `koanf:"webhookurl"`
	Channel    string `koanf:"channel"`
}

type OpenAI struct {
	ApiKey                string `koanf:"apikey"`
	BaseUrl               string `koanf:"baseurl"`
	Model                 string `koanf:"model"`
	TimeoutSeconds        int    `koanf:"timeoutseconds"`
	CategorizationEnabled bool   `koanf:"categorizationenabled"`
	NarrativeEnabled      bool   `koanf:"narrativeenabled"`
}

type Analysis struct {
	Timezone          string `koanf:"timezone"`
	WorkingHoursStart int    `koanf:"workinghoursstart"`
	WorkingHoursEnd   int    `koanf:"workinghoursend"`
	IncludePrivate    bool   `koanf:"includeprivate"`
	IncludeAllDay     bool   `koanf:"includeallday"`

	// Insight thresholds
	HeavyDayMeetings     int     `koanf:"heavydaymeetings"`
	HeavyWeekHours       int     `koanf:"heavyweekhours"`
	DominanceProportion  float64 `koanf:"dominanceproportion"`
	AfterHoursProportion float64 `koanf:"afterhoursproportion"`

	// Upcoming preview
	PreviewDays        int `koanf:"previewdays"`
	MaxKeyMeetings     int `koanf:"maxkeymeetings"`
	FocusDayMaxMinutes int `koanf:"focusdaymaxminutes"`
}

type Scheduler struct {
	CronSpec string `koanf:"cronspec"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8282",
		Calendar: Calendar{
			Id:              "primary",
			CredentialsPath: "credentials.json",
			TokenPath:       "token.json",
		},
		OpenAI: OpenAI{
			BaseUrl:               "https://api.openai.com/v1",
			Model:                 "gpt-3.5-turbo",
			TimeoutSeconds:        20,
			CategorizationEnabled: true,
			NarrativeEnabled:      true,
		},
		Analysis: Analysis{
			Timezone:             "UTC",
			WorkingHoursStart:    9,
			WorkingHoursEnd:      17,
			HeavyDayMeetings:     6,
			HeavyWeekHours:       20,
			DominanceProportion:  0.4,
			AfterHoursProportion: 0.2,
			PreviewDays:          7,
			MaxKeyMeetings:       10,
			FocusDayMaxMinutes:   60,
		},
		Scheduler: Scheduler{
			CronSpec: "0 9 * * MON",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "WEEKBRIEF_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "WEEKBRIEF_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate rejects configurations that would make an analysis run impossible.
// A run is never started with an invalid configuration.
func (a Application) Validate() error {
	if a.Analysis.WorkingHoursEnd <= a.Analysis.WorkingHoursStart {
		return fmt.Errorf("%w: working hours end (%d) must be after start (%d)",
			ErrInvalidConfig, a.Analysis.WorkingHoursEnd, a.Analysis.WorkingHoursStart)
	}
	if a.Analysis.WorkingHoursStart < 0 || a.Analysis.WorkingHoursEnd > 24 {
		return fmt.Errorf("%w: working hours must be within 0-24", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(a.Analysis.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, a.Analysis.Timezone)
	}
	if a.Analysis.PreviewDays <= 0 {
		return fmt.Errorf("%w: preview window must be at least one day", ErrInvalidConfig)
	}
	if a.Analysis.MaxKeyMeetings < 0 {
		return fmt.Errorf("%w: max key meetings cannot be negative", ErrInvalidConfig)
	}
	if a.Analysis.FocusDayMaxMinutes < 0 {
		return fmt.Errorf("%w: focus day threshold cannot be negative", ErrInvalidConfig)
	}
	if a.Analysis.DominanceProportion <= 0 || a.Analysis.DominanceProportion > 1 {
		return fmt.Errorf("%w: dominance proportion must be in (0, 1]", ErrInvalidConfig)
	}
	if a.Scheduler.CronSpec == "" {
		return fmt.Errorf("%w: scheduler cron spec is required", ErrInvalidConfig)
	}
	return nil
}

// Location resolves the configured analysis timezone. Validate must have
// passed before calling.
func (a Application) Location() *time.Location {
	loc, err := time.LoadLocation(a.Analysis.Timezone)
	if err != nil {
		log.Errorf("failed to load configured timezone %q, falling back to UTC: %v", a.Analysis.Timezone, err)
		return time.UTC
	}
	return loc
}

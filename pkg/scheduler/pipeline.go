package scheduler

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/pkg/report"
	"github.com/weekbrief/weekbrief/pkg/slack"
)

// PipelineRunner generates the report and hands it to the messaging sink.
// In test-only mode the pipeline runs through assembly but delivery is
// skipped; a failed run never delivers a partial report.
type PipelineRunner struct {
	reports report.Service
	sink    slack.Sink
}

func NewPipelineRunner(reports report.Service, sink slack.Sink) *PipelineRunner {
	return &PipelineRunner{
		reports: reports,
		sink:    sink,
	}
}

func (r *PipelineRunner) Run(ctx context.Context, testOnly bool) error {
	result, err := r.reports.GenerateReport(ctx)
	if err != nil {
		return err
	}

	if testOnly {
		log.Infof("Test mode: report %s assembled, skipping delivery", result.Id)
		return nil
	}

	return r.sink.Deliver(ctx, result)
}

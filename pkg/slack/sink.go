package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/weekbrief/weekbrief/pkg/report"
)

var ErrSinkUnavailable = fmt.Errorf("messaging sink is unavailable")

// Sink delivers an assembled report to the messaging destination.
type Sink interface {
	Deliver(ctx context.Context, r report.Report) error
}

type webhookPayload struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks"`
}

// WebhookSink posts the rendered report to a Slack incoming webhook.
type WebhookSink struct {
	webhookUrl string
	channel    string
	renderer   *Renderer
	httpClient *http.Client
}

func NewWebhookSink(webhookUrl string, channel string, renderer *Renderer) *WebhookSink {
	return &WebhookSink{
		webhookUrl: webhookUrl,
		channel:    channel,
		renderer:   renderer,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *WebhookSink) Deliver(ctx context.Context, r report.Report) error {
	blocks := s.renderer.RenderReport(r)
	body, err := json.Marshal(webhookPayload{
		Channel: s.channel,
		Text:    "Weekly calendar report",
		Blocks:  blocks,
	})
	if err != nil {
		return fmt.Errorf("unable to marshal Slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookUrl, bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to create Slack request: %v", err)
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to deliver report to Slack: %v", err)
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorf("Slack webhook returned status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: webhook returned status %d", ErrSinkUnavailable, resp.StatusCode)
	}

	log.Infof("Delivered report %s with %d blocks", r.Id, len(blocks))
	return nil
}

// StubSink records deliveries for tests.
type StubSink struct {
	Delivered []report.Report
	Err       error
}

func NewStubSink() *StubSink {
	return &StubSink{}
}

func (s *StubSink) Deliver(_ context.Context, r report.Report) error {
	if s.Err != nil {
		return s.Err
	}
	s.Delivered = append(s.Delivered, r)
	return nil
}

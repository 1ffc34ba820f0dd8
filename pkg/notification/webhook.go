package notification

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leadpulse-crm/LeadPulse/pkg/logger"
	"go.uber.org/zap"
)

// CallEndedEvent is the payload delivered to the configured webhook after a
// call session completes and its summary has been written back.
type CallEndedEvent struct {
	SessionID       string     `json:"sessionId"`
	BusinessID      uint       `json:"businessId"`
	BusinessName    string     `json:"businessName,omitempty"`
	ContactName     string     `json:"contactName,omitempty"`
	Disposition     string     `json:"disposition,omitempty"`
	DealScore       int        `json:"dealScore"`
	DurationMinutes int        `json:"durationMinutes"`
	EndedAt         time.Time  `json:"endedAt"`
	FollowUpDate    *time.Time `json:"followUpDate,omitempty"`
	Summary         string     `json:"summary"`
}

// WebhookDispatcher posts events to a single configured URL. A zero-value URL
// disables dispatch entirely.
type WebhookDispatcher struct {
	url    string
	client *resty.Client
}

// NewWebhookDispatcher creates a dispatcher for the given URL
func NewWebhookDispatcher(url string) *WebhookDispatcher {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)
	return &WebhookDispatcher{url: url, client: client}
}

// Enabled reports whether a webhook URL is configured
func (d *WebhookDispatcher) Enabled() bool {
	return d != nil && d.url != ""
}

// DispatchCallEnded delivers the event; failures are returned for logging but
// are never fatal to the call flow.
func (d *WebhookDispatcher) DispatchCallEnded(event *CallEndedEvent) error {
	if !d.Enabled() {
		return nil
	}
	resp, err := d.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(d.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	logger.Debug("call-ended webhook delivered",
		zap.String("sessionId", event.SessionID),
		zap.Int("status", resp.StatusCode()))
	return nil
}

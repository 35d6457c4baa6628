package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Notifier delivers a message to a chat webhook.
type Notifier interface {
	Notify(ctx context.Context, webhookURL string, msg *Message) error
}

// DeliveryError reports a failed webhook POST. StatusCode is zero when no
// response was received.
type DeliveryError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed: %d %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("server connection failed: %v", e.Err)
}

func (e *DeliveryError) Cause() error { return e.Err }

func (e *DeliveryError) Unwrap() error { return e.Err }

// Webhook posts messages to Slack incoming webhooks. It makes exactly one
// attempt per message.
type Webhook struct {
	client *resty.Client
	logger *zap.Logger
}

func NewWebhook(client *resty.Client, logger *zap.Logger) *Webhook {
	if client == nil {
		client = resty.New()
	}
	return &Webhook{
		client: client.SetRetryCount(0),
		logger: logger,
	}
}

func (w *Webhook) Notify(ctx context.Context, webhookURL string, msg *Message) error {
	w.logger.Info("sending slack message", zap.String("channel", msg.Channel))

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(webhookURL)
	if err != nil {
		w.logger.Error("server connection failed", zap.Error(err))
		return &DeliveryError{Err: errors.WithStack(err)}
	}

	if resp.IsError() {
		reason := http.StatusText(resp.StatusCode())
		w.logger.Error("request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("reason", reason),
			zap.ByteString("body", resp.Body()))
		return &DeliveryError{StatusCode: resp.StatusCode(), Reason: reason}
	}

	w.logger.Info("message posted", zap.String("channel", msg.Channel))
	return nil
}

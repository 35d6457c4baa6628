package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/yuichiro-h/cloudwatch-slack-notifier/alarm"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/config"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/notify"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/ssm"
)

// AlarmHandler relays one CloudWatch alarm notification to Slack per
// invocation.
type AlarmHandler struct {
	config   *config.Config
	resolver ssm.Resolver
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewAlarmHandler(c *config.Config, resolver ssm.Resolver, notifier notify.Notifier, logger *zap.Logger) *AlarmHandler {
	return &AlarmHandler{
		config:   c,
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle reports whether the message reached Slack. Only a malformed event is
// returned as an error; secret and delivery failures are logged and reported
// through the boolean so the invocation is not retried.
func (h *AlarmHandler) Handle(ctx context.Context, event events.SNSEvent) (bool, error) {
	h.logger.Debug("request received", zap.Any("event", event))

	a, err := alarm.Decode(event)
	if err != nil {
		h.logger.Error("failed to decode alarm", zap.Error(err))
		return false, err
	}

	logger := h.logger.With(
		zap.String("message_id", a.MessageID),
		zap.String("alarm_name", a.Name))
	logger.Info("alarm received",
		zap.String("new_state", a.NewState),
		zap.String("old_state", a.OldState),
		zap.String("region", a.Region),
		zap.String("metric_namespace", a.Namespace),
		zap.String("metric_name", a.MetricName),
		zap.String("statistic", a.Statistic),
		zap.String("state_change_time", a.StateChangeTime))

	webhookURL, err := h.resolver.Resolve(ctx, h.config.WebhookParameter)
	if err != nil || webhookURL == "" {
		logger.Error("unable to obtain the Slack webhook URL to post to",
			zap.String("parameter", h.config.WebhookParameter),
			zap.Error(err))
		return false, nil
	}

	msg := notify.Format(a, h.config)
	if err := h.notifier.Notify(ctx, webhookURL, msg); err != nil {
		logger.Error("failed to notify slack", zap.String("channel", msg.Channel), zap.Error(err))
		return false, nil
	}

	return true, nil
}

package notify

import (
	"fmt"
	"net/url"

	"github.com/nlopes/slack"

	"github.com/yuichiro-h/cloudwatch-slack-notifier/alarm"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/config"
)

const (
	attachmentFallback = "Check the Cloudwatch console for details."
	attachmentTitle    = "View Alarm Details in the AWS Console"
)

// Format builds the Slack message announcing a.
func Format(a *alarm.Alarm, c *config.Config) *Message {
	color := c.Slack.AlarmColor
	if a.IsOK() {
		color = c.Slack.OKColor
	}

	attachment := slack.Attachment{
		Fallback:  attachmentFallback,
		Color:     color,
		Title:     attachmentTitle,
		Text:      a.Reason,
		TitleLink: ConsoleURL(c.Region, a.Name),
		Fields: []slack.AttachmentField{
			{Title: "Threshold", Value: a.ThresholdString()},
			{Title: "Evals Over/Lower Threshold", Value: a.EvaluationPeriodsString()},
			{Title: "Namespace", Value: a.Namespace},
			{Title: "Metric", Value: a.MetricName},
		},
	}

	return &Message{
		Username:    c.Slack.Username,
		IconURL:     c.Slack.IconURL,
		Channel:     c.ChannelFor(a.Name),
		Attachments: []slack.Attachment{attachment},
		Text: fmt.Sprintf("[*%s*]Cloudwatch Alarm `%s` is in state _%s_ in %s",
			c.EnvironmentTitle(), a.Name, a.NewState, a.Region),
	}
}

// ConsoleURL links to the alarm in the CloudWatch console.
func ConsoleURL(region, alarmName string) string {
	return fmt.Sprintf("https://console.aws.amazon.com/cloudwatch/home?region=%s#alarm:alarmFilter=ANY;name=%s",
		url.QueryEscape(region), url.PathEscape(alarmName))
}

package notify

import (
	"testing"

	"github.com/nlopes/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuichiro-h/cloudwatch-slack-notifier/alarm"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/config"
)

func testConfig(t *testing.T) *config.Config {
	env := map[string]string{
		config.KeyChannel:          "#alerts",
		config.KeyWebhookParameter: "/slack/webhook",
		config.KeyEnvironment:      "production",
		config.KeyRegion:           "us-east-1",
	}
	c, err := config.Load(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	require.NoError(t, err)
	return c
}

func highCPU() *alarm.Alarm {
	threshold := 80.0
	evals := 3
	return &alarm.Alarm{
		Name:              "HighCPU",
		NewState:          "ALARM",
		Reason:            "CPU > 80%",
		Region:            "us-east-1",
		Namespace:         "AWS/EC2",
		MetricName:        "CPUUtilization",
		Statistic:         "Average",
		Threshold:         &threshold,
		EvaluationPeriods: &evals,
	}
}

func TestFormat(t *testing.T) {
	msg := Format(highCPU(), testConfig(t))

	assert.Equal(t, "#alerts", msg.Channel)
	assert.Equal(t, "", msg.Username)
	assert.Equal(t, config.DefaultIconURL, msg.IconURL)
	assert.Equal(t, "[*Production*]Cloudwatch Alarm `HighCPU` is in state _ALARM_ in us-east-1", msg.Text)

	require.Len(t, msg.Attachments, 1)
	a := msg.Attachments[0]
	assert.Equal(t, "Check the Cloudwatch console for details.", a.Fallback)
	assert.Equal(t, config.DefaultAlarmColor, a.Color)
	assert.Equal(t, "View Alarm Details in the AWS Console", a.Title)
	assert.Equal(t, "CPU > 80%", a.Text)
	assert.Equal(t, "https://console.aws.amazon.com/cloudwatch/home?region=us-east-1#alarm:alarmFilter=ANY;name=HighCPU", a.TitleLink)
	assert.Equal(t, []slack.AttachmentField{
		{Title: "Threshold", Value: "80", Short: false},
		{Title: "Evals Over/Lower Threshold", Value: "3", Short: false},
		{Title: "Namespace", Value: "AWS/EC2", Short: false},
		{Title: "Metric", Value: "CPUUtilization", Short: false},
	}, a.Fields)
}

func TestFormatColor(t *testing.T) {
	c := testConfig(t)

	for state, color := range map[string]string{
		"OK":                config.DefaultOKColor,
		"ALARM":             config.DefaultAlarmColor,
		"INSUFFICIENT_DATA": config.DefaultAlarmColor,
	} {
		a := highCPU()
		a.NewState = state
		assert.Equal(t, color, Format(a, c).Attachments[0].Color, state)
	}
}

func TestFormatOptionalTriggerValues(t *testing.T) {
	a := highCPU()
	a.Threshold = nil
	a.EvaluationPeriods = nil

	fields := Format(a, testConfig(t)).Attachments[0].Fields
	assert.Equal(t, "n/a", fields[0].Value)
	assert.Equal(t, "n/a", fields[1].Value)
}

func TestConsoleURL(t *testing.T) {
	assert.Equal(t,
		"https://console.aws.amazon.com/cloudwatch/home?region=eu-west-1#alarm:alarmFilter=ANY;name=api%20latency",
		ConsoleURL("eu-west-1", "api latency"))
}

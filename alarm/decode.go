package alarm

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// Decode extracts the alarm carried by the first record of an SNS delivery.
func Decode(event events.SNSEvent) (*Alarm, error) {
	if len(event.Records) == 0 {
		return nil, &DecodeError{Err: errors.New("event has no records")}
	}
	entity := event.Records[0].SNS

	var msg message
	if err := json.Unmarshal([]byte(entity.Message), &msg); err != nil {
		return nil, &DecodeError{Field: "Records[0].Sns.Message", Err: errors.WithStack(err)}
	}
	if msg.Trigger == nil {
		return nil, &DecodeError{Field: "Trigger"}
	}

	required := []struct {
		name  string
		value *string
	}{
		{"AlarmName", msg.AlarmName},
		{"NewStateValue", msg.NewStateValue},
		{"NewStateReason", msg.NewStateReason},
		{"Region", msg.Region},
		{"Trigger.Namespace", msg.Trigger.Namespace},
		{"Trigger.MetricName", msg.Trigger.MetricName},
	}
	for _, r := range required {
		if r.value == nil {
			return nil, &DecodeError{Field: r.name}
		}
	}

	statistic, err := statisticOf(msg.Trigger)
	if err != nil {
		return nil, err
	}

	a := &Alarm{
		MessageID:         entity.MessageID,
		Name:              *msg.AlarmName,
		AWSAccountID:      msg.AWSAccountID,
		NewState:          *msg.NewStateValue,
		OldState:          msg.OldStateValue,
		Reason:            *msg.NewStateReason,
		StateChangeTime:   msg.StateChangeTime,
		Region:            *msg.Region,
		Namespace:         *msg.Trigger.Namespace,
		MetricName:        *msg.Trigger.MetricName,
		Statistic:         statistic,
		Threshold:         msg.Trigger.Threshold,
		EvaluationPeriods: msg.Trigger.EvaluationPeriods,
	}
	if msg.AlarmDescription != nil {
		a.Description = *msg.AlarmDescription
	}

	return a, nil
}

// statisticOf prefers the plain statistic and falls back to an extended
// statistic rendered as Type(Extended), e.g. "ExtendedStatistic(p99)".
func statisticOf(t *trigger) (string, error) {
	if t.Statistic != "" {
		return t.Statistic, nil
	}
	if t.StatisticType != "" {
		if t.ExtendedStatistic == "" {
			return "", &DecodeError{Field: "Trigger.ExtendedStatistic"}
		}
		return fmt.Sprintf("%s(%s)", t.StatisticType, t.ExtendedStatistic), nil
	}
	return "", &DecodeError{Field: "Trigger.Statistic"}
}

package alarm

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	StateOK    = "OK"
	StateAlarm = "ALARM"

	// NotAvailable is rendered for optional trigger values the alarm did not carry.
	NotAvailable = "n/a"
)

// Alarm is the part of a CloudWatch alarm notification the notifier consumes.
type Alarm struct {
	MessageID       string
	Name            string
	Description     string
	AWSAccountID    string
	NewState        string
	OldState        string
	Reason          string
	StateChangeTime string
	Region          string

	Namespace         string
	MetricName        string
	Statistic         string
	Threshold         *float64
	EvaluationPeriods *int
}

func (a *Alarm) IsOK() bool {
	return a.NewState == StateOK
}

// ThresholdString renders the threshold with thousands separators.
func (a *Alarm) ThresholdString() string {
	if a.Threshold == nil {
		return NotAvailable
	}
	return humanize.Commaf(*a.Threshold)
}

func (a *Alarm) EvaluationPeriodsString() string {
	if a.EvaluationPeriods == nil {
		return NotAvailable
	}
	return strconv.Itoa(*a.EvaluationPeriods)
}

type message struct {
	AlarmName        *string  `json:"AlarmName"`
	AlarmDescription *string  `json:"AlarmDescription"`
	AWSAccountID     string   `json:"AWSAccountId"`
	NewStateValue    *string  `json:"NewStateValue"`
	NewStateReason   *string  `json:"NewStateReason"`
	StateChangeTime  string   `json:"StateChangeTime"`
	Region           *string  `json:"Region"`
	OldStateValue    string   `json:"OldStateValue"`
	Trigger          *trigger `json:"Trigger"`
}

type trigger struct {
	MetricName         *string  `json:"MetricName"`
	Namespace          *string  `json:"Namespace"`
	StatisticType      string   `json:"StatisticType"`
	Statistic          string   `json:"Statistic"`
	ExtendedStatistic  string   `json:"ExtendedStatistic"`
	Unit               *string  `json:"Unit"`
	Period             int      `json:"Period"`
	EvaluationPeriods  *int     `json:"EvaluationPeriods"`
	ComparisonOperator string   `json:"ComparisonOperator"`
	Threshold          *float64 `json:"Threshold"`
	TreatMissingData   string   `json:"TreatMissingData"`
}

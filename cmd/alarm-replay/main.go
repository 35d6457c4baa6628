// Command alarm-replay runs the notifier locally against a saved SNS event.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awsssm "github.com/aws/aws-sdk-go/service/ssm"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/yuichiro-h/cloudwatch-slack-notifier/alarm"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/config"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/handler"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/log"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/notify"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/ssm"
)

func main() {
	app := cli.NewApp()
	app.Name = "alarm-replay"
	app.Usage = "post a saved CloudWatch alarm SNS event to Slack"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "event",
			Usage: "path to an SNS event JSON file",
		},
		cli.StringFlag{
			Name:  "webhook-url",
			Usage: "post to this webhook instead of resolving SSM_SLACK_WEBHOOK",
		},
		cli.BoolFlag{
			Name:  "dry-run",
			Usage: "print the Slack message instead of posting it",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.String("event") == "" {
		return errors.New("--event is required")
	}

	event, err := readEvent(ctx.String("event"))
	if err != nil {
		return err
	}

	c, err := config.Load(os.LookupEnv)
	if err != nil {
		return err
	}

	if ctx.Bool("dry-run") {
		a, err := alarm.Decode(event)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(notify.Format(a, c), "", "  ")
		if err != nil {
			return errors.WithStack(err)
		}
		fmt.Println(string(out))
		return nil
	}

	logger, err := log.New(c.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var resolver ssm.Resolver
	if u := ctx.String("webhook-url"); u != "" {
		resolver = staticResolver(u)
	} else {
		sess, err := session.NewSession(aws.NewConfig().WithRegion(c.Region))
		if err != nil {
			return errors.WithStack(err)
		}
		resolver = ssm.NewParameterStore(awsssm.New(sess), logger)
	}

	h := handler.NewAlarmHandler(c, resolver, notify.NewWebhook(resty.New(), logger), logger)
	ok, err := h.Handle(context.Background(), event)
	if err != nil {
		return err
	}
	logger.Info("replay finished", zap.Bool("delivered", ok))
	if !ok {
		return cli.NewExitError("message was not delivered", 2)
	}
	return nil
}

func readEvent(filename string) (events.SNSEvent, error) {
	var event events.SNSEvent

	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return event, errors.WithStack(err)
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return event, errors.Wrapf(err, "parse %s", filename)
	}
	return event, nil
}

type staticResolver string

func (r staticResolver) Resolve(context.Context, string) (string, error) {
	return string(r), nil
}

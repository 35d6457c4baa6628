package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awsssm "github.com/aws/aws-sdk-go/service/ssm"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yuichiro-h/cloudwatch-slack-notifier/config"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/handler"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/log"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/notify"
	"github.com/yuichiro-h/cloudwatch-slack-notifier/ssm"
)

var (
	// GitVersion overridden at build time by:
	//   -ldflags="-X main.GitVersion=${VERSION}"
	GitVersion string
)

func main() {
	c, err := config.Load(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := log.New(c.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	sess, err := session.NewSession(aws.NewConfig().WithRegion(c.Region))
	if err != nil {
		logger.Fatal("failed to create AWS session", zap.Error(err))
	}

	h := handler.NewAlarmHandler(c,
		ssm.NewParameterStore(awsssm.New(sess), logger),
		notify.NewWebhook(resty.New(), logger),
		logger)

	logger.Info("starting lambda",
		zap.String("version", GitVersion),
		zap.String("environment", c.Environment),
		zap.String("region", c.Region))

	lambda.Start(h.Handle)
}

package ssm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	awsssm "github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Resolver looks up a secret value by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// ResolutionError is returned when the parameter store lookup fails. Code
// carries the AWS error code when the store returned one.
type ResolutionError struct {
	Name string
	Code string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("get parameter %s: %s", e.Name, e.Code)
	}
	return fmt.Sprintf("get parameter %s: %v", e.Name, e.Err)
}

func (e *ResolutionError) Cause() error { return e.Err }

func (e *ResolutionError) Unwrap() error { return e.Err }

// ParameterStore resolves SecureString parameters from SSM Parameter Store.
type ParameterStore struct {
	client ssmiface.SSMAPI
	logger *zap.Logger
}

func NewParameterStore(client ssmiface.SSMAPI, logger *zap.Logger) *ParameterStore {
	return &ParameterStore{
		client: client,
		logger: logger,
	}
}

func (s *ParameterStore) Resolve(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetParameterWithContext(ctx, &awsssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		rerr := &ResolutionError{Name: name, Err: errors.WithStack(err)}
		if aerr, ok := err.(awserr.Error); ok {
			rerr.Code = aerr.Code()
		}
		s.logger.Error("unexpected error getting SSM parameter",
			zap.String("parameter", name),
			zap.String("code", rerr.Code),
			zap.Error(err))
		return "", rerr
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		s.logger.Error("SSM parameter has no value", zap.String("parameter", name))
		return "", &ResolutionError{Name: name, Err: errors.New("parameter has no value")}
	}

	return *out.Parameter.Value, nil
}

// Package log builds the structured logger handed to every component.
package log

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func New(debug bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	if debug {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	c.DisableStacktrace = !debug

	l, err := c.Build()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return l, nil
}

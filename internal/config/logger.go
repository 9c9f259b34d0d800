package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the command logger: the development config when debug
// is set, the production config otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

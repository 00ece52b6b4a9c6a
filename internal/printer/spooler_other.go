//go:build !windows

package printer

import (
	"context"

	"go.uber.org/zap"
)

// SpoolerSender is only functional on Windows.
type SpoolerSender struct {
	Logger *zap.Logger
}

// NewSpoolerSender always fails outside Windows.
func NewSpoolerSender(*zap.Logger) (*SpoolerSender, error) {
	return nil, ErrSpoolerUnavailable
}

// Send always fails outside Windows.
func (s *SpoolerSender) Send(context.Context, string, []byte) error {
	return ErrSpoolerUnavailable
}

// NewSpoolerLister always fails outside Windows.
func NewSpoolerLister() (Lister, error) {
	return nil, ErrSpoolerUnavailable
}

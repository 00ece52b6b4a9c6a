package printer

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Options tune host detection.
type Options struct {
	LPCommand     string
	LpstatCommand string
	Logger        *zap.Logger
}

// Router picks the network sender for tcp:// identifiers and the local
// sender for everything else.
type Router struct {
	Local   Sender
	Network Sender
}

var _ Sender = (*Router)(nil)

// Send dispatches to the sender that owns printer.
func (r *Router) Send(ctx context.Context, printer string, data []byte) error {
	if IsNetwork(printer) && r.Network != nil {
		return r.Network.Send(ctx, printer, data)
	}
	if r.Local == nil {
		return ErrSpoolerUnavailable
	}
	return r.Local.Send(ctx, printer, data)
}

// Detect chooses the delivery mechanism once for this host: the native
// spooler when it loads, otherwise the lp utility.
func Detect(opts Options) (Sender, Lister) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		local  Sender
		lister Lister
	)
	spooler, err := NewSpoolerSender(logger)
	switch {
	case err == nil:
		local = spooler
		if l, lerr := NewSpoolerLister(); lerr == nil {
			lister = l
		}
		logger.Info("using native print spooler")
	case errors.Is(err, ErrSpoolerUnavailable):
		local = &LPSender{Command: opts.LPCommand, Logger: logger}
		logger.Info("using lp for raw printing", zap.String("command", commandOr(opts.LPCommand, defaultLPCommand)))
	default:
		logger.Warn("spooler detection failed", zap.Error(err))
		local = &LPSender{Command: opts.LPCommand, Logger: logger}
	}
	if lister == nil {
		lister = &LpstatLister{Command: opts.LpstatCommand}
	}

	return &Router{Local: local, Network: &NetSender{Logger: logger}}, lister
}

func commandOr(command, fallback string) string {
	if command == "" {
		return fallback
	}
	return command
}

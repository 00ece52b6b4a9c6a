package printer

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// NetworkScheme prefixes printer identifiers served by NetSender.
	NetworkScheme = "tcp://"

	defaultRawPort    = "9100"
	defaultNetTimeout = 10 * time.Second
)

// NetSender writes raw bytes to a printer's TCP port (JetDirect, 9100).
type NetSender struct {
	DialTimeout time.Duration
	Logger      *zap.Logger
}

var _ Sender = (*NetSender)(nil)

// Send connects to printer, given as "tcp://host[:port]" or "host[:port]",
// and writes data in full.
func (s *NetSender) Send(ctx context.Context, printer string, data []byte) error {
	if err := checkPrinter(printer); err != nil {
		return err
	}
	addr := NetworkAddress(printer)
	if addr == "" {
		return &DispatchError{Printer: printer, Err: ErrEmptyPrinter}
	}

	timeout := s.DialTimeout
	if timeout <= 0 {
		timeout = defaultNetTimeout
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &DispatchError{Printer: printer, Err: fmt.Errorf("connect %s: %w", addr, err)}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write(data); err != nil {
		return &DispatchError{Printer: printer, Err: fmt.Errorf("write %s: %w", addr, err)}
	}

	if s.Logger != nil {
		s.Logger.Debug("network printer accepted job",
			zap.String("addr", addr),
			zap.Int("bytes", len(data)),
		)
	}
	return nil
}

// IsNetwork reports whether printer names a network printer.
func IsNetwork(printer string) bool {
	return strings.HasPrefix(strings.TrimSpace(printer), NetworkScheme)
}

// NetworkAddress strips the scheme and adds the default raw port when missing.
// It returns "" when no host is given, since the dialer would read an empty
// host as the local machine.
func NetworkAddress(printer string) string {
	addr := strings.TrimPrefix(strings.TrimSpace(printer), NetworkScheme)
	addr = strings.TrimSpace(strings.TrimSuffix(addr, "/"))
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = strings.Trim(addr, "[]")
		addr = net.JoinHostPort(host, defaultRawPort)
	}
	if strings.TrimSpace(host) == "" {
		return ""
	}
	return addr
}

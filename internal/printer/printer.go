package printer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sender delivers raw bytes to a named printer without driver reinterpretation.
type Sender interface {
	Send(ctx context.Context, printer string, data []byte) error
}

// Lister enumerates printers known to the host.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

var (
	// ErrSpoolerUnavailable is returned when the native spooler API cannot be
	// used on this host.
	ErrSpoolerUnavailable = errors.New("native print spooler is not available on this platform")
	// ErrEmptyPrinter is returned when no printer name is given.
	ErrEmptyPrinter = errors.New("printer name is empty")
)

// DispatchError reports a failed hand-off to a printer.
type DispatchError struct {
	Printer string
	Stderr  string
	Err     error
}

func (e *DispatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "print to %q failed", e.Printer)
	if e.Stderr != "" {
		b.WriteString(": ")
		b.WriteString(e.Stderr)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func checkPrinter(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyPrinter
	}
	return nil
}

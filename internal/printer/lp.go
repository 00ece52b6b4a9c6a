package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultLPCommand     = "lp"
	defaultLpstatCommand = "lpstat"
	tempPattern          = "zplpress-*.zpl"
)

// LPSender prints through the CUPS lp utility with the raw option.
type LPSender struct {
	Command string // defaults to "lp"
	TempDir string // defaults to os.TempDir()
	Logger  *zap.Logger
}

var _ Sender = (*LPSender)(nil)

// Send writes data to a temporary file and hands it to lp. The file is
// removed on every return path.
func (s *LPSender) Send(ctx context.Context, printer string, data []byte) error {
	if err := checkPrinter(printer); err != nil {
		return err
	}

	path, err := writeTemp(s.TempDir, data)
	if err != nil {
		return &DispatchError{Printer: printer, Err: err}
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger().Warn("remove temp file", zap.String("path", path), zap.Error(err))
		}
	}()

	command := s.Command
	if strings.TrimSpace(command) == "" {
		command = defaultLPCommand
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, "-d", printer, "-o", "raw", path)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &DispatchError{
			Printer: printer,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	s.logger().Debug("lp accepted job",
		zap.String("printer", printer),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (s *LPSender) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func writeTemp(dir string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// LpstatLister enumerates CUPS printers with `lpstat -p`.
type LpstatLister struct {
	Command string // defaults to "lpstat"
}

var _ Lister = (*LpstatLister)(nil)

// List returns the printer names reported by lpstat. A missing lpstat binary
// or a failing run yields an empty list.
func (l *LpstatLister) List(ctx context.Context) ([]string, error) {
	command := l.Command
	if strings.TrimSpace(command) == "" {
		command = defaultLpstatCommand
	}
	out, err := exec.CommandContext(ctx, command, "-p").Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	return ParseLpstat(string(out)), nil
}

// ParseLpstat extracts printer names from `lpstat -p` output.
func ParseLpstat(out string) []string {
	var printers []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "printer" {
			printers = append(printers, fields[1])
		}
	}
	return printers
}

package labels

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/zplpress/internal/printer"
	"github.com/five82/zplpress/internal/zpl"
)

// Mode selects how many labels a run prints.
type Mode int

const (
	// ModeTest prints only the first label.
	ModeTest Mode = iota
	// ModeAll prints every label in the file.
	ModeAll
)

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "test"
}

var (
	// ErrNoPrinter means no printer was selected.
	ErrNoPrinter = errors.New("no printer selected, choose a printer before printing")
	// ErrNoStartMarker means the file has no ^XA anywhere.
	ErrNoStartMarker = errors.New("the file does not contain ZPL commands (missing ^XA)")
	// ErrNoLabels means splitting produced nothing to print.
	ErrNoLabels = errors.New("no labels found in the file")
)

// ReadError reports a label file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// JobError reports the job that stopped a run. Index is 1-based.
type JobError struct {
	Index int
	Total int
	Err   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %d of %d: %v", e.Index, e.Total, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// Request describes one print run.
type Request struct {
	Path    string
	Printer string
	Mode    Mode
}

// Plan is a parsed label file ready for dispatch.
type Plan struct {
	Path   string
	Blocks []string
}

// Result summarises a finished run.
type Result struct {
	RunID   string
	Path    string
	Printer string
	Mode    Mode
	Labels  int // labels found in the file
	Jobs    int // jobs planned for this run
	Sent    int // labels handed to the printer
}

// Summary is the message shown after a successful run.
func (r Result) Summary() string {
	if r.Mode == ModeTest {
		return fmt.Sprintf("First label sent to %s.", r.Printer)
	}
	return fmt.Sprintf("All %d labels sent to %s.", r.Sent, r.Printer)
}

// Service reads label files and sends them through a printer.Sender.
type Service struct {
	Sender printer.Sender
	// BatchSize > 1 concatenates that many labels into one job in ModeAll.
	BatchSize int
	// Strict requires ^XA in every block, not just somewhere in the file.
	Strict bool
	Logger *zap.Logger
}

// Preview reads and splits a label file without printing it.
func (s *Service) Preview(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, &ReadError{Path: path, Err: err}
	}
	content, err := zpl.Decode(raw)
	if err != nil {
		return Plan{}, &ReadError{Path: path, Err: err}
	}
	if !zpl.HasStartMarker(content) {
		return Plan{}, ErrNoStartMarker
	}
	blocks := zpl.Split(content)
	if len(blocks) == 0 {
		return Plan{}, ErrNoLabels
	}
	if s.Strict {
		if err := zpl.ValidateBlocks(blocks); err != nil {
			return Plan{}, err
		}
	}
	return Plan{Path: path, Blocks: blocks}, nil
}

// Jobs returns the payloads a run in mode would send, in order.
func (s *Service) Jobs(plan Plan, mode Mode) []string {
	if len(plan.Blocks) == 0 {
		return nil
	}
	if mode == ModeTest {
		return plan.Blocks[:1]
	}
	if s.BatchSize <= 1 {
		return plan.Blocks
	}
	batches := zpl.Batch(plan.Blocks, s.BatchSize)
	jobs := make([]string, 0, len(batches))
	for _, batch := range batches {
		jobs = append(jobs, strings.Join(batch, ""))
	}
	return jobs
}

// Print reads req.Path, splits it into labels and sends them to req.Printer
// one job at a time. The first failing job ends the run.
func (s *Service) Print(ctx context.Context, req Request) (Result, error) {
	result := Result{Path: req.Path, Printer: req.Printer, Mode: req.Mode}
	if strings.TrimSpace(req.Printer) == "" {
		return result, ErrNoPrinter
	}
	if s.Sender == nil {
		return result, printer.ErrSpoolerUnavailable
	}

	plan, err := s.Preview(req.Path)
	if err != nil {
		return result, err
	}
	result.Labels = len(plan.Blocks)

	jobs := s.Jobs(plan, req.Mode)
	result.Jobs = len(jobs)
	result.RunID = uuid.NewString()

	log := s.logger().With(
		zap.String("run", result.RunID),
		zap.String("printer", req.Printer),
		zap.String("mode", req.Mode.String()),
	)
	log.Info("print run started",
		zap.String("path", req.Path),
		zap.Int("labels", result.Labels),
		zap.Int("jobs", result.Jobs),
	)

	perJob := 1
	if req.Mode == ModeAll && s.BatchSize > 1 {
		perJob = s.BatchSize
	}
	for i, job := range jobs {
		data, err := zpl.Encode(job)
		if err != nil {
			return result, &JobError{Index: i + 1, Total: len(jobs), Err: err}
		}
		if err := s.Sender.Send(ctx, req.Printer, data); err != nil {
			log.Warn("job failed", zap.Int("job", i+1), zap.Error(err))
			return result, &JobError{Index: i + 1, Total: len(jobs), Err: err}
		}
		result.Sent += min(perJob, result.Labels-i*perJob)
		log.Debug("job sent", zap.Int("job", i+1), zap.Int("bytes", len(data)))
	}
	log.Info("print run finished", zap.Int("sent", result.Sent))
	return result, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/zplpress/internal/config"
	"github.com/five82/zplpress/internal/labels"
	"github.com/five82/zplpress/internal/logging"
	"github.com/five82/zplpress/internal/prefs"
	"github.com/five82/zplpress/internal/printer"
	"github.com/five82/zplpress/internal/state"
	"github.com/five82/zplpress/internal/ui"
)

// Options configure the zplpress application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/zplpress/prefs.toml
	Verbose    bool
}

// PrintOptions describe one non-interactive print run.
type PrintOptions struct {
	Path      string
	Printer   string // empty falls back to the configured printer
	Mode      labels.Mode
	BatchSize int // overrides batch_size when positive
	DryRun    bool
}

// env is everything a command needs once the config has been read.
type env struct {
	config  config.Config
	logger  *zap.Logger
	lister  printer.Lister
	service *labels.Service
}

// setup loads the config and picks the sender for this host. The TUI logs
// to the configured log file; CLI commands log warnings to stderr.
func setup(opts Options, interactive bool) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	output, level := "stderr", "warn"
	if interactive {
		output, level = cfg.LogPath(), cfg.LogLevel
	}
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: "console", Output: output})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	sender, lister := printer.Detect(printer.Options{
		LPCommand:     cfg.LPCommand,
		LpstatCommand: cfg.LpstatCommand,
		Logger:        logger,
	})

	return &env{
		config: cfg,
		logger: logger,
		lister: lister,
		service: &labels.Service{
			Sender:    sender,
			BatchSize: cfg.BatchSize,
			Strict:    cfg.Strict,
			Logger:    logger,
		},
	}, nil
}

// Run boots the zplpress TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	e.logger.Info("zplpress started", zap.String("log", e.config.LogPath()))

	return ui.Run(ui.Options{
		Context:   ctx,
		Service:   e.service,
		Lister:    e.lister,
		Store:     &state.Store{},
		Config:    e.config,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
		Logger:    e.logger,
	})
}

// PrintFile prints a label file without the TUI and reports the outcome on w.
// The printer is resolved before the file is read.
func PrintFile(ctx context.Context, opts Options, po PrintOptions, w io.Writer) (labels.Result, error) {
	e, err := setup(opts, false)
	if err != nil {
		return labels.Result{}, err
	}
	defer func() { _ = e.logger.Sync() }()

	name := strings.TrimSpace(po.Printer)
	if name == "" {
		name = strings.TrimSpace(e.config.Printer)
	}
	if name == "" {
		return labels.Result{}, labels.ErrNoPrinter
	}
	if po.BatchSize > 0 {
		e.service.BatchSize = po.BatchSize
	}

	if po.DryRun {
		return dryRun(e.service, po, name, w)
	}

	result, err := e.service.Print(ctx, labels.Request{Path: po.Path, Printer: name, Mode: po.Mode})
	if err != nil {
		if result.Sent > 0 {
			_, _ = fmt.Fprintf(w, "%d of %d labels sent to %s before the failure.\n", result.Sent, result.Labels, name)
		}
		return result, err
	}
	_, _ = fmt.Fprintln(w, result.Summary())
	return result, nil
}

func dryRun(service *labels.Service, po PrintOptions, name string, w io.Writer) (labels.Result, error) {
	plan, err := service.Preview(po.Path)
	if err != nil {
		return labels.Result{}, err
	}
	jobs := service.Jobs(plan, po.Mode)
	result := labels.Result{
		Path:    po.Path,
		Printer: name,
		Mode:    po.Mode,
		Labels:  len(plan.Blocks),
		Jobs:    len(jobs),
	}
	_, _ = fmt.Fprintf(w, "%s: %d labels, %d jobs to %s (%s mode, nothing sent)\n",
		po.Path, result.Labels, result.Jobs, name, po.Mode)
	return result, nil
}

// ListPrinters writes the printers known to this host, one per line.
func ListPrinters(ctx context.Context, opts Options, w io.Writer) error {
	e, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	names, err := e.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("list printers: %w", err)
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(w, name)
	}
	return nil
}

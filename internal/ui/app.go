package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/zplpress/internal/config"
	"github.com/five82/zplpress/internal/labels"
	"github.com/five82/zplpress/internal/logtail"
	"github.com/five82/zplpress/internal/prefs"
	"github.com/five82/zplpress/internal/printer"
	"github.com/five82/zplpress/internal/state"
)

// Pane identifies the focused column.
type Pane int

const (
	PanePrinters Pane = iota
	PaneFiles
)

const activityLines = 200

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   *labels.Service
	Lister    printer.Lister
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
}

// notice is the modal shown after a print or a rejected action.
type notice struct {
	title string
	body  string
	err   bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	service   *labels.Service
	lister    printer.Lister
	store     *state.Store
	config    config.Config
	prefs     prefs.Prefs
	prefsPath string
	logger    *zap.Logger

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool
	focus  Pane

	printers    list.Model
	printerErr  error
	picker      filepicker.Model
	spinner     spinner.Model
	testMode    bool
	running     bool
	runningPath string

	notice       *notice
	showHelp     bool
	showActivity bool
	activity     []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(opts.Prefs.Theme)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	printers := list.New(nil, delegate, 0, 0)
	printers.Title = "Printers"
	printers.SetShowHelp(false)
	printers.SetShowStatusBar(false)
	printers.SetFilteringEnabled(false)
	printers.KeyMap.Quit.SetEnabled(false)
	printers.KeyMap.ForceQuit.SetEnabled(false)

	picker := filepicker.New()
	picker.AllowedTypes = []string{".zpl", ".txt"}
	picker.CurrentDirectory = startDirectory(opts.Prefs.Directory)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		service:   opts.Service,
		lister:    opts.Lister,
		store:     store,
		config:    opts.Config,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		printers:  printers,
		picker:    picker,
		spinner:   spin,
		testMode:  opts.Prefs.TestModeOr(opts.Config.TestMode),
	}
	m.applyTheme(theme)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadPrintersCmd(m.ctx, m.lister),
		m.picker.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(tea.WindowSizeMsg{Width: m.paneWidth(), Height: m.bodyHeight()})
		return m, cmd

	case printersMsg:
		m.setPrinters(msg.names, msg.err)
		return m, nil

	case printDoneMsg:
		m.finishPrint(msg)
		return m, nil

	case activityMsg:
		if msg.err != nil {
			m.activity = []string{"could not read log: " + msg.err.Error()}
		} else {
			m.activity = msg.lines
		}
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Directory listings and other internal filepicker messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.notice != nil {
		return m.renderNotice()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// A run in flight owns the screen until it reports back.
	if m.running {
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.notice != nil {
		m.notice = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.ToggleTest):
		m.testMode = !m.testMode
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.ReloadPrinters):
		return m, loadPrintersCmd(m.ctx, m.lister)
	case key.Matches(msg, m.keys.Activity):
		m.showActivity = !m.showActivity
		if m.showActivity {
			return m, loadActivityCmd(m.config.LogPath())
		}
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focus == PanePrinters {
			m.focus = PaneFiles
		} else {
			m.focus = PanePrinters
		}
		return m, nil
	}

	if m.focus == PanePrinters {
		var cmd tea.Cmd
		m.printers, cmd = m.printers.Update(msg)
		return m, cmd
	}

	// The activity log covers the file list; it gets no keys it cannot show.
	if m.showActivity {
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		next, printCmd := m.startPrint(path)
		return next, tea.Batch(cmd, printCmd)
	}
	return m, cmd
}

// SelectedPrinter returns the highlighted printer name, or "" when none.
func (m Model) SelectedPrinter() string {
	item, ok := m.printers.SelectedItem().(printerItem)
	if !ok {
		return ""
	}
	return string(item)
}

// TestMode reports whether the next run prints only the first label.
func (m Model) TestMode() bool {
	return m.testMode
}

func (m Model) mode() labels.Mode {
	if m.testMode {
		return labels.ModeTest
	}
	return labels.ModeAll
}

// startPrint validates the selection and launches the run. A missing printer
// is reported before the file is touched.
func (m Model) startPrint(path string) (Model, tea.Cmd) {
	name := m.SelectedPrinter()
	if name == "" {
		m.notice = &notice{title: "Error", body: "Please select a printer before printing.", err: true}
		return m, nil
	}
	if m.service == nil {
		m.notice = &notice{title: "Error", body: printer.ErrSpoolerUnavailable.Error(), err: true}
		return m, nil
	}

	m.running = true
	m.runningPath = path
	req := labels.Request{Path: path, Printer: name, Mode: m.mode()}
	return m, tea.Batch(m.spinner.Tick, m.printCmd(req))
}

func (m Model) printCmd(req labels.Request) tea.Cmd {
	ctx, service, store := m.ctx, m.service, m.store
	return func() tea.Msg {
		result, err := service.Print(ctx, req)
		store.Record(result, err)
		return printDoneMsg{req: req, result: result, err: err}
	}
}

func (m *Model) finishPrint(msg printDoneMsg) {
	m.running = false
	m.runningPath = ""

	if msg.err != nil {
		m.logger.Warn("print failed", zap.String("path", msg.req.Path), zap.Error(msg.err))
		m.notice = &notice{title: "Print failed", body: describeError(msg.err), err: true}
		return
	}

	m.notice = &notice{title: "Success", body: msg.result.Summary()}

	m.prefs.Directory = filepath.Dir(msg.req.Path)
	m.prefs.Printer = msg.req.Printer
	m.savePrefs()
}

func describeError(err error) string {
	switch {
	case errors.Is(err, printer.ErrSpoolerUnavailable):
		return "Printing is not available on this system: " + err.Error()
	default:
		return err.Error()
	}
}

func (m *Model) setPrinters(names []string, err error) {
	m.printerErr = err
	if fixed := strings.TrimSpace(m.config.Printer); fixed != "" && !contains(names, fixed) {
		names = append([]string{fixed}, names...)
	}

	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, printerItem(name))
	}
	current := m.SelectedPrinter()
	m.printers.SetItems(items)

	for _, want := range []string{current, m.config.Printer, m.prefs.Printer} {
		if idx := indexOf(names, strings.TrimSpace(want)); idx >= 0 {
			m.printers.Select(idx)
			return
		}
	}
	if len(names) > 0 {
		m.printers.Select(0)
	}
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	styles := t.Styles()
	m.printers.Styles.Title = styles.AccentText.Bold(true)
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.MutedText
}

func (m Model) savePrefs() {
	p := m.prefs
	p.Theme = m.theme.Name
	testMode := m.testMode
	p.TestMode = &testMode
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs", zap.Error(err))
	}
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.printers.SetSize(m.paneWidth(), m.bodyHeight()-1) // room for a lister error line
}

// paneWidth is the inner width of each column.
func (m Model) paneWidth() int {
	return max(m.width/2-4, 10)
}

// bodyHeight leaves room for the header, borders and footer.
func (m Model) bodyHeight() int {
	return max(m.height-6, 3)
}

func startDirectory(saved string) string {
	if saved != "" {
		if info, err := os.Stat(saved); err == nil && info.IsDir() {
			return saved
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func contains(values []string, want string) bool {
	return indexOf(values, want) >= 0
}

func indexOf(values []string, want string) int {
	if want == "" {
		return -1
	}
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

// printerItem adapts a printer name to the list component.
type printerItem string

func (p printerItem) FilterValue() string { return string(p) }
func (p printerItem) Title() string       { return string(p) }
func (p printerItem) Description() string {
	if printer.IsNetwork(string(p)) {
		return "network"
	}
	return ""
}

// Messages

type printersMsg struct {
	names []string
	err   error
}

type printDoneMsg struct {
	req    labels.Request
	result labels.Result
	err    error
}

type activityMsg struct {
	lines []string
	err   error
}

// Commands

func loadPrintersCmd(ctx context.Context, lister printer.Lister) tea.Cmd {
	return func() tea.Msg {
		if lister == nil {
			return printersMsg{}
		}
		names, err := lister.List(ctx)
		return printersMsg{names: names, err: err}
	}
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, activityLines)
		return activityMsg{lines: lines, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(New(opts), programOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazymesh/lazymesh/internal/clip"
	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/core"
	"github.com/lazymesh/lazymesh/internal/logging"
)

const (
	appTitle         = "LazySQLMesh"
	welcomeMessage   = "Welcome to LazySQLMesh!"
	defaultAuditFrom = "1 month ago"
	defaultAuditTo   = "today"
)

// notificationTTL is how long a transient notification stays visible. Var so
// tests can shorten it.
var notificationTTL = 4 * time.Second

const helpText = `Commands:
  q, quit          quit
  f, fetch         fetch environments
  p, plan [env]    plan (and apply) for the active or named environment
  r, run  [env]    run scheduled intervals
  a, audit         run audits
  d, diff          diff the active environment
  t, test          run unit tests
  c, check         check connection status
  :                list callable context methods
  :method [args]   call a context method
  !cmd             run a shell command (10s limit)
  ?                this help

Keys (environment pane):
  j/k or arrows    move    enter  select
  p/P plan active/prod     r/R    run active/prod
  a audits  d diff  t tests  c status  f fetch
  /  filter by name (enter keeps, esc clears)
  D toggle theme   tab    switch pane   ctrl+y copy log  q quit`

// focusArea marks which pane receives keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusEnvList
)

// Options wires the model's collaborators. Everything is passed in
// explicitly; the model owns no process-wide state.
type Options struct {
	Dispatcher         *Dispatcher
	Bridge             *control.Bridge
	Methods            *MethodTable
	Logger             *logging.Logger
	States             *StateManager
	Theme              Theme
	HistorySize        int
	DefaultEnvironment string
}

// Model is the root bubbletea model.
type Model struct {
	dispatcher *Dispatcher
	bridge     *control.Bridge
	router     *Router
	methods    *MethodTable
	logger     *logging.Logger
	states     *StateManager

	theme  Theme
	styles Styles

	terminal  *Terminal
	envList   *EnvList
	snapshots *SnapshotTable
	spinner   spinner.Model

	activeEnv   string
	focus       focusArea
	busy        int
	filtering   bool
	filterQuery string

	notification string
	notifyErr    bool
	notifyID     int

	width  int
	height int
	ready  bool
}

// New creates the root model.
func New(opts Options) *Model {
	styles := NewStyles(opts.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(opts.Theme.Primary)

	active := opts.DefaultEnvironment
	if active == "" {
		active = core.DefaultEnvironment
	}

	m := &Model{
		dispatcher: opts.Dispatcher,
		bridge:     opts.Bridge,
		router:     NewRouter(opts.Methods),
		methods:    opts.Methods,
		logger:     opts.Logger,
		states:     opts.States,
		theme:      opts.Theme,
		styles:     styles,
		terminal:   NewTerminal(styles, opts.HistorySize),
		envList:    NewEnvList(),
		snapshots:  NewSnapshotTable(opts.Theme),
		spinner:    sp,
		activeEnv:  active,
	}

	if opts.States != nil {
		if saved, err := opts.States.Load(); err == nil {
			if saved.ActiveEnvironment != "" {
				m.activeEnv = saved.ActiveEnvironment
			}
			if saved.Theme != "" && saved.Theme != opts.Theme.Name {
				m.applyTheme(ThemeByName(saved.Theme))
			}
		}
	}

	return m
}

// ActiveEnvironment returns the environment builtins target by default.
func (m *Model) ActiveEnvironment() string { return m.activeEnv }

// Init fetches the environment list and starts listening for prompts.
func (m *Model) Init() tea.Cmd {
	m.terminal.Append("", welcomeMessage)
	m.envList.StartLoading()
	m.busy++
	return tea.Batch(
		m.spinner.Tick,
		m.listenForPrompts(),
		m.dispatcher.FetchEnvironments(),
	)
}

// listenForPrompts blocks on the bridge's request channel; each received
// request is delivered as a message and the listener re-arms.
func (m *Model) listenForPrompts() tea.Cmd {
	ch := m.bridge.RequestCh()
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return PromptRequestMsg{Request: req}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case PromptRequestMsg:
		m.terminal.BeginPrompt(msg.Request)
		m.focus = focusInput
		return m, m.listenForPrompts()

	case EnvironmentsLoadedMsg:
		return m.updateEnvironments(msg)

	case FetchSupersededMsg:
		m.busy--
		return m, nil

	case EnvironmentDetailMsg:
		if msg.Err != nil {
			return m, m.notifyError("Failed to load environment: " + msg.Err.Error())
		}
		m.snapshots.SetEnvironment(msg.Environment)
		return m, nil

	case PlanDoneMsg:
		m.busy--
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil // superseded by a newer plan
			}
			return m, m.notifyError("Plan failed: " + msg.Err.Error())
		}
		// Exactly one refresh per successful plan.
		m.busy++
		m.envList.StartLoading()
		return m, tea.Batch(
			m.notify(fmt.Sprintf("Plan applied to %s", msg.Environment)),
			m.dispatcher.FetchEnvironments(),
		)

	case RunDoneMsg:
		m.busy--
		// Refresh happens regardless of outcome.
		m.busy++
		m.envList.StartLoading()
		cmds := []tea.Cmd{m.dispatcher.FetchEnvironments()}
		if msg.Err != nil {
			cmds = append(cmds, m.notifyError("Run failed: "+msg.Err.Error()))
		} else {
			cmds = append(cmds, m.notify(fmt.Sprintf("Intervals run for %s", msg.Environment)))
		}
		return m, tea.Batch(cmds...)

	case AuditDoneMsg:
		m.busy--
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil
			}
			return m, m.notifyError("Audit failed: " + msg.Err.Error())
		}
		return m, m.notify("Audits passed")

	case DiffDoneMsg:
		m.busy--
		if msg.Err != nil {
			return m, m.notifyError("Diff failed: " + msg.Err.Error())
		}
		return m, nil

	case TestsDoneMsg:
		m.busy--
		if msg.Err != nil {
			return m, m.notifyError("Unit tests failed: " + msg.Err.Error())
		}
		return m, m.notify("Unit tests passed")

	case StatusDoneMsg:
		m.busy--
		if msg.Err != nil {
			return m, m.notifyError("Status check failed: " + msg.Err.Error())
		}
		return m, nil

	case MethodDoneMsg:
		m.busy--
		if msg.Err != nil {
			m.terminal.Append("error", msg.Err.Error())
			return m, nil
		}
		if msg.Output != "" {
			m.terminal.Append("", msg.Output)
		}
		return m, nil

	case ShellDoneMsg:
		return m.updateShell(msg)

	case LogMsg:
		m.terminal.Append(msg.Level, msg.Message)
		return m, nil

	case NotificationExpiredMsg:
		if msg.ID == m.notifyID {
			m.notification = ""
		}
		return m, nil

	case ClipboardWrittenMsg:
		if msg.Err != nil {
			return m, m.notifyError("Copy failed: " + msg.Err.Error())
		}
		return m, m.notify("Log copied (" + msg.Method + ")")

	case uiStateSavedMsg:
		if msg.err != nil {
			m.logger.Debug("session state save failed", "error", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.terminal.Update(msg)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.bridge.CancelPending()
		return m, tea.Quit

	case "ctrl+y":
		text := m.terminal.Text()
		return m, func() tea.Msg {
			method, err := clip.WriteAll(text)
			return ClipboardWrittenMsg{Method: string(method), Err: err}
		}

	case "esc":
		if m.terminal.PendingPrompt() != nil {
			m.bridge.CancelPending()
			m.terminal.EndPrompt()
			m.terminal.Append("warn", "Prompt cancelled")
			return m, nil
		}
		if m.filtering || m.filterQuery != "" {
			m.clearFilter()
		}
		return m, nil

	case "tab":
		if m.terminal.PendingPrompt() == nil {
			if m.focus == focusInput {
				m.focus = focusEnvList
			} else {
				m.focus = focusInput
			}
		}
		return m, nil
	}

	if m.focus == focusEnvList && m.terminal.PendingPrompt() == nil {
		return m.updateEnvListKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m, m.handleSubmit()
	case "up":
		if m.terminal.PendingPrompt() == nil {
			m.terminal.HistoryPrev()
		}
		return m, nil
	case "down":
		if m.terminal.PendingPrompt() == nil {
			m.terminal.HistoryNext()
		}
		return m, nil
	}

	return m, m.terminal.Update(msg)
}

// updateEnvListKey handles the pane-level shortcuts. These only fire when
// the command input is not focused, so typing never triggers actions.
func (m *Model) updateEnvListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilterKey(msg)
	}

	switch msg.String() {
	case "/":
		m.filtering = true
		return m, nil
	case "up", "k":
		m.envList.MoveUp()
	case "down", "j":
		m.envList.MoveDown()
	case "enter":
		if env, ok := m.envList.Select(); ok {
			m.setActiveEnvironment(env.Name)
			return m, m.dispatcher.LoadEnvironment(env.Name)
		}
	case "q":
		m.bridge.CancelPending()
		return m, tea.Quit
	case "f":
		m.envList.StartLoading()
		m.busy++
		return m, m.dispatcher.FetchEnvironments()
	case "p":
		m.busy++
		return m, m.dispatcher.Plan(m.activeEnv)
	case "P":
		m.busy++
		return m, m.dispatcher.Plan(core.DefaultEnvironment)
	case "r":
		m.busy++
		return m, m.dispatcher.Run(m.activeEnv)
	case "R":
		m.busy++
		return m, m.dispatcher.Run(core.DefaultEnvironment)
	case "a":
		m.busy++
		return m, m.dispatcher.Audit(defaultAuditFrom, defaultAuditTo)
	case "d":
		m.busy++
		return m, m.dispatcher.Diff(m.activeEnv)
	case "t":
		m.busy++
		return m, m.dispatcher.RunTests()
	case "c":
		m.busy++
		return m, m.dispatcher.Status()
	case "D":
		if m.theme.Name == "dark" {
			m.applyTheme(LightTheme)
		} else {
			m.applyTheme(DarkTheme)
		}
		return m, m.saveState()
	}
	return m, nil
}

// updateFilterKey narrows the environment list while the filter is active.
// Arrows still move the highlight so a match can be picked without leaving
// the mode.
func (m *Model) updateFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Keep the narrowed list, just stop editing the query.
		m.filtering = false
		return m, nil
	case "backspace":
		if m.filterQuery != "" {
			runes := []rune(m.filterQuery)
			m.filterQuery = string(runes[:len(runes)-1])
			m.envList.Filter(m.filterQuery)
		}
		return m, nil
	case "up":
		m.envList.MoveUp()
		return m, nil
	case "down":
		m.envList.MoveDown()
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.filterQuery += string(msg.Runes)
		m.envList.Filter(m.filterQuery)
	}
	return m, nil
}

func (m *Model) clearFilter() {
	m.filtering = false
	m.filterQuery = ""
	m.envList.Filter("")
}

// handleSubmit routes the submitted line. Routing failures ring the bell,
// restore the input, and log the error; the event loop never sees them.
func (m *Model) handleSubmit() tea.Cmd {
	pending := m.terminal.PendingPrompt()
	line := m.terminal.Submit()

	action, err := m.router.Route(line, pending != nil)
	if err != nil {
		Bell()
		m.terminal.Restore(line)
		m.terminal.Append("error", err.Error())
		return nil
	}

	switch a := action.(type) {
	case NoOp:
		return nil

	case PromptAnswer:
		// Prompt answers never enter the history.
		id := pending.ID
		m.terminal.EndPrompt()
		if err := m.bridge.Resolve(id, a.Line); err != nil {
			m.terminal.Append("error", err.Error())
		}
		return nil

	case ShowHelp:
		m.terminal.RecordHistory(line)
		m.terminal.Append("", helpText)
		return nil

	case ListMethods:
		m.terminal.RecordHistory(line)
		m.terminal.Append("", m.methods.Listing())
		return nil

	case MethodCall:
		m.terminal.RecordHistory(line)
		m.busy++
		return m.dispatcher.CallMethod(m.methods, a)

	case ShellExec:
		m.terminal.RecordHistory(line)
		m.busy++
		return m.dispatcher.Shell(a.Command)

	case Builtin:
		m.terminal.RecordHistory(line)
		return m.runBuiltin(a)
	}

	return nil
}

func (m *Model) runBuiltin(b Builtin) tea.Cmd {
	env := b.Environment
	if env == "" {
		env = m.activeEnv
	}

	switch b.Kind {
	case BuiltinQuit:
		m.bridge.CancelPending()
		return tea.Quit
	case BuiltinFetch:
		m.envList.StartLoading()
		m.busy++
		return m.dispatcher.FetchEnvironments()
	case BuiltinPlan:
		m.busy++
		return m.dispatcher.Plan(env)
	case BuiltinRun:
		m.busy++
		return m.dispatcher.Run(env)
	case BuiltinAudit:
		m.busy++
		return m.dispatcher.Audit(defaultAuditFrom, defaultAuditTo)
	case BuiltinDiff:
		m.busy++
		return m.dispatcher.Diff(env)
	case BuiltinTest:
		m.busy++
		return m.dispatcher.RunTests()
	case BuiltinCheck:
		m.busy++
		return m.dispatcher.Status()
	}
	return nil
}

func (m *Model) updateEnvironments(msg EnvironmentsLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if msg.Err != nil {
		m.envList.SetEnvironments(nil)
		return m, m.notifyError("Failed to fetch environments: " + msg.Err.Error())
	}

	m.envList.SetEnvironments(msg.Environments)
	m.snapshots.Clear()
	m.filtering = false
	m.filterQuery = ""

	cmds := []tea.Cmd{
		m.notify(fmt.Sprintf("Loaded %d environments", len(msg.Environments))),
	}
	// Auto-select the first environment so the detail pane is never empty.
	if env, ok := m.envList.Select(); ok {
		m.setActiveEnvironment(env.Name)
		cmds = append(cmds, m.dispatcher.LoadEnvironment(env.Name))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateShell(msg ShellDoneMsg) (tea.Model, tea.Cmd) {
	m.busy--
	if msg.Stdout != "" {
		m.terminal.Append("", msg.Stdout)
	}
	if msg.Stderr != "" {
		m.terminal.Append("error", msg.Stderr)
	}
	if msg.TimedOut {
		return m, m.notifyError(fmt.Sprintf("Shell command killed after timeout: %s", msg.Command))
	}
	if msg.Err != nil {
		return m, m.notifyError("Shell command failed: " + msg.Err.Error())
	}
	return m, nil
}

func (m *Model) setActiveEnvironment(name string) {
	m.activeEnv = name
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.styles = NewStyles(t)
	m.terminal.SetStyles(m.styles)
	m.snapshots = NewSnapshotTable(t)
}

// saveState persists the session off the event loop.
func (m *Model) saveState() tea.Cmd {
	if m.states == nil {
		return nil
	}
	state := UIState{ActiveEnvironment: m.activeEnv, Theme: m.theme.Name}
	return func() tea.Msg {
		return uiStateSavedMsg{err: m.states.Save(state)}
	}
}

func (m *Model) notify(text string) tea.Cmd {
	m.notification = text
	m.notifyErr = false
	m.notifyID++
	return expireNotification(m.notifyID, notificationTTL)
}

func (m *Model) notifyError(text string) tea.Cmd {
	m.notification = text
	m.notifyErr = true
	m.notifyID++
	return expireNotification(m.notifyID, notificationTTL)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	sideWidth := width / 3
	if sideWidth > 44 {
		sideWidth = 44
	}
	topHeight := height / 2
	if topHeight < 8 {
		topHeight = 8
	}

	m.snapshots.SetSize(width-sideWidth-6, topHeight-2)
	m.terminal.SetSize(width-2, height-topHeight-4)
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "starting…"
	}

	header := m.styles.Header.Render(appTitle) +
		m.styles.Subtle.Render("  env: "+m.activeEnv)
	if m.busy > 0 {
		header += "  " + m.spinner.View()
	}

	sideWidth := m.width / 3
	if sideWidth > 44 {
		sideWidth = 44
	}
	topHeight := m.height / 2
	if topHeight < 8 {
		topHeight = 8
	}

	envPane := m.paneStyle(focusEnvList).
		Width(sideWidth - 2).
		Height(topHeight - 2).
		Render(m.envList.View(m.styles, topHeight-3))

	detailPane := m.styles.Pane.
		Width(m.width - sideWidth - 4).
		Height(topHeight - 2).
		Render(m.snapshots.View())

	top := lipgloss.JoinHorizontal(lipgloss.Top, envPane, detailPane)

	terminalPane := m.paneStyle(focusInput).
		Width(m.width - 4).
		Render(m.terminal.View())

	footer := m.footerView()

	return strings.Join([]string{header, top, terminalPane, footer}, "\n")
}

func (m *Model) paneStyle(area focusArea) lipgloss.Style {
	if m.focus == area {
		return m.styles.FocusedPane
	}
	return m.styles.Pane
}

func (m *Model) footerView() string {
	if m.notification != "" {
		if m.notifyErr {
			return m.styles.NotifyError.Render(m.notification)
		}
		return m.styles.Notification.Render(m.notification)
	}
	if m.terminal.PendingPrompt() != nil {
		return m.styles.Prompt.Render("awaiting response (esc cancels)")
	}
	if m.filtering {
		return m.styles.Footer.Render("filter: type to narrow · enter keep · esc clear")
	}
	return m.styles.Footer.Render("tab switch pane · ? help · q quit")
}

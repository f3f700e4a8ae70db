package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/display"
)

const inputBuffer = 16

// TUIModel represents the Bubble Tea model for the blackjack table
type TUIModel struct {
	logger *log.Logger
	styles *display.Styles

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	prompt      string
	status      Status
	inputs      chan string
	quitSignal  chan struct{}
	done        chan struct{}
	doneOnce    sync.Once
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string
}

// Status is the table summary shown in the sidebar
type Status struct {
	Round      int
	Chips      int
	Bet        int
	ShoeCount  int
	Wins       int
	Pushes     int
	Losses     int
	PlayerHand string
	DealerHand string
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// LogMsg appends lines to the game log
type LogMsg struct {
	Lines []string
}

// PromptMsg replaces the question shown above the input
type PromptMsg struct {
	Prompt string
}

// StatusMsg replaces the sidebar status
type StatusMsg struct {
	Status Status
}

// NewTUIModel creates a new TUI model
func NewTUIModel(styles *display.Styles, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(styles, logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(styles *display.Styles, logger *log.Logger, testMode bool) *TUIModel {
	// Will be properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Waiting for the dealer..."
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		logger:      logger.WithPrefix("tui"),
		styles:      styles,
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		inputs:      make(chan string, inputBuffer),
		quitSignal:  make(chan struct{}, 1),
		done:        make(chan struct{}),
		focusedPane: 1, // Start with input focused
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quit()
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case LogMsg:
		for _, line := range msg.Lines {
			m.AddLogEntry(line)
		}
		return m, nil

	case PromptMsg:
		m.prompt = msg.Prompt
		return m, nil

	case StatusMsg:
		m.status = msg.Status
		return m, nil

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.submit(m.actionInput.Value())
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1) // Account for borders and action pane

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// On first proper sizing, reset to top to avoid starting scrolled down
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)

	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane creates the sidebar content
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(m.styles.Header.Render("Blackjack"))
	content.WriteString("\n\n")
	content.WriteString(m.styles.HandInfo.Render(fmt.Sprintf("Chips: %d", m.status.Chips)))
	content.WriteString("\n")
	if m.status.Bet > 0 {
		content.WriteString(m.styles.Warning.Render(fmt.Sprintf("Bet: %d", m.status.Bet)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if m.status.DealerHand != "" {
		content.WriteString("Dealer: " + m.status.DealerHand + "\n")
	}
	if m.status.PlayerHand != "" {
		content.WriteString("You:    " + m.status.PlayerHand + "\n")
	}
	content.WriteString("\n")

	content.WriteString(m.styles.Info.Render(fmt.Sprintf("Round %d • shoe %d", m.status.Round, m.status.ShoeCount)))
	content.WriteString("\n")
	content.WriteString(m.styles.Info.Render(fmt.Sprintf("W %d  P %d  L %d", m.status.Wins, m.status.Pushes, m.status.Losses)))

	return content.String()
}

// renderActionPane renders the prompt and input pane
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if m.prompt == "" {
		content.WriteString(m.styles.HandInfo.Render("Waiting..."))
		m.actionInput.Placeholder = "Waiting for the dealer..."
	} else {
		content.WriteString(m.styles.HandInfo.Render(m.prompt))
		m.actionInput.Placeholder = "Type your answer, 'quit' to leave"
	}
	content.WriteString("\n")

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(m.styles.Info.Render(help))

	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Prompt returns the question currently shown above the input
func (m *TUIModel) Prompt() string {
	return m.prompt
}

// Status returns the sidebar status
func (m *TUIModel) Status() Status {
	return m.status
}

// submit hands a line of input to whoever is waiting for it. Input typed
// while the buffer is full is dropped.
func (m *TUIModel) submit(input string) {
	select {
	case m.inputs <- strings.TrimSpace(input):
	default:
		m.logger.Warn("Dropped input, nobody is waiting for it", "input", input)
	}
}

func (m *TUIModel) quit() {
	m.quitting = true
	m.doneOnce.Do(func() { close(m.done) })
}

// WaitForInput blocks until a line is submitted. It returns false once the
// TUI has quit.
func (m *TUIModel) WaitForInput() (string, bool) {
	select {
	case input := <-m.inputs:
		return input, true
	case <-m.done:
		return "", false
	}
}

// Done is closed when the TUI quits
func (m *TUIModel) Done() <-chan struct{} {
	return m.done
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- struct{}{}:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectInput programmatically submits a line (test mode only)
func (m *TUIModel) InjectInput(input string) error {
	if !m.testMode {
		return fmt.Errorf("input injection only available in test mode")
	}

	select {
	case m.inputs <- input:
		return nil
	default:
		return fmt.Errorf("input channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/answerer"
	"docqa/internal/domain"
	"docqa/internal/history"
	"docqa/internal/language"
	"docqa/internal/session"
)

// Model is the Bubble Tea model for the chat interface. Questions are
// routed through the language router against the currently active
// session; "reload <files...>" re-activates with a new document set.
type Model struct {
	manager *session.Manager
	router  *language.Router
	log     *history.Log
	opts    language.Options

	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates a new TUI model instance.
func New(manager *session.Manager, router *language.Router, log *history.Log, opts language.Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or: reload file1 file2 ..."
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		manager:  manager,
		router:   router,
		log:      log,
		opts:     opts,
		input:    ti,
		viewport: vp,
		status:   "Ready. Type a question and press Enter.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, query frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderChat())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.SetValue("")

	if rest, ok := strings.CutPrefix(line, "reload "); ok {
		paths := strings.Fields(rest)
		if _, err := m.manager.Activate(context.Background(), paths); err != nil {
			m.status = "Activation failed: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Reloaded %d document(s).", len(paths))
		m.viewport.SetContent(m.renderChat())
		return m, nil
	}

	sess := m.manager.Current()
	if sess == nil {
		m.status = domain.ErrNoActiveSession.Error()
		return m, nil
	}
	ex, err := m.router.Ask(context.Background(), sess, line, m.opts)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}
	m.log.Append(domain.ChatEntry{
		Question:   ex.Question,
		Answer:     ex.Answer,
		InputLang:  ex.InputLang,
		OutputLang: ex.OutputLang,
		AudioPath:  ex.AudioPath,
		AskedAt:    ex.AskedAt,
	})
	m.viewport.SetContent(m.renderChat())
	if ex.Answer == answerer.Farewell {
		m.status = ex.Answer
		return m, tea.Quit
	}
	if len(ex.Warnings) > 0 {
		m.status = "Answered with warnings: " + strings.Join(ex.Warnings, "; ")
	} else {
		m.status = fmt.Sprintf("Answered (%s -> %s).", ex.InputLang, ex.OutputLang)
	}
	return m, nil
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Q&A")
	summary := ""
	if sess := m.manager.Current(); sess != nil {
		summary = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(sess.Summary)
	}
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

// renderChat shows the history most recent first, with language and
// audio annotations.
func (m Model) renderChat() string {
	entries := m.log.Entries()
	if len(entries) == 0 {
		return "No questions asked yet."
	}
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(separatorStyle.Render("---") + "\n")
		}
		sb.WriteString(questionStyle.Render("Q: "+e.Question) + "\n")
		sb.WriteString("A: " + e.Answer + "\n")
		sb.WriteString(metaStyle.Render(fmt.Sprintf("[%s -> %s]", e.InputLang, e.OutputLang)))
		if e.AudioPath != "" {
			sb.WriteString(metaStyle.Render("  audio: " + e.AudioPath))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

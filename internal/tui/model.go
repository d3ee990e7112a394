package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/service"
)

// contextPreviewChars bounds how much of the retrieved context is shown
// alongside the answer.
const contextPreviewChars = 200

// QAPort is the TUI-facing subset of the question-answering service.
type QAPort interface {
	Ask(ctx context.Context, sess *service.Session, question string) (*service.Answer, error)
}

// Model is the Bubble Tea model for the question-answering session.
type Model struct {
	svc      QAPort
	session  *service.Session
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	status   string
	waiting  bool
	ready    bool
}

// answerMsg carries the result of an asynchronous Ask call.
type answerMsg struct {
	question string
	answer   *service.Answer
	err      error
}

// New creates the session TUI over a loaded document.
func New(svc QAPort, sess *service.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(0, 0)
	vp.SetContent("No answer yet.")

	return Model{
		svc:      svc,
		session:  sess,
		input:    ti,
		viewport: vp,
		spin:     sp,
		status:   fmt.Sprintf("Document loaded: split into %d chunks with overlap.", sess.ChunkCount()),
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, spinner, and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				m.status = "Please enter a question."
				return m, nil
			}
			m.waiting = true
			m.status = "Generating answer..."
			return m, tea.Batch(m.spin.Tick, m.askCmd(question))
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Answer for %q", msg.question)
		m.viewport.SetContent(renderAnswer(msg.answer))
		m.input.SetValue("")
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the header, summary, answer pane, input, and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Document QA — " + m.session.Document.Name)
	summary := summaryStyle.Render(m.session.Summary)
	answers := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	if m.waiting {
		status = m.spin.View() + " " + status
	}
	return header + "\n" + summary + "\n" + answers + "\n" + input + "\n" + status
}

func (m Model) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := m.svc.Ask(context.Background(), m.session, question)
		return answerMsg{question: question, answer: ans, err: err}
	}
}

func renderAnswer(ans *service.Answer) string {
	preview := []rune(ans.Context)
	suffix := ""
	if len(preview) > contextPreviewChars {
		preview = preview[:contextPreviewChars]
		suffix = "..."
	}
	return answerLabelStyle.Render("Answer: ") + ans.Text +
		"\n\n" + contextStyle.Render("Context: "+string(preview)+suffix)
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	summaryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	contextStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	answerLabelStyle = lipgloss.NewStyle().Bold(true)
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

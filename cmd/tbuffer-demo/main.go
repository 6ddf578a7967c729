// Command tbuffer-demo is a small terminal program exercising the buffer
// engine: it loads an optional file into the editor, renders it with
// bubbletea, and writes the result back out on save.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cedartext/buffer/internal/debuglog"
	"github.com/cedartext/buffer/internal/hostbuffer"
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
	modeStyle = lipgloss.NewStyle().Bold(true)
)

// keyMap drives both dispatch (key.Matches) and the help.Model footer, so
// the two never drift out of sync.
type keyMap struct {
	Save   key.Binding
	Editor key.Binding
	Goto   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Editor, k.Goto, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Editor: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit in $EDITOR")),
	Goto:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "go to line")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type model struct {
	adapter  *hostbuffer.Adapter
	help     help.Model
	path     string
	width    int
	height   int
	err      error
	quitting bool

	gotoActive bool
	gotoInput  textinput.Model
}

func newModel(path, initial string) *model {
	gi := textinput.New()
	gi.Placeholder = "line number"
	gi.CharLimit = 8
	gi.Width = 12
	return &model{
		adapter:   hostbuffer.NewAdapter(initial, 80, 24),
		help:      help.New(),
		path:      path,
		gotoInput: gi,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

type externalEditorDoneMsg struct{ err error }

// externalEditorCmd writes the buffer to a temp file and hands a tea.Cmd
// back to Update that, when run, suspends the program, opens $VISUAL (or
// $EDITOR, or vi) on that file, and reloads it on exit.
func (m *model) externalEditorCmd() tea.Cmd {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	f, err := os.CreateTemp("", "tbuffer-demo-*.txt")
	if err != nil {
		return func() tea.Msg { return externalEditorDoneMsg{err} }
	}
	tmpPath := f.Name()
	if _, err := f.WriteString(m.adapter.Text()); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return func() tea.Msg { return externalEditorDoneMsg{err} }
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return func() tea.Msg { return externalEditorDoneMsg{err} }
	}

	c := exec.Command(editor, tmpPath)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		defer os.Remove(tmpPath)
		if err != nil {
			return externalEditorDoneMsg{err}
		}
		content, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return externalEditorDoneMsg{readErr}
		}
		m.adapter.SetText(string(content))
		return externalEditorDoneMsg{nil}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		innerW, innerH := m.editorSize()
		m.adapter.SetSize(innerW, innerH)
		return m, nil

	case externalEditorDoneMsg:
		m.err = msg.err
		return m, nil

	case saveDoneMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.gotoActive {
			return m.updateGoto(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Save):
			return m, m.save
		case key.Matches(msg, keys.Editor):
			return m, m.externalEditorCmd()
		case key.Matches(msg, keys.Goto):
			m.gotoActive = true
			m.gotoInput.SetValue("")
			m.gotoInput.Focus()
			return m, textinput.Blink
		}
		if event, ok := bridgeKeyMsg(msg); ok {
			m.adapter.HandleEvent(event)
		}
		return m, nil
	}
	return m, nil
}

// updateGoto drives the inline go-to-line prompt: Enter jumps the adapter's
// cursor to the typed line (1-based, clamped by Adapter.GoToLine), Esc
// cancels, anything else is forwarded to the textinput like a normal field.
func (m *model) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if n, err := strconv.Atoi(m.gotoInput.Value()); err == nil {
			m.adapter.GoToLine(n - 1)
		}
		m.gotoActive = false
		m.gotoInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.gotoActive = false
		m.gotoInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.gotoInput, cmd = m.gotoInput.Update(msg)
		return m, cmd
	}
}

type saveDoneMsg struct{ err error }

func (m *model) save() tea.Msg {
	if m.path == "" {
		return saveDoneMsg{fmt.Errorf("no file path given; pass one as an argument")}
	}
	return saveDoneMsg{os.WriteFile(m.path, []byte(m.adapter.Text()), 0o644)}
}

func (m *model) editorSize() (int, int) {
	w := m.width - 2
	h := m.height - 3
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	innerW, _ := m.editorSize()

	m.adapter.ScrollToCursor()
	lines := m.adapter.VisibleLines()
	body := ""
	for i, line := range lines {
		if i > 0 {
			body += "\n"
		}
		body += line
	}

	mode := "INSERT"
	if m.adapter.Mode() == hostbuffer.ModeNormal {
		mode = "NORMAL"
	}
	status := fmt.Sprintf("%s  %s", modeStyle.Render(mode), m.path)
	if m.gotoActive {
		status = fmt.Sprintf("go to line: %s", m.gotoInput.View())
	} else if m.err != nil {
		status = fmt.Sprintf("%s  error: %v", status, m.err)
	}

	editor := borderStyle.Width(innerW).Render(body)
	return editor + "\n" + status + "  " + m.help.View(keys)
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	debuglog.Enabled = *debug

	path := ""
	initial := ""
	if args := flag.Args(); len(args) > 0 {
		path = args[0]
		if content, err := os.ReadFile(path); err == nil {
			initial = string(content)
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "tbuffer-demo: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(newModel(path, initial), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tbuffer-demo: %v\n", err)
		os.Exit(1)
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"multi-image-viewer/internal/session"
)

type inputMode int

const (
	modeNone inputMode = iota
	modeJump
	modeRule
	modeAdd
	modeRemove
)

// RefreshMsg tells the model that the session was rebuilt outside of it,
// for example by the folder watcher.
type RefreshMsg struct {
	Err error
}

// FoldersChangedFunc is called after the folder list is edited from the
// viewer.
type FoldersChangedFunc func(folders []string)

// screen collects what the controller renders and reports, and answers
// the rule prompt with the text typed into the input line.
type screen struct {
	state   session.State
	notice  *session.Notice
	pending string
}

func (s *screen) Render(state session.State) error {
	s.state = state
	return nil
}

func (s *screen) Notify(n session.Notice) {
	s.notice = &n
}

func (s *screen) PromptForRule(string) (string, bool, error) {
	return s.pending, true, nil
}

// Model is the bubbletea model of the terminal viewer.
type Model struct {
	controller *session.Controller
	screen     *screen
	onFolders  FoldersChangedFunc

	mode     inputMode
	input    textinput.Model
	width    int
	quitting bool
}

// New creates a viewer over s. The first frame shows the session as it is;
// callers that want a fresh index call Session.Rebuild first.
func New(s *session.Session, onFolders FoldersChangedFunc) Model {
	sc := &screen{state: s.Snapshot()}
	input := textinput.New()
	input.CharLimit = 4096

	return Model{
		controller: session.NewController(s, nil, sc, sc, sc),
		screen:     sc,
		onFolders:  onFolders,
		input:      input,
		width:      80,
	}
}

// WithNotice returns a copy of m that starts with n on the notice line.
func (m Model) WithNotice(n *session.Notice) Model {
	m.screen.notice = n
	return m
}

// State returns the state currently on screen.
func (m Model) State() session.State {
	return m.screen.state
}

// Notice returns the notice currently on screen, or nil.
func (m Model) Notice() *session.Notice {
	return m.screen.notice
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case RefreshMsg:
		m.screen.state = m.session().Snapshot()
		if msg.Err != nil {
			m.screen.notice = session.NoticeFor(msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNone {
			return m.handleInputKeys(msg)
		}
		return m.handleViewKeys(msg)
	}
	return m, nil
}

func (m Model) session() *session.Session {
	return m.controller.Session()
}

func (m Model) handleViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "right", "l", "n":
		m.screen.notice = nil
		_ = m.controller.Next()

	case "left", "h", "p":
		m.screen.notice = nil
		_ = m.controller.Prev()

	case "R":
		m.screen.notice = nil
		m.rebuild()

	case "g":
		return m.startInput(modeJump, "Go to position: ", "")

	case "r":
		return m.startInput(modeRule, "Key pattern: ", m.session().Rule().Pattern())

	case "a":
		return m.startInput(modeAdd, "Add folder: ", "")

	case "x":
		return m.startInput(modeRemove, "Remove folder: ", "")
	}
	return m, nil
}

func (m Model) startInput(mode inputMode, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.endInput()
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		mode, value := m.mode, m.input.Value()
		m = m.endInput()
		m.screen.notice = nil
		m.submit(mode, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) endInput() Model {
	m.mode = modeNone
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m Model) submit(mode inputMode, value string) {
	switch mode {
	case modeJump:
		_ = m.controller.Jump(value)

	case modeRule:
		m.screen.pending = value
		_ = m.controller.EditRule()
		m.screen.state = m.session().Snapshot()

	case modeAdd:
		path := strings.TrimSpace(value)
		if path == "" {
			return
		}
		if _, err := m.session().AddFolder(path); err != nil {
			m.screen.notice = session.NoticeFor(err)
			return
		}
		m.foldersChanged()
		m.rebuild()

	case modeRemove:
		path := strings.TrimSpace(value)
		if path == "" {
			return
		}
		if !m.session().RemoveFolder(path) {
			m.screen.notice = &session.Notice{Level: session.LevelWarning, Message: "Folder not selected: " + path}
			return
		}
		m.foldersChanged()
		m.rebuild()
	}
}

// rebuild recomputes the index and always refreshes the screen, so a
// failed rebuild still shows the stale marker next to the old index.
func (m Model) rebuild() {
	_ = m.controller.Show()
	m.screen.state = m.session().Snapshot()
}

func (m Model) foldersChanged() {
	if m.onFolders != nil {
		m.onFolders(m.session().Folders())
	}
}

package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"keyenv/internal/app"
	core "keyenv/internal/core"
	"keyenv/internal/launcher"
)

type mode int

const (
	modeEdit mode = iota
	modeConfirmEmpty
	modeLaunching
)

type model struct {
	svc   *app.Service
	descs []core.Descriptor

	inputs []textinput.Model
	active int // index into descs
	reveal bool

	m mode
	// launch after the pending confirmation succeeds
	launchAfterSave bool
	launchDelay     time.Duration

	status    string
	statusErr bool
	width     int
	height    int
}

// quitMsg closes the form after a successful launch.
type quitMsg struct{}

func newModel(svc *app.Service, launchDelay time.Duration) model {
	m := model{svc: svc, descs: svc.Descriptors, launchDelay: launchDelay}
	m.inputs = make([]textinput.Model, len(m.descs))
	for i, d := range m.descs {
		in := textinput.New()
		in.Placeholder = d.Placeholder
		in.Prompt = ""
		in.CharLimit = 0 // unlimited; pasted keys are kept whole
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
		m.inputs[i] = in
	}
	m.reload()
	return m
}

// reload fills every field from the env file.
func (m *model) reload() {
	form, err := m.svc.Form()
	for i, d := range m.descs {
		m.inputs[i].SetValue(form.Get(d.ID))
		m.inputs[i].CursorEnd()
	}
	m.focus(m.active)
	if err != nil {
		m.setErr("read failed, starting empty: " + err.Error())
		return
	}
	m.setOK("Loaded " + m.svc.Path)
}

// formState snapshots the inputs into the value handed to the engine.
func (m model) formState() core.FormState {
	f := core.NewFormState()
	for i, d := range m.descs {
		f.Set(d.ID, m.inputs[i].Value())
	}
	return f
}

func (m *model) focus(i int) {
	if i < 0 || i >= len(m.inputs) {
		i = 0
	}
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.active = i
	m.inputs[i].Focus()
}

func (m *model) focusProvider(id core.ProviderID) {
	for i, d := range m.descs {
		if d.ID == id {
			m.focus(i)
			return
		}
	}
}

func (m *model) setOK(s string)  { m.status, m.statusErr = s, false }
func (m *model) setErr(s string) { m.status, m.statusErr = s, true }

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case quitMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch m.m {
		case modeEdit:
			return m.updateEditKey(msg)
		case modeConfirmEmpty:
			return m.updateConfirmKey(msg)
		case modeLaunching:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	return m, nil
}

func (m model) updateEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		m.focus((m.active - 1 + len(m.inputs)) % len(m.inputs))
	case "down", "tab":
		m.focus((m.active + 1) % len(m.inputs))
	case "ctrl+u":
		m.inputs[m.active].SetValue("")
	case "ctrl+e":
		m.reveal = !m.reveal
		for i := range m.inputs {
			if m.reveal {
				m.inputs[i].EchoMode = textinput.EchoNormal
			} else {
				m.inputs[i].EchoMode = textinput.EchoPassword
			}
		}
	case "ctrl+r":
		m.reload()
	case "ctrl+s":
		return m.save(false, false)
	case "ctrl+l", "enter":
		return m.save(false, true)
	case "esc", "ctrl+c":
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.m = modeEdit
		return m.save(true, m.launchAfterSave)
	case "n", "N", "esc":
		m.m = modeEdit
		m.launchAfterSave = false
		m.setOK("save cancelled")
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// save runs validate -> reconcile -> write and, when launch is set, starts the script.
func (m model) save(confirmed, launch bool) (tea.Model, tea.Cmd) {
	res, err := m.svc.Save(m.formState(), confirmed)
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		m.focusProvider(verr.Provider)
		m.setErr(verr.Message)
		return m, nil
	case errors.Is(err, core.ErrConfirmationRequired):
		m.m = modeConfirmEmpty
		m.launchAfterSave = launch
		m.setOK("no keys left, confirm to save an empty file")
		return m, nil
	case err != nil:
		m.setErr("save failed: " + err.Error())
		return m, nil
	}
	m.launchAfterSave = false

	saved := "saved"
	if !res.Changed() {
		saved = "saved (no change)"
	}
	if !launch {
		m.setOK(fmt.Sprintf("%s to %s", saved, m.svc.Path))
		return m, nil
	}

	if err := m.svc.Launch(res.Mapping); err != nil {
		if errors.Is(err, launcher.ErrScriptNotFound) {
			m.setErr(fmt.Sprintf("%s, but startup script not found: %s", saved, m.svc.Launcher.Script))
		} else {
			m.setErr(saved + ", but launch failed: " + err.Error())
		}
		return m, nil
	}
	m.m = modeLaunching
	m.setOK(saved + ", launched " + m.svc.Launcher.Script)
	return m, tea.Tick(m.launchDelay, func(time.Time) tea.Msg { return quitMsg{} })
}

// Run starts the TUI program.
func Run(svc *app.Service, launchDelay time.Duration) error {
	p := tea.NewProgram(newModel(svc, launchDelay), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/render"
	"github.com/san-kum/algoviz/internal/session"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const (
	minSpeed = 0.25
	maxSpeed = 16
)

type state int

const (
	stateMenu state = iota
	stateConfig
	statePlay
)

type model struct {
	state      state
	cursor     int
	algorithms []generator.Algorithm
	cfg        *config.Config
	log        *slog.Logger

	vis     *session.Visualization
	sched   *player.Scheduler
	presets []string
	preset  int

	field   int
	editing bool
	editBuf string
	err     string

	width  int
	height int
}

// NewApp returns the interactive player. cfg supplies the theme, base
// interval and visualizer options; the TUI always allows input edits.
func NewApp(reg *generator.Registry, cfg *config.Config, log *slog.Logger) *model {
	return &model{
		state:      stateMenu,
		algorithms: reg.List(),
		cfg:        cfg,
		log:        log,
		width:      80,
		height:     24,
	}
}

func (m model) Init() tea.Cmd { return nil }

// tickMsg carries the scheduler token it was armed with.
type tickMsg struct{ token player.Token }

func (m model) armTick() tea.Cmd {
	tok, delay := m.sched.Arm()
	return tea.Tick(delay, func(time.Time) tea.Msg { return tickMsg{token: tok} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != statePlay || m.sched == nil {
			return m, nil
		}
		if m.sched.Fire(msg.token) && m.vis.Store().IsPlaying() {
			return m, m.armTick()
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case statePlay:
		return m.playKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algorithms)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.algorithms) == 0 {
			return m, nil
		}
		algo := m.algorithms[m.cursor]
		m.presets = config.ListPresets(algo.Name)
		m.preset = 0
		if err := m.open(algo); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.state = stateConfig
	}
	return m, nil
}

// open builds a visualization for algo from the selected preset, or from the
// configured input when the algorithm has no presets.
func (m *model) open(algo generator.Algorithm) error {
	data, params := m.cfg.Data, m.cfg.Params
	if len(m.presets) > 0 {
		p := config.GetPreset(algo.Name, m.presets[m.preset])
		data, params = p.Data, p.Params
	} else if algo.Name != m.cfg.Algorithm {
		data, params = nil, nil
	}

	vcfg := m.cfg.Visualizer
	vcfg.Interactive = true
	vcfg.AutoPlay = false
	vis, err := session.New(algo, data, params, vcfg, session.WithLogger(m.log))
	if err != nil {
		return err
	}
	if m.sched != nil {
		m.sched.Cancel()
	}
	m.vis = vis
	m.sched = player.NewScheduler(vis.Store(), m.cfg.BaseInterval())
	m.field = 0
	m.editing = false
	m.err = ""
	return nil
}

// fieldCount is the number of editable rows: data items, then parameters.
func (m model) fieldCount() int {
	algo, _ := m.vis.Algorithm()
	n := len(algo.Params)
	if m.vis.DataEditable() {
		n += len(m.vis.Data())
	}
	return n
}

// fieldAt maps a row to a data index or a parameter name.
func (m model) fieldAt(i int) (index int, param string) {
	items := 0
	if m.vis.DataEditable() {
		items = len(m.vis.Data())
	}
	if i < items {
		return i, ""
	}
	algo, _ := m.vis.Algorithm()
	return -1, algo.Params[i-items].Name
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.commitEdit()
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			switch msg.Type {
			case tea.KeyRunes:
				m.editBuf += string(msg.Runes)
			case tea.KeySpace:
				m.editBuf += " "
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.err = ""
	case "up", "k":
		if m.field > 0 {
			m.field--
		}
	case "down", "j":
		if m.field < m.fieldCount()-1 {
			m.field++
		}
	case "enter", "e":
		if m.fieldCount() == 0 {
			return m, nil
		}
		m.editing = true
		if idx, name := m.fieldAt(m.field); name == "" {
			m.editBuf = m.vis.Data()[idx].String()
		} else {
			m.editBuf = fmt.Sprint(m.vis.Params()[name])
		}
	case "a":
		m.setErr(m.vis.AddItem())
	case "x", "delete":
		if idx, name := m.fieldAt(m.field); name == "" && m.fieldCount() > 0 {
			m.setErr(m.vis.RemoveItem(idx))
			m.field = min(m.field, max(m.fieldCount()-1, 0))
		}
	case "p":
		if len(m.presets) > 1 {
			algo, _ := m.vis.Algorithm()
			m.preset = (m.preset + 1) % len(m.presets)
			m.setErr(m.open(algo))
		}
	case "r":
		m.setErr(m.vis.ResetInput())
	case "s":
		m.state = statePlay
		m.err = ""
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) commitEdit() {
	idx, name := m.fieldAt(m.field)
	var err error
	if name == "" {
		err = m.vis.EditItem(idx, m.editBuf)
	} else {
		err = m.vis.EditParam(name, m.editBuf)
	}
	m.setErr(err)
	if err == nil {
		m.editing = false
		m.editBuf = ""
	}
}

func (m *model) setErr(err error) {
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
}

func (m model) playKey(msg tea.KeyMsg) (model, tea.Cmd) {
	s := m.vis.Store()
	switch msg.String() {
	case "q", "esc":
		m.stop()
		m.state = stateMenu
		return m, tea.ClearScreen
	case "c":
		m.stop()
		m.state = stateConfig
		return m, tea.ClearScreen
	case " ", "p":
		if s.IsPlaying() {
			m.stop()
			return m, nil
		}
		s.Play()
		if s.IsPlaying() {
			return m, m.armTick()
		}
	case "right", "l", "n":
		m.stop()
		s.Next()
	case "left", "h", "b":
		m.stop()
		s.Previous()
	case "home", "g", "r":
		m.stop()
		s.Reset()
	case "end", "G":
		m.stop()
		s.Goto(s.Len() - 1)
	case "+", "=":
		return m.setSpeed(min(s.Speed()*2, maxSpeed))
	case "-", "_":
		return m.setSpeed(max(s.Speed()/2, minSpeed))
	case "0":
		return m.setSpeed(1)
	}
	return m, nil
}

// setSpeed changes the speed and, while playing, re-arms the pending tick
// with the new delay.
func (m model) setSpeed(speed float64) (model, tea.Cmd) {
	s := m.vis.Store()
	s.SetSpeed(speed)
	if !s.IsPlaying() {
		return m, nil
	}
	return m, m.armTick()
}

// stop pauses playback and drops the pending tick.
func (m *model) stop() {
	m.sched.Cancel()
	m.vis.Store().Pause()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case statePlay:
		return m.viewPlay()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("a l g o v i z") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, a := range m.algorithms {
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", a.Name)) + dim.Render(a.Summary) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", a.Name)) + dimmer.Render(a.Summary) + "\n")
		}
	}

	if m.err != "" {
		b.WriteString("\n      " + red.Render(m.err) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	algo, _ := m.vis.Algorithm()

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(algo.Title) + "  " + dim.Render(algo.Summary) + "\n")
	if len(m.presets) > 0 {
		b.WriteString("      " + dim.Render("preset ") + magenta.Render(m.presets[m.preset]) + "\n")
	}
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i := 0; i < m.fieldCount(); i++ {
		idx, name := m.fieldAt(i)
		label, val := "", ""
		if name == "" {
			label = fmt.Sprintf("[%d]", idx)
			val = m.vis.Data()[idx].String()
		} else {
			spec, _ := algo.Param(name)
			label = spec.Label
			val = fmt.Sprint(m.vis.Params()[name])
			if m.vis.IsPending(name) {
				val = "(default)"
			}
		}
		if m.editing && i == m.field {
			val = m.editBuf + "▋"
		}
		if i == m.field {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", label)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", label)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n      " + dim.Render(fmt.Sprintf("%d steps", m.vis.Store().Len())) + "\n")
	if m.err != "" {
		b.WriteString("      " + red.Render(m.err) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  enter edit  a add  x remove  p preset  r reset  s play  esc back") + "\n")

	return b.String()
}

func (m model) viewPlay() string {
	s := m.vis.Store()
	algo, _ := m.vis.Algorithm()
	opts := render.OptionsFrom(m.vis.Config(), m.cfg.Theme)
	opts.Width = m.width - 6

	var b strings.Builder
	statusIcon := yellow.Render("○")
	if s.IsPlaying() {
		statusIcon = green.Render("●")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n", statusIcon, cyan.Render(algo.Title), dim.Render(render.Status(s))))
	b.WriteString("   " + progressBar(s, 36) + "\n\n")

	for _, line := range strings.Split(render.Frame(s, opts), "\n") {
		b.WriteString("   " + line + "\n")
	}

	if res, ok := s.Variable("result"); ok && s.IsAtEnd() {
		b.WriteString("   " + green.Render("result ") + white.Render(res.String()) + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play/pause  ←→ step  g/G start/end  ±speed  c config  q quit") + "\n")
	return b.String()
}

func progressBar(s *player.Store, width int) string {
	if s.Len() == 0 {
		return dimmer.Render(strings.Repeat("─", width))
	}
	filled := (s.Index() + 1) * width / s.Len()
	return cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", width-filled))
}

// Run starts the interactive player on the alternate screen.
func Run(reg *generator.Registry, cfg *config.Config, log *slog.Logger) error {
	p := tea.NewProgram(NewApp(reg, cfg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

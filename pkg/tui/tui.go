// Package tui provides a terminal user interface for k5000wave
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/james-see/k5000wave/pkg/converter/devices"
	"github.com/james-see/k5000wave/pkg/harmonic"
	"github.com/james-see/k5000wave/pkg/render"
)

var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(acidGreen).
			Bold(true).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateParams
	StatePreview
)

const exitLabel = "exit"

// Model represents the TUI model
type Model struct {
	state     State
	menuIndex int
	input     textinput.Model
	conv      *converter.Converter
	addr      converter.Address
	waveform  harmonic.Waveform
	params    string
	levels    harmonic.Levels
	showHex   bool
	err       error
	width     int
	height    int
}

// New creates a new TUI model sending to addr
func New(addr converter.Address) Model {
	ti := textinput.New()
	ti.Placeholder = "a,b,c,xp,d,e,yp or preset name"
	ti.CharLimit = 128
	ti.Width = 48

	return Model{
		state: StateMenu,
		input: ti,
		conv:  converter.New(devices.NewK5000()),
		addr:  addr,
		width: 80,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return nil
}

func menuLen() int {
	return len(harmonic.Waveforms()) + 1
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	switch m.state {
	case StateParams:
		if isKey {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				m.err = nil
				m.input.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			case "enter":
				m.params = m.input.Value()
				return m.compute(), nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case StateMenu:
		if isKey {
			return m.updateMenu(keyMsg)
		}

	case StatePreview:
		if isKey {
			return m.updatePreview(keyMsg)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < menuLen()-1 {
			m.menuIndex++
		}
	case "enter":
		if m.menuIndex == menuLen()-1 {
			return m, tea.Quit
		}
		m.waveform = harmonic.Waveforms()[m.menuIndex]
		m.err = nil
		if m.waveform == harmonic.WaveformCustom {
			m.state = StateParams
			return m, m.input.Focus()
		}
		m.params = ""
		return m.compute(), nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h":
		m.showHex = !m.showHex
	case "r":
		if m.waveform == harmonic.WaveformRandom {
			return m.compute(), nil
		}
	case "esc", "enter":
		m.state = StateMenu
		m.showHex = false
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// compute recalculates the table for the selected waveform. Errors keep the
// user on the parameter screen.
func (m Model) compute() Model {
	_, levels, err := harmonic.Request{Waveform: string(m.waveform), Params: m.params}.Resolve()
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.levels = levels
	m.state = StatePreview
	m.input.Blur()
	return m
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateParams:
		s.WriteString(m.viewParams())
	case StatePreview:
		s.WriteString(m.viewPreview())
	}

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" K5000 HARMONICS "))
	s.WriteString("\n\n")

	items := append(harmonic.Waveforms(), harmonic.Waveform(exitLabel))
	for i, item := range items {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(acidYellow).PaddingLeft(4).Render(item.Description()))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item)))
		}
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))
	return boxStyle.Render(s.String())
}

func (m Model) viewParams() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" CUSTOM PARAMETERS "))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(menuStyle.Render("presets: " + strings.Join(harmonic.Presets(), ", ")))
	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: compute • esc: back"))

	return boxStyle.Render(s.String())
}

func (m Model) viewPreview() string {
	var s strings.Builder

	title := fmt.Sprintf(" %s ", strings.ToUpper(string(m.waveform)))
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n")

	if m.showHex {
		lines, err := m.conv.HexLines(m.levels, m.addr)
		if err != nil {
			s.WriteString(errorStyle.Render(err.Error()))
		} else {
			s.WriteString(strings.Join(lines, "\n"))
		}
	} else {
		s.WriteString(render.StyledChart(m.levels, m.chartWidth()))
	}

	help := "h: toggle hex • esc: back • q: quit"
	if m.waveform == harmonic.WaveformRandom {
		help = "r: reroll • " + help
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(help))
	return s.String()
}

func (m Model) chartWidth() int {
	// room for the harmonic number and the level value
	w := m.width - 10
	if w < 10 {
		w = 10
	}
	if w > harmonic.MaxLevel {
		w = harmonic.MaxLevel
	}
	return w
}

// Run starts the TUI application
func Run(addr converter.Address) error {
	p := tea.NewProgram(New(addr), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

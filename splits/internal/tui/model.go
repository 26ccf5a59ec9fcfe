package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/subsplits/subsplits/splits/internal/api"
	"github.com/subsplits/subsplits/splits/internal/compute"
)

// boardPort is the part of the board the model drives.
type boardPort interface {
	Tick(ctx context.Context) ([]compute.DisplayState, error)
	MoveHighlight(delta int)
	SetHighlight(i int)
	Status() api.BoardStatus
}

type tickMsg time.Time

type framesMsg struct {
	frames []compute.DisplayState
	err    error
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select previous")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select next")),
		Clear: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Clear},
		{k.Help, k.Quit},
	}
}

// Model is the Bubble Tea model for the splits display.
type Model struct {
	board    boardPort
	interval time.Duration
	columns  []string

	frames []compute.DisplayState
	err    error
	keys   keyMap
	help   help.Model
}

// New returns a model that ticks b every interval. columns are the column
// titles, in display order.
func New(b boardPort, interval time.Duration, columns []string) Model {
	return Model{
		board:    b,
		interval: interval,
		columns:  columns,
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.computeCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tickMsg:
		return m, m.computeCmd()

	case framesMsg:
		m.err = msg.err
		if msg.err == nil {
			m.frames = msg.frames
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.board.MoveHighlight(-1)
			return m, m.computeCmd()
		case key.Matches(msg, m.keys.Down):
			m.board.MoveHighlight(1)
			return m, m.computeCmd()
		case key.Matches(msg, m.keys.Clear):
			m.board.SetHighlight(compute.NoSegment)
			return m, m.computeCmd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(RenderFrames(m.frames, m.columns))
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) computeCmd() tea.Cmd {
	return func() tea.Msg {
		frames, err := m.board.Tick(context.Background())
		return framesMsg{frames: frames, err: err}
	}
}

// RenderFrames draws a title line and one line per frame.
func RenderFrames(frames []compute.DisplayState, columns []string) string {
	var b strings.Builder
	b.WriteString(renderTitle(columns))
	b.WriteByte('\n')
	for _, ds := range frames {
		b.WriteString(renderRow(ds, len(columns)))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderTitle(columns []string) string {
	cells := []string{pad("", nameWidth, false)}
	for _, c := range columns {
		cells = append(cells, pad(c, columnWidth, true))
	}
	return titleStyle.Render(strings.Join(cells, ""))
}

// renderRow draws one row. Header rows show their time and delta cells in
// place of the columns.
func renderRow(ds compute.DisplayState, columns int) string {
	width := nameWidth + columnWidth*columns
	if ds.Blank {
		return strings.Repeat(" ", width)
	}

	indent := ""
	if ds.Indent {
		indent = "  "
	}
	name := fitName(ds, nameWidth-len(indent)-1)
	if ds.Highlight {
		name = "▸" + name
	}
	parts := []string{cellStyle(ds.Name).Render(pad(indent+name, nameWidth, false))}

	cells := ds.Columns
	if ds.Header {
		cells = []compute.Cell{ds.Delta, ds.Time}
	}
	for _, c := range cells {
		parts = append(parts, cellStyle(c).Render(pad(c.Text, columnWidth, true)))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if ds.Odd {
		row = oddRowStyle.Render(row)
	}
	if ds.Active {
		row = activeRowStyle.Render(row)
	}
	return row
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("source: " + m.err.Error())
	}
	st := m.board.Status()
	line := fmt.Sprintf("%s · split %d", st.Phase, st.CurrentSplit+1)
	if st.Comparison != "" {
		line += " · " + st.Comparison
	}
	return statusStyle.Render(line)
}

// fitName returns the full name or the longest abbreviation that fits.
func fitName(ds compute.DisplayState, width int) string {
	if lipgloss.Width(ds.Name.Text) <= width {
		return ds.Name.Text
	}
	for _, a := range ds.Abbreviations {
		if lipgloss.Width(a) <= width {
			return a
		}
	}
	r := []rune(ds.Name.Text)
	if len(r) > width {
		r = r[:width]
	}
	return string(r)
}

func pad(s string, width int, right bool) string {
	n := width - lipgloss.Width(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/observability"
	"github.com/matzehuels/heatgrid/pkg/ripple"
)

// Terminal geometry. One grid unit is cellCols characters wide and one row tall.
const (
	gutterCols = 2
	cellCols   = 2
	headerRows = 2
	frameRate  = 33 * time.Millisecond

	glyphCell   = "■"
	glyphRaised = "█"
	glyphToday  = "▣"
	glyphCursor = "◂"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// terminalLayout lays the grid out in character cells.
var terminalLayout = []grid.Option{
	grid.WithSquareSize(1),
	grid.WithPadding(0),
	grid.WithMonthGap(1),
}

// =============================================================================
// HeatmapModel - Interactive terminal heatmap
// =============================================================================

type tickMsg time.Time

// activeRipple is a ripple still animating.
type activeRipple struct {
	r     *ripple.Ripple
	start time.Time
}

// tooltipState receives the heatmap's tooltip updates.
type tooltipState struct {
	text    string
	visible bool
}

// HeatmapModel is the bubbletea model for the interactive heatmap.
type HeatmapModel struct {
	h       *heatmap.Heatmap
	dates   *dateio.DateSet
	tooltip *tooltipState
	ripples []activeRipple
	now     func() time.Time
	ctx     context.Context

	cursor  int
	added   int
	message string
}

// NewHeatmapModel builds the terminal heatmap. Clicks add to dates.
func NewHeatmapModel(ctx context.Context, year int, dates *dateio.DateSet, today time.Time, opts ...heatmap.Option) (*HeatmapModel, error) {
	m := &HeatmapModel{
		dates:   dates,
		tooltip: &tooltipState{},
		now:     time.Now,
		ctx:     ctx,
	}
	opts = append(opts,
		heatmap.WithLayout(terminalLayout...),
		heatmap.WithTooltip(heatmap.TooltipFunc(func(text string, _, _ float64, visible bool) {
			m.tooltip.text, m.tooltip.visible = text, visible
		})),
	)
	h, err := heatmap.New(year, dates.Dates(), today, m.complete, opts...)
	if err != nil {
		return nil, err
	}
	m.h = h
	if today.Year() == year {
		m.cursor = calendar.DayOfYear(today)
	}
	return m, nil
}

// Added returns how many dates were completed during the session.
func (m *HeatmapModel) Added() int { return m.added }

func (m *HeatmapModel) complete(date time.Time) {
	if m.dates.Add(date) {
		m.added++
	}
	m.h.SetCompleted(m.dates.Dates())
}

func (m *HeatmapModel) Init() tea.Cmd {
	return nil
}

func (m *HeatmapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.move(-calendar.DaysPerWeek)
		case "right", "l":
			m.move(calendar.DaysPerWeek)
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			return m, m.click(m.cursor)
		}
	case tea.MouseMsg:
		day, ok := m.dayAt(msg.X, msg.Y)
		if !ok {
			m.h.HoverLeave()
			return m, nil
		}
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.cursor = day
			return m, m.click(day)
		case msg.Action == tea.MouseActionMotion:
			_ = m.h.HoverMove(day, float64(msg.X), float64(msg.Y))
		}
	case tickMsg:
		m.prune(time.Time(msg))
		if len(m.ripples) > 0 {
			return m, tick()
		}
	}
	return m, nil
}

func (m *HeatmapModel) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.h.Layout().Days() {
		return
	}
	m.cursor = next
	x, y := m.screenPos(next)
	_ = m.h.HoverEnter(next, float64(x), float64(y))
}

// click forwards a click on day and starts its animation.
func (m *HeatmapModel) click(day int) tea.Cmd {
	r, err := m.h.Click(day)
	if err != nil {
		m.message = err.Error()
		return nil
	}
	cell, _ := m.h.Cell(day)
	if r == nil {
		observability.Interaction().OnClick(m.ctx, day, 0)
		m.message = cell.Date + " is in the future"
		return nil
	}
	observability.Interaction().OnClick(m.ctx, day, len(r.Entries))
	m.message = fmt.Sprintf("%s %s, ripple reaches %d cells", cell.Date, cell.Status, len(r.Entries))

	start := len(m.ripples) == 0
	m.ripples = append(m.ripples, activeRipple{r: r, start: m.now()})
	if start {
		return tick()
	}
	return nil
}

func (m *HeatmapModel) prune(now time.Time) {
	live := m.ripples[:0]
	for _, a := range m.ripples {
		if now.Sub(a.start) < a.r.Duration() {
			live = append(live, a)
		}
	}
	m.ripples = live
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// screenPos returns the terminal column and row of day.
func (m *HeatmapModel) screenPos(day int) (x, y int) {
	p := m.h.Layout().MustPosition(day)
	return gutterCols + int(p.X)*cellCols, headerRows + int(p.Y)
}

// dayAt maps a terminal column and row to a day.
func (m *HeatmapModel) dayAt(x, y int) (int, bool) {
	if x < gutterCols || y < headerRows {
		return 0, false
	}
	return m.h.Layout().DayAt(float64(x-gutterCols)/cellCols, float64(y-headerRows))
}

// animate returns the fill of day at now and whether the cell is raised.
func (m *HeatmapModel) animate(day int, resting heatmap.Color, now time.Time) (heatmap.Color, bool) {
	for i := len(m.ripples) - 1; i >= 0; i-- {
		a := m.ripples[i]
		e, ok := a.r.Entry(day)
		if !ok {
			continue
		}
		phase, progress := a.r.Timing.PhaseAt(e, now.Sub(a.start))
		highlight := heatmap.Opaque(a.r.Timing.HighlightColor)
		raised := a.r.Timing.ScaleAt(phase, progress) > 1+(a.r.Timing.Scale-1)/2
		switch phase {
		case ripple.Highlighting:
			return heatmap.Mix(resting, highlight, progress), raised
		case ripple.Restoring:
			return heatmap.Mix(highlight, resting, progress), raised
		}
	}
	return resting, false
}

func (m *HeatmapModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("heatgrid %d", m.h.Year())))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d completed", m.dates.Len())))
	b.WriteString("\n\n")

	s := newTermSurface(m, m.now())
	m.h.Draw(s)
	b.WriteString(s.String())
	b.WriteString("\n\n")

	switch {
	case m.tooltip.visible:
		b.WriteString(StyleValue.Render(m.tooltip.text))
	case m.message != "":
		b.WriteString(StyleValue.Render(m.message))
	default:
		text, _ := m.h.TooltipText(m.cursor)
		b.WriteString(StyleValue.Render(text))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ week  ↑/↓ day  ⏎ complete  click  q quit"))
	return b.String()
}

// =============================================================================
// termSurface - heatmap.Surface on a character grid
// =============================================================================

// termSurface renders draw commands into rows of styled cells.
type termSurface struct {
	m     *HeatmapModel
	now   time.Time
	bg    heatmap.Color
	rows  [][]string
	label []rune
}

func newTermSurface(m *HeatmapModel, now time.Time) *termSurface {
	l := m.h.Layout()
	width := gutterCols + int(l.Width)*cellCols
	s := &termSurface{
		m:     m,
		now:   now,
		bg:    m.h.Palette().Background,
		rows:  make([][]string, calendar.DaysPerWeek),
		label: []rune(strings.Repeat(" ", width)),
	}
	for i := range s.rows {
		s.rows[i] = make([]string, width)
		for j := range s.rows[i] {
			s.rows[i][j] = " "
		}
	}
	return s
}

func (s *termSurface) Rect(c heatmap.RectCmd) {
	row := int(c.Y)
	col := gutterCols + int(c.X-heatmap.Gutter)*cellCols
	if row < 0 || row >= len(s.rows) || col+1 >= len(s.rows[row]) {
		return
	}

	fill, raised := s.m.animate(c.Day, c.Fill, s.now)
	glyph := glyphCell
	switch {
	case raised:
		glyph = glyphRaised
	case c.IsToday:
		glyph = glyphToday
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fill.Over(s.bg).Hex))
	s.rows[row][col] = style.Render(glyph)
	if c.Day == s.m.cursor {
		s.rows[row][col+1] = StyleHighlight.Render(glyphCursor)
	}
}

func (s *termSurface) Text(c heatmap.TextCmd) {
	switch c.Kind {
	case heatmap.WeekdayInitial:
		row := int(c.Y)
		if row >= 0 && row < len(s.rows) {
			s.rows[row][0] = StyleDim.Render(c.Text)
		}
	case heatmap.MonthLabel:
		center := gutterCols + int((c.X-heatmap.Gutter)*cellCols)
		start := max(0, center-len(c.Text)/2)
		for i, r := range c.Text {
			if start+i < len(s.label) {
				s.label[start+i] = r
			}
		}
	}
}

// String joins the grid rows and the label row.
func (s *termSurface) String() string {
	lines := make([]string, 0, len(s.rows)+1)
	for _, row := range s.rows {
		lines = append(lines, strings.Join(row, ""))
	}
	lines = append(lines, StyleDim.Render(strings.TrimRight(string(s.label), " ")))
	return strings.Join(lines, "\n")
}

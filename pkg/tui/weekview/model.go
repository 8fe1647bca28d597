// Package weekview renders the interactive week grid: one line per
// calendar row, one column per day, with a cursor for editing hours in
// place and staging them through the service.
package weekview

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/timesheet"
	"tableflip.dev/punch/pkg/week"
)

const (
	groupColWidth = 18
	taskColWidth  = 16
	dayColWidth   = 7
)

type weekLoadedMsg struct {
	err error
}

// cacheChangedMsg means another process wrote the offline cache.
type cacheChangedMsg struct{}

type actionDoneMsg struct {
	verb  string
	count int
	err   error
}

// Model is the Bubble Tea model for the week grid.
type Model struct {
	service *app.Service

	width  int
	height int

	cursorRow int
	cursorDay int

	editing bool
	input   textinput.Model

	status string

	headerStyle   lipgloss.Style
	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	lockedStyle   lipgloss.Style
	faintStyle    lipgloss.Style
	errorStyle    lipgloss.Style
}

// New constructs the week grid bound to the provided service.
func New(service *app.Service) *Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 6

	return &Model{
		service:       service,
		input:         in,
		headerStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		cursorStyle:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		lockedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		faintStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Run launches the Bubble Tea program hosting the week grid. When the
// service carries an offline cache the grid also refreshes whenever
// another process writes to it.
func Run(service *app.Service) error {
	p := tea.NewProgram(New(service), tea.WithAltScreen())

	if c := service.Cache(); c != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if events, err := c.Watch(ctx); err == nil {
			go func() {
				for range events {
					p.Send(cacheChangedMsg{})
				}
			}()
		}
	}

	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadCmd(time.Now())
}

func (m *Model) loadCmd(anchor time.Time) tea.Cmd {
	return func() tea.Msg {
		return weekLoadedMsg{err: m.service.LoadWeek(context.Background(), anchor)}
	}
}

func (m *Model) shiftCmd(step func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return weekLoadedMsg{err: step(context.Background())}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case cacheChangedMsg:
		return m, m.loadCmd(m.service.Window.Anchor)
	case weekLoadedMsg:
		m.clampCursor()
		if msg.err != nil {
			m.status = fmt.Sprintf("showing last known data: %v", msg.err)
		} else {
			m.status = ""
		}
	case actionDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.verb, msg.err)
			break
		}
		noun := "entries"
		if msg.count == 1 {
			noun = "entry"
		}
		m.status = fmt.Sprintf("%s %d %s", msg.verb, msg.count, noun)
	case tea.KeyMsg:
		if m.editing {
			return m, m.handleEditKey(msg)
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		_ = m.service.Close(context.Background())
		return tea.Quit
	case "h":
		return m.shiftCmd(m.service.PreviousWeek)
	case "l":
		return m.shiftCmd(m.service.NextWeek)
	case "left":
		if m.cursorDay > 0 {
			m.cursorDay--
			return nil
		}
		return m.shiftCmd(m.service.PreviousWeek)
	case "right":
		if m.cursorDay < 6 {
			m.cursorDay++
			return nil
		}
		return m.shiftCmd(m.service.NextWeek)
	case "up", "k":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < len(m.service.Store.Rows())-1 {
			m.cursorRow++
		}
	case "space":
		for _, e := range m.entriesAtCursor() {
			m.service.ToggleSelected(e.ID)
		}
	case "enter", "e":
		return m.beginEdit()
	case "s":
		return func() tea.Msg {
			count, err := m.submitCursor()
			return actionDoneMsg{verb: "submitted", count: count, err: err}
		}
	case "d":
		return func() tea.Msg {
			count, err := m.service.DeleteSelected(context.Background())
			return actionDoneMsg{verb: "deleted", count: count, err: err}
		}
	case "r":
		return m.loadCmd(m.service.Window.Anchor)
	}
	return nil
}

// submitCursor sends the selected entries, or the whole week when nothing
// is selected.
func (m *Model) submitCursor() (int, error) {
	if len(m.service.Store.Selected()) > 0 {
		return m.service.SubmitSelected(context.Background())
	}
	return m.service.SubmitWeek(context.Background())
}

func (m *Model) beginEdit() tea.Cmd {
	rows := m.service.Store.Rows()
	if m.cursorRow >= len(rows) {
		return nil
	}
	if e := m.entryAtCursor(); e != nil && !e.Status.Editable() {
		m.status = "entry is locked for review"
		return nil
	}

	m.editing = true
	m.input.SetValue("")
	if e := m.entryAtCursor(); e != nil && e.Hours != 0 {
		m.input.SetValue(strconv.FormatFloat(e.Hours, 'f', -1, 64))
	}
	m.status = ""
	return m.input.Focus()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.editing = false
		m.input.Blur()
		return m.commitEdit(value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// commitEdit applies the typed hours to the cell under the cursor. An
// existing entry gets the change staged through the debounce engine; an
// empty cell grows a new entry for the row's grouping.
func (m *Model) commitEdit(value string) tea.Cmd {
	if value == "" {
		return nil
	}
	hours, err := strconv.ParseFloat(value, 64)
	if err != nil || hours < 0 {
		m.status = fmt.Sprintf("not an hour count: %q", value)
		return nil
	}

	rows := m.service.Store.Rows()
	if m.cursorRow >= len(rows) {
		return nil
	}
	row := rows[m.cursorRow]
	date := m.service.Window.Days()[m.cursorDay].Date

	if e := m.entryAtCursor(); e != nil {
		return func() tea.Msg {
			err := m.service.StageEdit(context.Background(), e.ID, timesheet.Patch{Hours: &hours})
			return actionDoneMsg{verb: "staged", count: 1, err: err}
		}
	}
	return func() tea.Msg {
		_, err := m.service.NewEntry(context.Background(), date, row.Project, row.Team, row.Task, hours)
		return actionDoneMsg{verb: "added", count: 1, err: err}
	}
}

// entriesAtCursor returns every member of the cursor row that falls on the
// cursor day.
func (m *Model) entriesAtCursor() []*entry.Entry {
	rows := m.service.Store.Rows()
	if m.cursorRow >= len(rows) {
		return nil
	}
	date := m.service.Window.Days()[m.cursorDay].Date

	var out []*entry.Entry
	for _, id := range rows[m.cursorRow].Members {
		e, ok := m.service.Store.Get(id)
		if !ok {
			continue
		}
		if week.SameDay(e.Date, date) {
			out = append(out, e)
		}
	}
	return out
}

func (m *Model) entryAtCursor() *entry.Entry {
	if es := m.entriesAtCursor(); len(es) > 0 {
		return es[0]
	}
	return nil
}

func (m *Model) clampCursor() {
	if n := len(m.service.Store.Rows()); m.cursorRow >= n {
		m.cursorRow = n - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sum := m.service.Summarize()
	days := sum.Window.Days()

	var b strings.Builder
	b.WriteString(m.headerStyle.Render(fmt.Sprintf("Week of %s", sum.Window.Anchor.Format("January 2, 2006"))))
	b.WriteString("\n\n")

	head := pad("", groupColWidth) + pad("", taskColWidth)
	for _, d := range days {
		head += pad(fmt.Sprintf("%s %d", d.Weekday, d.Number), dayColWidth)
	}
	head += "Total"
	b.WriteString(m.headerStyle.Render(head))
	b.WriteString("\n")

	rows := m.service.Store.Rows()
	for ri, rs := range sum.Rows {
		b.WriteString(pad(truncate(rs.Row.GroupRef(), groupColWidth-2), groupColWidth))
		b.WriteString(pad(truncate(rs.Row.Task, taskColWidth-2), taskColWidth))
		for di := range days {
			b.WriteString(m.renderCell(ri, di, rs))
		}
		b.WriteString(fmt.Sprintf("%.2f", rs.Total))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(m.faintStyle.Render(" no entries this week"))
		b.WriteString("\n")
	}

	totals := pad("", groupColWidth) + pad("", taskColWidth)
	for i := range days {
		totals += pad(cellText(sum.DayTotals[i]), dayColWidth)
	}
	totals += fmt.Sprintf("%.2f", sum.Total)
	b.WriteString(m.headerStyle.Render(totals))
	b.WriteString("\n\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderCell(ri, di int, rs app.RowSummary) string {
	text := cellText(rs.DayHours[di])

	if m.editing && ri == m.cursorRow && di == m.cursorDay {
		return pad("["+m.input.View()+"]", dayColWidth)
	}

	style := lipgloss.NewStyle()
	if es := m.entriesAt(ri, di); len(es) > 0 {
		if !es[0].Status.Editable() {
			style = m.lockedStyle
		}
		if es[0].Selected {
			style = m.selectedStyle
			text = "*" + text
		}
	}
	if ri == m.cursorRow && di == m.cursorDay {
		style = m.cursorStyle
	}
	return pad(style.Render(text), dayColWidth)
}

func (m *Model) entriesAt(ri, di int) []*entry.Entry {
	saveRow, saveDay := m.cursorRow, m.cursorDay
	m.cursorRow, m.cursorDay = ri, di
	es := m.entriesAtCursor()
	m.cursorRow, m.cursorDay = saveRow, saveDay
	return es
}

func (m *Model) renderFooter() string {
	help := "←/→ move  h/l week  j/k row  space select  enter edit  s submit  d delete  r reload  q quit"
	width := m.width
	if width <= 0 {
		width = 80
	}
	out := m.faintStyle.Render(wordwrap.String(help, width))
	if m.status != "" {
		style := m.faintStyle
		if strings.Contains(m.status, "failed") || strings.Contains(m.status, "last known") {
			style = m.errorStyle
		}
		out += "\n" + style.Render(wordwrap.String(m.status, width))
	}
	return out
}

func cellText(hours float64) string {
	if hours == 0 {
		return "·"
	}
	return fmt.Sprintf("%.2f", hours)
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

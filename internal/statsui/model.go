// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/numguess/internal/model"
	"github.com/verte-zerg/numguess/internal/stats"
	"github.com/verte-zerg/numguess/internal/validate"
)

const (
	tabOverview = iota
	tabDifficulty
	tabHistory
)

const trendWindow = 3

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	trendStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Loader builds a report for the given history filter.
type Loader func(filter model.HistoryFilter) (stats.Report, error)

// Model implements the Bubble Tea stats UI.
type Model struct {
	load   Loader
	filter model.HistoryFilter
	now    func() time.Time

	report stats.Report
	errMsg string

	tabs         []string
	activeTab    int
	overview     viewport.Model
	diffTable    table.Model
	historyTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model and loads the first report.
func NewModel(load Loader, filter model.HistoryFilter, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{
		load:     load,
		filter:   filter,
		now:      now,
		tabs:     []string{"Overview", "By Difficulty", "History"},
		overview: viewport.New(0, 0),
	}
	m.diffTable = newTable(difficultyColumns(), nil)
	m.historyTable = newTable(historyColumns(), nil)
	m.initInputs()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			m.gotoEdge(true)
			return m, nil
		case "G", "end":
			m.gotoEdge(false)
			return m, nil
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case tabDifficulty:
			m.diffTable, cmd = m.diffTable.Update(msg)
		case tabHistory:
			m.historyTable, cmd = m.historyTable.Update(msg)
		default:
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Difficulty: "),
		newFilterInput("Result (won/lost): "),
		newFilterInput("Last: "),
	}
	m.setInputsFromFilter()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromFilter() {
	m.filterInputs[0].SetValue(string(m.filter.Difficulty))
	m.filterInputs[1].SetValue(m.filter.Result)
	if m.filter.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.filter.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.diffTable.SetWidth(m.width)
	m.diffTable.SetHeight(max(1, bodyHeight-1))
	// The history tab keeps two lines for the trend.
	m.historyTable.SetWidth(m.width)
	m.historyTable.SetHeight(max(1, bodyHeight-3))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.diffTable.Blur()
	m.historyTable.Blur()
	switch m.activeTab {
	case tabDifficulty:
		m.diffTable.Focus()
	case tabHistory:
		m.historyTable.Focus()
	}
}

func (m *Model) gotoEdge(top bool) {
	switch {
	case m.activeTab == tabDifficulty && top:
		m.diffTable.GotoTop()
	case m.activeTab == tabDifficulty:
		m.diffTable.GotoBottom()
	case m.activeTab == tabHistory && top:
		m.historyTable.GotoTop()
	case m.activeTab == tabHistory:
		m.historyTable.GotoBottom()
	case top:
		m.overview.GotoTop()
	default:
		m.overview.GotoBottom()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	return headerStyle.Render(truncateLine(filterSummary(m.filter), m.width))
}

func filterSummary(f model.HistoryFilter) string {
	difficulty := string(f.Difficulty)
	if difficulty == "" {
		difficulty = "any"
	}
	result := f.Result
	if result == "" {
		result = "any"
	}
	last := "all"
	if f.Last > 0 {
		last = strconv.Itoa(f.Last)
	}
	return fmt.Sprintf("History: difficulty=%s  result=%s  last=%s", difficulty, result, last)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"History filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	switch m.activeTab {
	case tabDifficulty:
		if len(m.report.Stats.ByDifficulty) == 0 {
			return fitLines("No games played yet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.diffTable.View()), m.width, height)
	case tabHistory:
		if len(m.report.Games) == 0 {
			return fitLines("No games found.", m.width, height)
		}
		view := tableMutedStyle.Render(m.historyTable.View()) + "\n\n" + renderTrend(m.report.Games, m.width)
		return fitLines(view, m.width, height)
	default:
		return fitLines(m.overview.View(), m.width, height)
	}
}

func (m *Model) refreshReport() {
	report, err := m.load(m.filter)
	if err != nil {
		m.errMsg = err.Error()
	} else {
		m.errMsg = ""
	}
	m.report = report
	m.diffTable.SetRows(difficultyRows(report.Stats))
	m.historyTable.SetRows(historyRows(report.Games, m.now()))
	m.updateLayout()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width, m.now()))
}

func renderOverview(report stats.Report, width int, now time.Time) string {
	if report.Stats.TotalGames == 0 {
		return "No games played yet."
	}
	var buf bytes.Buffer
	if err := stats.RenderHighScores(&buf, report.HighScores, now); err != nil {
		return fmt.Sprintf("Failed to render high scores: %v", err)
	}
	return strings.TrimRight(renderSummaryCards(report, width)+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	s, d := report.Stats, report.Derived
	cards := []string{
		metricCard("Games", fmt.Sprintf("%d", s.TotalGames)),
		metricCard("Win Rate", fmt.Sprintf("%d%%", d.WinRate)),
		metricCard("Streak", fmt.Sprintf("%d (best %d)", s.Streak.Current, s.Streak.Best)),
		metricCard("Best Score", fmt.Sprintf("%d", s.BestScore)),
		metricCard("Avg Score", fmt.Sprintf("%d", d.AverageScore)),
		metricCard("Avg Attempts", fmt.Sprintf("%d", d.AverageAttempts)),
		metricCard("Avg Time", fmt.Sprintf("%ds", d.AverageTime)),
		metricCard("Play Time", fmt.Sprintf("%d min", s.PlaySeconds/60)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderTrend(games []model.GameRecord, width int) string {
	line := stats.Sparkline(stats.MovingAverage(stats.ScoreSeries(games), trendWindow))
	label := "Score trend: "
	if room := width - len(label); room > 0 && len(line) > room {
		line = line[len(line)-room:]
	}
	return headerStyle.Render(label) + trendStyle.Render(line)
}

func difficultyColumns() []table.Column {
	return []table.Column{
		{Title: "Difficulty", Width: 10},
		{Title: "Games", Width: 6},
		{Title: "Wins", Width: 5},
		{Title: "Win Rate", Width: 8},
		{Title: "Best", Width: 6},
		{Title: "Avg Score", Width: 9},
	}
}

func difficultyRows(s model.AggregateStats) []table.Row {
	rows := make([]table.Row, 0, len(s.ByDifficulty))
	for _, diff := range stats.OrderedDifficulties(s.ByDifficulty) {
		ds := s.ByDifficulty[diff]
		winRate, avg := stats.DifficultyMetrics(ds)
		rows = append(rows, table.Row{
			string(diff),
			fmt.Sprintf("%d", ds.Games),
			fmt.Sprintf("%d", ds.Wins),
			fmt.Sprintf("%d%%", winRate),
			fmt.Sprintf("%d", ds.BestScore),
			fmt.Sprintf("%d", avg),
		})
	}
	return rows
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Difficulty", Width: 10},
		{Title: "Result", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Attempts", Width: 8},
		{Title: "Hints", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Secret", Width: 6},
	}
}

// historyRows lists the newest game first.
func historyRows(games []model.GameRecord, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		g := games[i]
		rows = append(rows, table.Row{
			stats.RelativeDate(g.EndedAt, now),
			string(g.Difficulty),
			stats.ResultLabel(g.Won),
			fmt.Sprintf("%d", g.Score),
			fmt.Sprintf("%d/%d", g.Attempts, g.MaxAttempts),
			fmt.Sprintf("%d", g.HintsUsed),
			fmt.Sprintf("%ds", g.ElapsedSeconds),
			fmt.Sprintf("%d", g.Secret),
		})
	}
	return rows
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromFilter()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		filter, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filter = filter
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilter() (model.HistoryFilter, error) {
	var f model.HistoryFilter
	if raw := strings.TrimSpace(m.filterInputs[0].Value()); raw != "" {
		d, err := validate.ParseDifficultySelection(raw)
		if err != nil {
			return f, fmt.Errorf("invalid difficulty (use easy, medium, hard or expert)")
		}
		f.Difficulty = d
	}
	switch raw := strings.ToLower(strings.TrimSpace(m.filterInputs[1].Value())); raw {
	case "", "won", "lost":
		f.Result = raw
	default:
		return f, fmt.Errorf("invalid result (use won or lost)")
	}
	if raw := strings.TrimSpace(m.filterInputs[2].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		f.Last = n
	}
	return f, nil
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

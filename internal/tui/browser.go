// internal/tui/browser.go
// Package tui provides an interactive terminal browser for report summaries.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mwiater/cpgreport/internal/metrics"
	"github.com/mwiater/cpgreport/internal/report"
)

// viewState represents the current screen of the browser.
type viewState int

const (
	// viewRanking lists models in rank order.
	viewRanking viewState = iota
	// viewTable shows one pivot table.
	viewTable
)

const cellPrecision = 3

var (
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// item is a ranked model in the ranking list.
type item struct {
	name string
	rank int
	desc string
}

func (i item) Title() string       { return fmt.Sprintf("%d. %s", i.rank, i.name) }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.name }

// pivotView is a titled pivot table the browser can page through.
type pivotView struct {
	title string
	pivot metrics.PivotTable
}

// model is the Bubble Tea model of the summary browser.
type model struct {
	summary  metrics.Summary
	state    viewState
	views    []pivotView
	current  int
	selected string
	rankList list.Model
	table    table.Model
	width    int
	height   int
}

func initialModel(s metrics.Summary) *model {
	items := make([]list.Item, len(s.ModelOrder))
	for i, name := range s.ModelOrder {
		desc := "no anchor rows"
		if rs, ok := s.ModelMeans[name]; ok {
			desc = fmt.Sprintf("mean %s %.4f (n=%d)", s.AnchorMetric, rs.Mean, rs.Count)
		}
		items[i] = item{name: name, rank: i + 1, desc: desc}
	}
	rankList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	rankList.Title = fmt.Sprintf("Models by mean %s at %s", s.AnchorMetric, s.AnchorAnnotation)

	m := &model{
		summary:  s,
		state:    viewRanking,
		rankList: rankList,
		views: []pivotView{
			{title: fmt.Sprintf("Performance at %s", s.AnchorAnnotation), pivot: s.ByModel},
			{title: "Performance by annotation", pivot: s.ByModelAnno},
		},
	}
	m.rebuildTable()
	return m
}

// Run starts the browser on the alternate screen and blocks until the user quits.
func Run(s metrics.Summary) error {
	p := tea.NewProgram(initialModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and resizes, then forwards the message to the active component.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	filtering := m.state == viewRanking && m.rankList.FilterState() == list.Filtering

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !filtering {
				return m, tea.Quit
			}
		case "tab":
			if !filtering {
				m.nextView()
				return m, nil
			}
		case "esc":
			if m.state == viewTable {
				m.state = viewRanking
				m.selected = ""
				return m, nil
			}
		case "enter":
			if m.state == viewRanking && !filtering {
				if it, ok := m.rankList.SelectedItem().(item); ok {
					m.state = viewTable
					m.current = 1
					m.selected = it.name
					m.rebuildTable()
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rankList.SetSize(msg.Width-4, msg.Height-4)
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(max(msg.Height-6, 3))
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == viewRanking {
		m.rankList, cmd = m.rankList.Update(msg)
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

// nextView cycles ranking, then each pivot table, then back to the ranking.
func (m *model) nextView() {
	m.selected = ""
	switch {
	case m.state == viewRanking:
		m.state = viewTable
		m.current = 0
	case m.current+1 < len(m.views):
		m.current++
	default:
		m.state = viewRanking
		m.current = 0
	}
	m.rebuildTable()
}

func (m *model) rebuildTable() {
	view := m.views[m.current]
	columns, rows := tableContent(view.pivot, m.selected)

	height := 10
	if m.height > 0 {
		height = max(m.height-6, 3)
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("86"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	t.SetStyles(styles)
	if m.width > 0 {
		t.SetWidth(m.width - 4)
	}
	m.table = t
}

// tableContent converts a pivot into table columns and rows, keeping only rows of onlyModel when set.
func tableContent(pivot metrics.PivotTable, onlyModel string) ([]table.Column, []table.Row) {
	titles := make([]string, 0, len(pivot.Keys)+len(pivot.Columns))
	for _, k := range pivot.Keys {
		titles = append(titles, string(k))
	}
	titles = append(titles, pivot.Columns...)

	modelIdx := -1
	for i, k := range pivot.Keys {
		if k == metrics.KeyModel {
			modelIdx = i
		}
	}

	var rows []table.Row
	for _, pr := range pivot.Rows {
		if onlyModel != "" && modelIdx >= 0 && pr.Key[modelIdx] != onlyModel {
			continue
		}
		row := append(table.Row{}, pr.Key...)
		for _, col := range pivot.Columns {
			row = append(row, report.FormatCell(pr.Get(col), cellPrecision))
		}
		rows = append(rows, row)
	}

	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		width := runewidth.StringWidth(title)
		for _, r := range rows {
			width = max(width, runewidth.StringWidth(r[i]))
		}
		columns[i] = table.Column{Title: title, Width: width + 1}
	}
	return columns, rows
}

// View renders the active screen.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	switch m.state {
	case viewRanking:
		b.WriteString(m.rankList.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: model detail • tab: tables • q: quit"))
	case viewTable:
		title := m.views[m.current].title
		if m.selected != "" {
			title = fmt.Sprintf("%s: %s", title, m.selected)
		}
		b.WriteString(headerStyle.Render(title))
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: next view • esc: back • q: quit"))
	}
	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

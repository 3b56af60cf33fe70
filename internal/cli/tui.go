package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ilotplan/pkg/pipeline"
)

var (
	pickerTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	pickerCursor   = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	pickerWarnings = lipgloss.NewStyle().Foreground(colorWarn)
)

// ResultListModel is the bubbletea model behind "compare": it lists one
// result per algorithm and returns the one the user picks.
type ResultListModel struct {
	Results  []*pipeline.Result
	Cursor   int
	Selected *pipeline.Result
}

func NewResultListModel(results []*pipeline.Result) ResultListModel {
	return ResultListModel{Results: results}
}

func (m ResultListModel) Init() tea.Cmd { return nil }

func (m ResultListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.Cursor = max(m.Cursor-1, 0)
	case "down", "j":
		m.Cursor = min(m.Cursor+1, max(len(m.Results)-1, 0))
	case "enter":
		if len(m.Results) > 0 {
			m.Selected = m.Results[m.Cursor]
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m ResultListModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitle.Render("Select Layout") + "\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit") + "\n\n")

	rows := make([][]string, len(m.Results))
	for i, r := range m.Results {
		marker := " "
		if i == m.Cursor {
			marker = pickerCursor.Render("▸")
		}
		opt := r.Optimization
		rows[i] = []string{
			marker + " " + opt.AlgorithmName,
			fmt.Sprintf("%.1f", opt.Score),
			fmt.Sprintf("%.1f%%", opt.UtilizationPercentage),
			fmt.Sprintf("%d/%d", r.Stats.Placed, r.Stats.Requested),
			fmt.Sprintf("%d", len(opt.Corridors)),
		}
	}
	b.WriteString(newTable("Algorithm", "Score", "Utilization", "Units", "Corridors").Rows(rows...).Render())
	b.WriteString("\n")

	// Warnings of the highlighted result.
	if m.Cursor < len(m.Results) {
		for _, w := range m.Results[m.Cursor].Warnings {
			b.WriteString(pickerWarnings.Render("! "+w.Message) + "\n")
		}
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Results)), len(m.Results))))
	return b.String()
}

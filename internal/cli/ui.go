package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ilotplan/pkg/pipeline"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorCmd    = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleHighlight marks names such as the algorithm that ran.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleNumber marks headline figures (score, utilization).
	StyleNumber = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue       = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
)

// statusKind selects the icon and colour of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusFail
	statusWarn
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo: {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

func status(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarn {
		msg = statusIcons[statusWarn].style.Render(msg)
	}
	ic := statusIcons[kind]
	fmt.Println(ic.style.Render(ic.icon) + " " + msg)
}

func printSuccess(format string, args ...any) { status(statusOK, format, args...) }
func printError(format string, args ...any)   { status(statusFail, format, args...) }
func printWarning(format string, args ...any) { status(statusWarn, format, args...) }
func printInfo(format string, args ...any)    { status(statusInfo, format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

// =============================================================================
// Results
// =============================================================================

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// printStats prints layout statistics on a single line.
func printStats(res *pipeline.Result) {
	st := res.Stats
	parts := []string{
		fmt.Sprintf("%d/%d units", st.Placed, st.Requested),
		fmt.Sprintf("%d corridors", st.CorridorCount),
		fmt.Sprintf("%.1f m² free", st.FreeArea),
	}

	if res.CacheInfo.ResultHit {
		parts = append(parts, statusIcons[statusOK].style.Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printResult prints the headline numbers of a run followed by its warnings.
func printResult(res *pipeline.Result) {
	opt := res.Optimization
	printSuccess("Optimized layout with %s", StyleHighlight.Render(opt.AlgorithmName))
	printStats(res)
	printKeyValue("Utilization", StyleNumber.Render(fmt.Sprintf("%.1f%%", opt.UtilizationPercentage)))
	printKeyValue("Score", StyleNumber.Render(fmt.Sprintf("%.1f", opt.Score)))
	printKeyValue("Adherence", StyleNumber.Render(fmt.Sprintf("%.1f%%", res.DistributionAdherence)))
	printKeyValue("Unit area", fmt.Sprintf("%.1f m²", opt.TotalArea))
	printKeyValue("Time", fmt.Sprintf("%.2fs", opt.GenerationTimeSeconds))
	for _, w := range res.Warnings {
		printWarning("%s", w.Message)
	}
}

// zoneTable renders a per-kind summary of classified zones.
func zoneTable(cls *pipeline.Classification) string {
	var rows [][]string
	for _, k := range zone.Kinds() {
		n, area := 0, 0.0
		for _, z := range cls.Zones {
			if z.Kind == k {
				n++
				area += z.Area
			}
		}
		if n == 0 {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(k.Color())).Render("■")
		rows = append(rows, []string{k.String(), swatch, fmt.Sprintf("%d", n), fmt.Sprintf("%.1f", area)})
	}
	return newTable("Kind", "", "Zones", "Area").Rows(rows...).Render()
}

// compareTable renders algorithm results ranked by score, best first.
func compareTable(results []*pipeline.Result) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		opt := r.Optimization
		rows[i] = []string{
			opt.AlgorithmName,
			fmt.Sprintf("%.1f", opt.Score),
			fmt.Sprintf("%.1f%%", opt.UtilizationPercentage),
			fmt.Sprintf("%d/%d", r.Stats.Placed, r.Stats.Requested),
			fmt.Sprintf("%d", r.Stats.CorridorCount),
			fmt.Sprintf("%.2fs", opt.GenerationTimeSeconds),
		}
	}
	return newTable("Algorithm", "Score", "Utilization", "Units", "Corridors", "Time").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorValue).Padding(0, 1)
		})
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

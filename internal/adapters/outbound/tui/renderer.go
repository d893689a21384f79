package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shellcon/aquacheck/internal/domain"
)

// ── Lab palette ──
var (
	accent  = lipgloss.Color("#0EA5E9") // reef blue
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderVerdict formats one verification result for terminal output.
// commit is shown under the header when non-empty.
func RenderVerdict(c domain.Category, v domain.Verdict, commit string) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render(v.SystemComponent.Name)
	subtitle := dimStyle.Render(fmt.Sprintf("Challenge #%d  %s", c.ChallengeID(), c))
	status := statusStyle(v.SystemComponent.Status).Bold(true).Render(strings.ToUpper(v.SystemComponent.Status))
	header := title + "\n" + subtitle + "\n\n" + status
	if commit != "" {
		header += "\n" + faintStyle.Render("at "+commit)
	}
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	// ── Result ──
	if v.Valid {
		fmt.Fprintf(&b, "  %s %s\n", passStyle.Render("●"), v.Message)
	} else if len(v.Issues) > 0 {
		fmt.Fprintf(&b, "  %s  %s\n\n",
			titleStyle.Render("Issues to address"),
			failStyle.Bold(true).Render(fmt.Sprintf("%d", len(v.Issues))),
		)
		for _, issue := range v.Issues {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("●"), issue)
		}
	} else {
		fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render("●"), v.Message)
	}
	fmt.Fprintf(&b, "    %s\n", hintStyle.Render(v.SystemComponent.Description))

	// ── Details ──
	if len(v.Details) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Details") + "\n")
		for _, k := range sortedKeys(v.Details) {
			fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(padRight(k, 34)), formatValue(v.Details[k]))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func statusStyle(status string) lipgloss.Style {
	if status == domain.StatusNormal {
		return passStyle
	}
	return failStyle
}

func formatValue(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return passStyle.Render("yes")
		}
		return failStyle.Render("no")
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}

func sortedKeys(d domain.Details) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

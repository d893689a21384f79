package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shellcon/aquacheck/internal/domain"
)

// RenderCatalog renders the challenge listing with a solved-progress bar.
func RenderCatalog(cat domain.Catalog) string {
	var b strings.Builder

	title := headerStyle.Render("ShellCon Aquarium Lab")
	progress := fmt.Sprintf("%d / %d solved", cat.Solved, cat.Total)
	b.WriteString(boxStyle.Render(title + "\n\n" + titleStyle.Render(progress) + "\n" + coloredBar(cat.Solved, cat.Total, 30)))
	b.WriteString("\n\n")

	for i, ch := range cat.Challenges {
		icon := failStyle.Render("●")
		if ch.Status == domain.StatusNormal {
			icon = passStyle.Render("●")
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			icon,
			titleStyle.Render(fmt.Sprintf("#%d %s", ch.ID, ch.Title)),
			dimStyle.Render(string(ch.Category)),
		)
		fmt.Fprintf(&b, "      %s\n", faintStyle.Render(fmt.Sprintf("%s  %s  %s()", ch.Service, ch.File, ch.Function)))
		fmt.Fprintf(&b, "      %s\n", hintStyle.Render(ch.Hint))
		if i < len(cat.Challenges)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

func coloredBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = max(0, min(done*width/total, width))
	}
	empty := width - filled

	color := warning
	if total > 0 && done == total {
		color = success
	}
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

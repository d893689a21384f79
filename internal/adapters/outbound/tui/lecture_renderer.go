package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/shellcon/aquacheck/internal/domain"
)

// LectureWidth is the word-wrap column for rendered lectures.
const LectureWidth = 80

// RenderLecture renders a challenge's lecture markdown for the terminal,
// optionally followed by its solution. An empty style picks a style from
// the terminal background.
func RenderLecture(ch domain.Challenge, withSolution bool, style string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStylePath(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(LectureWidth))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}

	var md strings.Builder
	md.WriteString(ch.Solution.Lecture)
	if withSolution {
		fmt.Fprintf(&md, "\n\n## Solution\n\n```rust\n%s\n```\n\n%s\n", ch.Solution.Code, ch.Solution.Explanation)
	}

	out, err := r.Render(md.String())
	if err != nil {
		return "", fmt.Errorf("rendering lecture for challenge #%d: %w", ch.ID, err)
	}

	header := boxStyle.Render(headerStyle.Render(fmt.Sprintf("#%d %s", ch.ID, ch.Title)) + "\n" +
		dimStyle.Render(fmt.Sprintf("%s  %s  %s()", ch.Service, ch.File, ch.Function)))
	return header + "\n" + out, nil
}

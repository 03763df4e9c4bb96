package ui

import (
	"fmt"

	"firespread/internal/core"
)

// lineKind selects the colour a HUD line is drawn with.
type lineKind int

const (
	lineTitle lineKind = iota
	lineHeader
	lineValue
	lineHint
)

type hudLine struct {
	kind lineKind
	text string
}

var keyHints = []string{
	"space  pause/resume",
	"n      single step",
	"r      restart run",
	"s      new seed",
	"+/-    speed",
	"1      vegetation",
	"2      wind",
	"q      quit",
}

// hudLines lays out the panel text top to bottom: the title, the live status,
// every parameter group and the key bindings.
func hudLines(title string, status []core.Parameter, snap core.ParameterSnapshot) []hudLine {
	lines := []hudLine{{kind: lineTitle, text: title}}
	if len(status) > 0 {
		lines = append(lines, hudLine{kind: lineHeader, text: "Status"})
		for _, p := range status {
			lines = append(lines, hudLine{kind: lineValue, text: formatParam(p)})
		}
	}
	for _, g := range snap.Groups {
		if len(g.Params) == 0 {
			continue
		}
		lines = append(lines, hudLine{kind: lineHeader, text: g.Name})
		for _, p := range g.Params {
			lines = append(lines, hudLine{kind: lineValue, text: formatParam(p)})
		}
	}
	lines = append(lines, hudLine{kind: lineHeader, text: "Keys"})
	for _, h := range keyHints {
		lines = append(lines, hudLine{kind: lineHint, text: h})
	}
	return lines
}

func formatParam(p core.Parameter) string {
	return fmt.Sprintf("%-12s %s", truncate(p.Label, 12), p.Value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

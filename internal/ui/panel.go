package ui

import (
	"fmt"
	"strings"

	"wireworld/internal/core"
)

// PanelLines flattens a parameter snapshot into the rows shown by the HUD
// side panel: a heading per group, then one "label  value" row per parameter.
func PanelLines(title string, snap core.ParameterSnapshot) []string {
	lines := []string{title}
	if len(snap.Groups) == 0 {
		return append(lines, "", "No parameters")
	}
	for _, g := range snap.Groups {
		heading := strings.ToUpper(g.Name)
		if g.Summary != "" {
			heading += "  " + g.Summary
		}
		lines = append(lines, "", heading)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("%-14s %s", p.Label, p.Value))
		}
	}
	return lines
}

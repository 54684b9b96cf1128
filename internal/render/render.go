// Package render turns the index's diagnostic structures into terminal
// text. The tree produces pure data (Levels, Report); everything about
// how that data looks — layout, separators, color — lives here, so the
// core never writes to a console.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cabewaldrop/ordex/internal/index"
)

var (
	levelLabel = color.New(color.FgCyan, color.Bold)
	separator  = color.New(color.FgYellow)
	okMark     = color.New(color.FgGreen, color.Bold)
	failMark   = color.New(color.FgRed, color.Bold)
)

// Levels formats a breadth-first dump, one line per level. Keys within a
// node are comma-joined; nodes on a level are separated by " | " so both
// node and level boundaries stay visible:
//
//	level 0: [ 10 ]
//	level 1: [ 5,7 | 17,20 ]
func Levels(levels []index.Level) string {
	if len(levels) == 0 {
		return "index is empty\n"
	}

	var b strings.Builder
	for _, lvl := range levels {
		nodes := make([]string, 0, len(lvl.Nodes))
		for _, keys := range lvl.Nodes {
			parts := make([]string, len(keys))
			for i, k := range keys {
				parts[i] = fmt.Sprintf("%d", k)
			}
			nodes = append(nodes, strings.Join(parts, ","))
		}
		fmt.Fprintf(&b, "%s [ %s ]\n",
			levelLabel.Sprintf("level %d:", lvl.Depth),
			strings.Join(nodes, separator.Sprint(" | ")))
	}
	return b.String()
}

// Report formats a validation report as a single line.
func Report(rep index.Report) string {
	if rep.Valid {
		if rep.LeafLevel < 0 {
			return okMark.Sprint("valid") + " (empty)\n"
		}
		return okMark.Sprint("valid") + fmt.Sprintf(" (leaves at depth %d)\n", rep.LeafLevel)
	}
	return failMark.Sprint("INVALID") + ": " + rep.Message + "\n"
}

// Stats formats the size line shown by the REPL after mutations.
func Stats(t *index.Tree) string {
	return fmt.Sprintf("order=%d keys=%d height=%d\n", t.Order(), t.Len(), t.Height())
}

// Package table renders pterm tables the same way across commands.
package table

import "github.com/pterm/pterm"

// PrintTableNoPad renders rows as a table without outer padding. The first row
// is the header when hasHeader is set.
func PrintTableNoPad(rows pterm.TableData, hasHeader bool) {
	t := pterm.DefaultTable.WithData(rows).WithLeftAlignment()
	if hasHeader {
		t = t.WithHasHeader()
	}
	_ = t.Render()
}

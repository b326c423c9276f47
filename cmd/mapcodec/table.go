package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// renderKV renders two-column key/value rows without a header, the layout
// every info section uses.
func renderKV(title string, rows [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}

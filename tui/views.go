package tui

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/tslocum/cview"
	"github.com/dustin/go-humanize"
	"github.com/redjax/fileops/scan"
)

func (a *App) replaceHomeWithTilde(p string) string {
	if after, ok := strings.CutPrefix(p, a.userHomeDir); ok {
		p = "~" + after
	}
	return p
}

func (a *App) updateStatus() {
	target := a.replaceHomeWithTilde(a.results.ScanTarget())

	when := "not stamped"
	if t, ok := a.results.Timestamp(); ok {
		when = humanize.Time(t)
	}

	status := fmt.Sprintf("[white] %s | Dirs: %s | Files: %s | Scanned: %s ",
		target,
		humanize.Comma(int64(a.results.CountDirs())),
		humanize.Comma(int64(a.results.CountFiles())),
		when,
	)
	a.header.SetText(status)

	a.footer.SetText(" ↑/↓ j/k: Navigate  i: Details  t: Theme  q: Quit ")
}

func (a *App) buildTable() *cview.Table {
	theme := a.currentTheme
	table := a.table
	table.Clear()

	for row, item := range a.rows {
		kind, err := item.Kind()
		if err != nil {
			kind = "?"
		}

		kindCell := cview.NewTableCell(fmt.Sprintf(" %-4s ", kind))
		kindCell.SetTextColor(theme.aqua)
		kindCell.SetAlign(cview.AlignLeft)
		kindCell.SetReference(item)
		table.SetCell(row, 0, kindCell)

		sizeCell := cview.NewTableCell(fmt.Sprintf(" %s ", item.SizeHuman()))
		sizeCell.SetTextColor(theme.sizeFg)
		sizeCell.SetAlign(cview.AlignRight)
		table.SetCell(row, 1, sizeCell)

		modified := "-"
		if t, err := item.ModifiedAt(); err == nil {
			modified = humanize.Time(t)
		}
		modCell := cview.NewTableCell(" " + modified)
		modCell.SetTextColor(theme.gray)
		modCell.SetAlign(cview.AlignLeft)
		table.SetCell(row, 2, modCell)

		pathCell := cview.NewTableCell(a.replaceHomeWithTilde(item.Path()))
		pathCell.SetTextColor(theme.fg)
		pathCell.SetAlign(cview.AlignLeft)
		pathCell.SetExpansion(1)
		table.SetCell(row, 3, pathCell)
	}

	table.SetBorder(false)
	table.SetBorders(false)
	table.SetSelectable(true, false)
	table.SetSeparator(' ')

	return table
}

func (a *App) showItemDetail() {
	if a.table == nil {
		return
	}

	row, _ := a.table.GetSelection()
	cell := a.table.GetCell(row, 0) // the reference is always bound to column 0
	if cell == nil {
		return
	}

	item, ok := cell.GetReference().(*scan.Entity)
	if !ok {
		return
	}

	var detail strings.Builder
	fmt.Fprintf(&detail, "Path: %s\n", item.Path())
	fmt.Fprintf(&detail, "Name: %s\n", item.Name())
	fmt.Fprintf(&detail, "Parent: %s\n", item.ParentDir())
	if kind, err := item.Kind(); err == nil {
		fmt.Fprintf(&detail, "Type: %s\n", kind)
	}
	fmt.Fprintf(&detail, "Size: %s\n", item.SizeHuman())
	if t, err := item.CreatedAt(); err == nil {
		fmt.Fprintf(&detail, "Created: %s\n", t.Format(time.RFC3339))
	}
	if t, err := item.ModifiedAt(); err == nil {
		fmt.Fprintf(&detail, "Modified: %s (%s)\n", t.Format(time.RFC3339), humanize.Time(t))
	}

	a.detailModal.SetText(detail.String())
	a.showDetail = true
	a.app.SetRoot(a.detailModal, false)
}

// Package tui is a read-only terminal browser for scan results.
package tui

import (
	"fmt"
	"log"
	"os"

	"codeberg.org/tslocum/cview"
	"github.com/redjax/fileops/scan"
)

type App struct {
	app *cview.Application

	header      *cview.TextView
	footer      *cview.TextView
	table       *cview.Table
	panels      *cview.Panels
	flex        *cview.Flex
	detailModal *cview.Modal
	themeModal  *cview.Modal

	results *scan.ResultSet
	rows    []*scan.Entity

	showDetail bool
	showTheme  bool

	userHomeDir  string
	currentTheme Theme
}

func defaultTheme() Theme {
	return themes["nord"]
}

func (a *App) switchTheme(themeName string) {
	if th, ok := themes[themeName]; ok {
		a.currentTheme = th
	}
}

func (a *App) applyTheme() {
	theme := a.currentTheme

	a.header.SetBackgroundColor(theme.headerBg)
	a.header.SetTitleColor(theme.headerFg)
	a.header.SetTextColor(theme.headerFg)

	a.footer.SetBackgroundColor(theme.footerBg)
	a.footer.SetTitleColor(theme.footerFg)
	a.footer.SetTextColor(theme.footerFg)

	a.detailModal.SetBackgroundColor(theme.modalBg)
	a.detailModal.SetTextColor(theme.modalFg)
	a.detailModal.SetButtonBackgroundColor(theme.buttonBg)
	a.detailModal.SetButtonTextColor(theme.buttonFg)

	a.themeModal.SetBackgroundColor(theme.modalBg)
	a.themeModal.SetTextColor(theme.modalFg)
	a.themeModal.SetButtonBackgroundColor(theme.buttonBg)
	a.themeModal.SetButtonTextColor(theme.buttonFg)

	a.table.SetBackgroundColor(theme.bg)
	a.panels.SetBackgroundColor(theme.bg)

	a.updateStatus()
	a.buildTable()
}

// NewApp builds a browser over one ResultSet. The table is filled once,
// up front: the underlying scan is synchronous and already complete.
func NewApp(results *scan.ResultSet) *App {
	app := cview.NewApplication()

	theme := defaultTheme()

	header := cview.NewTextView()
	header.SetDynamicColors(true)

	footer := cview.NewTextView()
	footer.SetDynamicColors(true)

	detailModal := cview.NewModal()
	detailModal.SetText("")
	detailModal.AddButtons([]string{"Okay"})

	themeModal := cview.NewModal()
	themeModal.SetText("")
	themeNames := getThemeNames()
	themeModal.AddButtons(themeNames)

	panels := cview.NewPanels()
	table := cview.NewTable()
	panels.AddPanel("table", table, true, true)

	a := &App{
		app:          app,
		header:       header,
		footer:       footer,
		table:        table,
		panels:       panels,
		detailModal:  detailModal,
		themeModal:   themeModal,
		results:      results,
		rows:         results.All(),
		currentTheme: theme,
	}

	flex := cview.NewFlex()
	flex.SetDirection(cview.FlexRow)
	flex.AddItem(header, 1, 0, false)
	flex.AddItem(panels, 0, 1, true)
	flex.AddItem(footer, 1, 0, false)
	a.flex = flex

	app.SetInputCapture(a.handleInput)

	detailModal.SetDoneFunc(func(_ int, _ string) {
		a.showDetail = false
		a.app.SetRoot(flex, true)
	})

	themeModal.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		a.showTheme = false
		a.app.SetRoot(flex, true)

		if buttonIndex >= 0 && buttonIndex < len(themeNames) {
			a.switchTheme(buttonLabel)
			a.applyTheme()
		}
	})

	home, err := os.UserHomeDir()
	if err != nil {
		log.Panicln("Error getting home:", err)
	}
	a.userHomeDir = home

	header.SetTextAlign(cview.AlignCenter)
	footer.SetTextAlign(cview.AlignCenter)

	a.app.SetRoot(flex, true)
	a.applyTheme()

	return a
}

func (a *App) showThemeSelector() {
	if a.themeModal == nil {
		return
	}
	theme := a.currentTheme
	text := fmt.Sprintf("Select Theme (Current: [%s]%s[-])", theme.orange.String(), theme.Name)
	a.themeModal.SetText(text)
	a.showTheme = true
	a.app.SetRoot(a.themeModal, false)
}

func (a *App) Run() error {
	return a.app.Run()
}

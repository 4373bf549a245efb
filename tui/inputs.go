package tui

import "github.com/gdamore/tcell/v3"

func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if a.showDetail || a.showTheme {
		// Let modals handle their own input, with vi keys mapped to arrows.
		switch event.Str() {
		case "l":
			return tcell.NewEventKey(tcell.KeyRight, tcell.KeyNames[tcell.KeyRight], tcell.ModNone)
		case "h":
			return tcell.NewEventKey(tcell.KeyLeft, tcell.KeyNames[tcell.KeyLeft], tcell.ModNone)
		}

		return event
	}

	switch event.Str() {
	case "j":
		return tcell.NewEventKey(tcell.KeyDown, tcell.KeyNames[tcell.KeyDown], tcell.ModNone)
	case "k":
		return tcell.NewEventKey(tcell.KeyUp, tcell.KeyNames[tcell.KeyUp], tcell.ModNone)
	case "q", "Q":
		a.app.Stop()
		return nil
	case "i", "I":
		a.showItemDetail()
	case "t", "T":
		a.showThemeSelector()
	}

	return event
}

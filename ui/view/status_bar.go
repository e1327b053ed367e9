package view

import (
	"github.com/soocke/parking-watch-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the current mode and a one-line summary below the stage.
type StatusBar interface {
	SetMode(text string)
	SetStatus(text string)
}

type statusBar struct {
	modeLbl   *TLabelWidget
	statusLbl *TLabelWidget
}

// NewStatusBar creates the mode and status labels at (row, 0) and (row, 1).
func NewStatusBar(row int) StatusBar {
	s := &statusBar{
		modeLbl:   TLabel(Style(theme.StyleModeLabel), Txt("Mode: -"), Width(18)),
		statusLbl: TLabel(Style(theme.StyleStatusLabel), Txt("")),
	}
	Grid(s.modeLbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	Grid(s.statusLbl, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	return s
}

func (s *statusBar) SetMode(text string) {
	if s == nil || s.modeLbl == nil {
		return
	}
	s.modeLbl.Configure(Txt("Mode: " + text))
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}

package theme

// Styling for the parking watch window: a small palette and the two status
// label styles used below the stage.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines the semantic colors used across widgets.
const (
	ColorBg      = "#f7f9fb" // app background
	ColorSurface = "#ffffff"
	ColorAccent  = "#10b981" // matches the free banner
	ColorText    = "#1e293b"
)

// style names used with Style("mode.TLabel") etc.
const (
	StyleModeLabel   = "mode.TLabel"
	StyleStatusLabel = "status.TLabel"
)

// InitStyles activates the base theme and configures the label styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StyleModeLabel,
		Foreground("white"),
		Background(ColorAccent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(ColorText),
		Background(ColorSurface),
		Padding("4p 2p"),
	)
}

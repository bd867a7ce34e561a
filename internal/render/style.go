package render

import "github.com/johnfercher/maroto/v2/pkg/props"

var (
	colorInk      = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorMuted    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorFaint    = &props.Color{Red: 203, Green: 213, Blue: 225}
	colorAccent   = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorAccentRed = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorBand     = &props.Color{Red: 241, Green: 245, Blue: 249}
)

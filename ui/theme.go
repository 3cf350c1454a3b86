// Package ui draws the screens that sit on top of the world: the dialog
// box, the HUD, the combat panels and the pause menu pieces.
package ui

import (
	"image/color"

	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	White  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Yellow = color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	Red    = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	Green  = color.NRGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	Orange = color.NRGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	Gray   = color.NRGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
)

// Face is the shared basicfont face. Widgets take its address.
var Face text.Face = text.NewGoXFace(basicfont.Face7x13)

// glyphWidth is the advance of one basicfont rune at scale 1.
const glyphWidth = 7

func panelImage(alpha uint8) *imageui.NineSlice {
	return imageui.NewNineSliceColor(color.NRGBA{A: alpha})
}

func newButton(label string, idle color.NRGBA, onClick func()) *widget.Button {
	pressed := idle
	pressed.A = 0xc0
	img := &widget.ButtonImage{
		Idle:     imageui.NewNineSliceColor(idle),
		Hover:    imageui.NewNineSliceColor(lighten(idle)),
		Pressed:  imageui.NewNineSliceColor(pressed),
		Disabled: imageui.NewNineSliceColor(color.NRGBA{R: idle.R / 2, G: idle.G / 2, B: idle.B / 2, A: 0x80}),
	}
	return widget.NewButton(
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(label, &Face, &widget.ButtonTextColor{Idle: White, Disabled: Gray}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func lighten(c color.NRGBA) color.NRGBA {
	up := func(v uint8) uint8 {
		if v > 0xff-0x20 {
			return 0xff
		}
		return v + 0x20
	}
	return color.NRGBA{R: up(c.R), G: up(c.G), B: up(c.B), A: c.A}
}

func newText(label string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &Face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// DrawText draws s with its top-left corner at x,y.
func DrawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = Face.Metrics().HAscent + Face.Metrics().HDescent + 2
	text.Draw(screen, s, Face, op)
}

// DrawTextCentered centers s horizontally on x.
func DrawTextCentered(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, Face, 0)
	DrawText(screen, s, x-w*scale/2, y, scale, clr)
}

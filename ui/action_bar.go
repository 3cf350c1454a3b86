package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// Action is one button on an ActionBar.
type Action struct {
	Label   string
	Color   color.NRGBA
	OnClick func()
}

// ActionBar is a centered row of buttons that can be disabled as a group.
type ActionBar struct {
	ui      *ebitenui.UI
	buttons []*widget.Button
}

func NewActionBar(y int, actions ...Action) *ActionBar {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(30),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: y}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	bar := &ActionBar{}
	for _, a := range actions {
		btn := newButton(a.Label, a.Color, a.OnClick)
		bar.buttons = append(bar.buttons, btn)
		row.AddChild(btn)
	}
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(row)
	bar.ui = &ebitenui.UI{Container: root}
	return bar
}

func (b *ActionBar) SetEnabled(enabled bool) {
	for _, btn := range b.buttons {
		btn.GetWidget().Disabled = !enabled
	}
}

func (b *ActionBar) Update() {
	b.ui.Update()
}

func (b *ActionBar) Draw(screen *ebiten.Image) {
	b.ui.Draw(screen)
}

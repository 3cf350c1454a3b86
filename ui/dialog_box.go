package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialog"
)

const (
	dialogMargin  = 20
	dialogHeight  = 150
	dialogPadding = 20

	ContinueHint = "Press SPACE to continue or ESC to close"
	ChoiceHint   = "Press 1-9 or click a choice"
)

// Wrap breaks s into lines no wider than width runes.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// DialogBox is the bottom-of-screen conversation panel. Choices are
// clickable buttons that report their 0-based index.
type DialogBox struct {
	ui       *ebitenui.UI
	panel    *widget.Container
	speaker  *widget.Text
	body     *widget.Text
	hint     *widget.Text
	choices  *widget.Container
	onSelect func(int)

	node    *dialog.Node
	columns int
}

func NewDialogBox(onSelect func(int)) *DialogBox {
	width := common.BaseWidth - 2*dialogMargin
	b := &DialogBox{
		onSelect: onSelect,
		columns:  (width - 2*dialogPadding) / glyphWidth,
	}

	b.speaker = newText("", Yellow)
	b.body = newText("", White)
	b.hint = newText("", Yellow)
	b.choices = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	b.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImage(230)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: dialogPadding, Right: dialogPadding}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, dialogHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	b.panel.AddChild(b.speaker)
	b.panel.AddChild(b.body)
	b.panel.AddChild(b.choices)
	b.panel.AddChild(b.hint)
	b.panel.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(b.panel)
	b.ui = &ebitenui.UI{Container: root}
	return b
}

// Sync mirrors the session into the widgets. Choice buttons are rebuilt
// only when the node changes.
func (b *DialogBox) Sync(s *dialog.Session, speaker string) {
	if s == nil || !s.Active() {
		b.hide()
		return
	}
	b.panel.GetWidget().Visibility = widget.Visibility_Show
	b.speaker.Label = speaker
	b.body.Label = Wrap(s.Text(), b.columns)

	node := s.Node()
	if node != b.node {
		b.node = node
		b.choices.RemoveChildren()
		for i, label := range s.ChoiceLabels() {
			b.choices.AddChild(newButton(label, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xcc}, func() {
				if b.onSelect != nil {
					b.onSelect(i)
				}
			}))
		}
		b.panel.RequestRelayout()
	}

	switch {
	case s.Revealing():
		b.hint.Label = ""
	case node.HasChoices():
		b.hint.Label = ChoiceHint
	default:
		b.hint.Label = ContinueHint
	}
}

func (b *DialogBox) hide() {
	if b.node != nil {
		b.node = nil
		b.choices.RemoveChildren()
	}
	b.panel.GetWidget().Visibility = widget.Visibility_Hide
}

func (b *DialogBox) Visible() bool {
	return b.panel.GetWidget().Visibility == widget.Visibility_Show
}

func (b *DialogBox) Update() {
	b.ui.Update()
}

func (b *DialogBox) Draw(screen *ebiten.Image) {
	b.ui.Draw(screen)
}

package ui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/overworld/combat"
)

const ContinuePrompt = "Press SPACE to continue"

// ResultTitle is the banner text and color for an outcome.
func ResultTitle(o combat.Outcome) (string, color.NRGBA) {
	switch o {
	case combat.OutcomeVictory:
		return "VICTORY!", Green
	case combat.OutcomeEscaped:
		return "ESCAPED!", Orange
	default:
		return "DEFEAT!", Red
	}
}

// RewardLines lists what a victory pays out.
func RewardLines(res combat.Result) []string {
	if res.Outcome != combat.OutcomeVictory {
		return nil
	}
	var lines []string
	if res.Rewards.Gold > 0 {
		lines = append(lines, fmt.Sprintf("+%d gold", res.Rewards.Gold))
	}
	if res.Rewards.Experience > 0 {
		lines = append(lines, fmt.Sprintf("+%d experience", res.Rewards.Experience))
	}
	for _, item := range res.Rewards.Items {
		lines = append(lines, "Found "+item)
	}
	return lines
}

// ResultsPanel is the end-of-combat summary. Continue is clickable as well
// as bound to SPACE by the scene.
type ResultsPanel struct {
	ui *ebitenui.UI
}

func NewResultsPanel(res combat.Result, extra []string, onContinue func()) *ResultsPanel {
	title, titleColor := ResultTitle(res.Outcome)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImage(220)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(400, 200),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(newText(title, titleColor))
	for _, line := range extra {
		panel.AddChild(newText(line, White))
	}
	for _, line := range RewardLines(res) {
		panel.AddChild(newText(line, Yellow))
	}
	panel.AddChild(newButton(ContinuePrompt, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, onContinue))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ResultsPanel{ui: &ebitenui.UI{Container: root}}
}

func (p *ResultsPanel) Update() {
	p.ui.Update()
}

func (p *ResultsPanel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/overworld/player"
)

const (
	TalkPrompt = "Press E to talk"

	hudX     = 50
	hudY     = 50
	hudScale = 1.5
)

// HUDLines is the player panel in the top-left corner.
func HUDLines(p *player.State) []string {
	if p == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Player: %s", p.Name),
		fmt.Sprintf("Health: %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Mana: %d", p.Mana),
		fmt.Sprintf("Speed: %.0f", p.Speed),
		fmt.Sprintf("Gold: %d", p.Gold),
		fmt.Sprintf("Level: %d (%d/%d xp)", p.Level, p.Experience, p.ExperienceToNext()),
	}
}

func DrawHUD(screen *ebiten.Image, p *player.State) {
	lineHeight := 16 * hudScale
	for i, line := range HUDLines(p) {
		y := hudY + float64(i)*lineHeight
		DrawText(screen, line, hudX+1, y+1, hudScale, color.Black)
		DrawText(screen, line, hudX, y, hudScale, White)
	}
}

// DrawPrompt shows the talk prompt centered above a screen position.
func DrawPrompt(screen *ebiten.Image, x, y float64) {
	w := float32(len(TalkPrompt)*glyphWidth + 16)
	vector.DrawFilledRect(screen, float32(x)-w/2, float32(y)-4, w, 21, color.Black, false)
	DrawTextCentered(screen, TalkPrompt, x, y, 1, Yellow)
}

// DrawBar draws a filled bar for value out of maxValue.
func DrawBar(screen *ebiten.Image, x, y, w, h float64, value, maxValue int, fill color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false)
	if maxValue <= 0 || value <= 0 {
		return
	}
	frac := min(float64(value)/float64(maxValue), 1)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*frac), float32(h), fill, false)
}

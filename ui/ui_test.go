package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/player"
)

func TestWrap(t *testing.T) {
	out := Wrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 10, line)
	}
	assert.Equal(t, "unchanged text", Wrap("unchanged text", 0))
}

func TestHUDLines(t *testing.T) {
	p := player.New("Barry")
	p.AddGold(45)

	lines := HUDLines(p)
	require.Len(t, lines, 6)
	assert.Equal(t, "Player: Barry", lines[0])
	assert.Equal(t, "Health: 100/100", lines[1])
	assert.Equal(t, "Speed: 110", lines[3])
	assert.Equal(t, "Gold: 45", lines[4])
	assert.Equal(t, "Level: 1 (0/100 xp)", lines[5])

	assert.Nil(t, HUDLines(nil))
}

func TestResultTitle(t *testing.T) {
	tests := []struct {
		outcome combat.Outcome
		want    string
	}{
		{combat.OutcomeVictory, "VICTORY!"},
		{combat.OutcomeDefeat, "DEFEAT!"},
		{combat.OutcomeEscaped, "ESCAPED!"},
	}
	for _, tc := range tests {
		t.Run(tc.outcome.String(), func(t *testing.T) {
			got, _ := ResultTitle(tc.outcome)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRewardLines(t *testing.T) {
	rewards := combat.Rewards{Gold: 25, Experience: 10, Items: []string{"slime_gel"}}

	won := RewardLines(combat.Result{Outcome: combat.OutcomeVictory, Rewards: rewards})
	assert.Equal(t, []string{"+25 gold", "+10 experience", "Found slime_gel"}, won)

	assert.Empty(t, RewardLines(combat.Result{Outcome: combat.OutcomeDefeat, Rewards: rewards}))
}

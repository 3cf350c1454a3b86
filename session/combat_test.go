package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/player"
)

func TestApplyCombatResult(t *testing.T) {
	tests := []struct {
		name         string
		result       combat.Result
		wantHealth   int
		wantGold     int
		wantDefeated bool
		wantItems    []string
	}{
		{
			name: "victory pays rewards",
			result: combat.Result{
				Outcome:      combat.OutcomeVictory,
				PlayerHealth: 64,
				Rewards:      combat.Rewards{Gold: 25, Experience: 10, Items: []string{"slime_gel"}},
			},
			wantHealth:   64,
			wantGold:     75,
			wantDefeated: true,
			wantItems:    []string{"slime_gel"},
		},
		{
			name:       "defeat leaves one health",
			result:     combat.Result{Outcome: combat.OutcomeDefeat, PlayerHealth: 0, Rewards: combat.Rewards{Gold: 25}},
			wantHealth: 1,
			wantGold:   50,
			wantItems:  []string{},
		},
		{
			name:       "escape keeps health",
			result:     combat.Result{Outcome: combat.OutcomeEscaped, PlayerHealth: 80},
			wantHealth: 80,
			wantGold:   50,
			wantItems:  []string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			p := player.New("Barry")
			p.Gold = 50
			r.SavePlayer(p)

			r.ApplyCombatResult("slime_1", tc.result)

			got, _ := r.LoadPlayer()
			assert.Equal(t, tc.wantHealth, got.Health)
			assert.Equal(t, tc.wantGold, got.Gold)
			assert.Equal(t, tc.wantItems, got.Inventory)
			assert.Equal(t, tc.wantDefeated, r.IsDefeated("slime_1"))
		})
	}
}

func TestApplyCombatResultLevelsUp(t *testing.T) {
	r := NewRegistry()
	r.SavePlayer(player.New(""))

	gained := r.ApplyCombatResult("bandit_1", combat.Result{
		Outcome:      combat.OutcomeVictory,
		PlayerHealth: 100,
		Rewards:      combat.Rewards{Experience: 150},
	})
	assert.Equal(t, 1, gained)

	got, _ := r.LoadPlayer()
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 50, got.Experience)
	assert.Equal(t, "defeated:bandit_1", DefeatedFlag("bandit_1"))
}

package session

import "github.com/milk9111/overworld/combat"

// DefeatedFlag is set once an encounter is won so the NPC stays gone.
func DefeatedFlag(npcID string) string {
	return "defeated:" + npcID
}

// IsDefeated reports whether npcID has been beaten.
func (r *Registry) IsDefeated(npcID string) bool {
	return r.Truthy(DefeatedFlag(npcID))
}

// ApplyCombatResult writes a finished encounter back into the stored
// player. Victory pays the rewards and retires the NPC; a defeat leaves the
// player on 1 health. It returns the levels gained.
func (r *Registry) ApplyCombatResult(npcID string, res combat.Result) int {
	if r == nil {
		return 0
	}
	p := r.PlayerOrNew(true)
	p.SetHealth(res.PlayerHealth)

	gained := 0
	switch res.Outcome {
	case combat.OutcomeVictory:
		p.AddGold(res.Rewards.Gold)
		gained = p.AddExperience(res.Rewards.Experience)
		for _, item := range res.Rewards.Items {
			p.AddItem(item)
		}
		if npcID != "" {
			r.SetFlag(DefeatedFlag(npcID), true)
		}
	case combat.OutcomeDefeat:
		p.Health = 1
	}
	if p.Health <= 0 {
		p.Health = 1
	}
	r.SavePlayer(p)
	return gained
}

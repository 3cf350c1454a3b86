package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/combat/turn"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ui"
)

var turnBackground = color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}

const (
	turnBarWidth  = 300
	turnBarHeight = 20
)

// TurnScene runs the turn-based exchange. The enemy acts on its own after
// a delay; the end-of-fight panel appears after a further delay.
type TurnScene struct {
	d       *Director
	env     *Env
	log     logrus.FieldLogger
	payload CombatPayload

	session *turn.Session
	actions *ui.ActionBar
	timers  *common.Scheduler
	message string

	ended   bool
	results *ui.ResultsPanel
	result  combat.Result
	gained  int
}

func NewTurnScene(d *Director, name string, p Payload) (Scene, error) {
	if p.Combat == nil {
		return nil, errors.New("turn scene needs a combat payload")
	}
	env := d.Env()
	data := p.Combat.Data

	var hero turn.Stats
	if p.Combat.Player != nil {
		hero = turn.Stats{ID: "player", Name: p.Combat.Player.Name, Health: p.Combat.Player.Health}
	}
	enemy := turn.Stats{
		ID:      p.Combat.NPCID,
		Name:    data.EnemyName,
		Health:  data.Health,
		Attack:  data.Attack,
		Defense: data.Defense,
	}
	session, err := turn.NewSession(env.Config.Turn, hero, enemy, env.Rand)
	if err != nil {
		return nil, err
	}

	s := &TurnScene{
		d:       d,
		env:     env,
		log:     env.Log.WithFields(logrus.Fields{"scene": name, "npc": p.Combat.NPCID}),
		payload: *p.Combat,
		session: session,
		timers:  common.NewScheduler(),
	}
	s.message = fmt.Sprintf("%s appears!", session.Enemy().Name())
	s.actions = ui.NewActionBar(350,
		ui.Action{Label: "Attack", Color: ui.Red, OnClick: func() { s.act(turn.ActionAttack) }},
		ui.Action{Label: "Defend", Color: ui.Green, OnClick: func() { s.act(turn.ActionDefend) }},
		ui.Action{Label: "Run", Color: ui.Gray, OnClick: func() { s.act(turn.ActionRun) }},
	)
	s.log.Info("turn combat started")
	return s, nil
}

func (s *TurnScene) act(a turn.Action) {
	if s.ended {
		return
	}
	var (
		entry turn.Entry
		err   error
	)
	switch a {
	case turn.ActionAttack:
		entry, err = s.session.Attack()
	case turn.ActionDefend:
		entry, err = s.session.Defend()
	case turn.ActionRun:
		entry, err = s.session.Run()
	}
	if err != nil {
		s.log.WithError(err).Debug("action ignored")
		return
	}
	s.show(entry)
}

func (s *TurnScene) show(e turn.Entry) {
	s.message = e.Message
	switch {
	case e.Action == turn.ActionAttack && e.Damage > 0:
		s.env.PlaySound("hit")
	case e.Action == turn.ActionRun && !s.session.Ended():
		s.env.PlaySound("miss")
	}
}

func (s *TurnScene) Update() error {
	s.timers.Advance(tick)
	if s.results != nil {
		s.results.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.finish()
		}
		return nil
	}
	if s.ended {
		return nil
	}

	playerTurn := s.session.Turn() == turn.TurnPlayer
	s.actions.SetEnabled(playerTurn)
	s.actions.Update()
	if playerTurn {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
			s.act(turn.ActionAttack)
		case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
			s.act(turn.ActionDefend)
		case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
			s.act(turn.ActionRun)
		}
	}
	for _, e := range s.session.Update(tick) {
		s.show(e)
	}

	if s.session.Ended() {
		s.end()
	}
	return nil
}

func (s *TurnScene) end() {
	s.ended = true
	s.actions.SetEnabled(false)
	p := s.payload

	res := s.session.Result(p.NPCID, p.Data.Rewards)
	s.result = res
	s.gained = s.env.Registry.ApplyCombatResult(p.NPCID, res)
	switch res.Outcome {
	case combat.OutcomeVictory:
		s.message = "Victory! You defeated the enemy!"
		s.env.PlaySound("victory")
	case combat.OutcomeEscaped:
		s.message = "You successfully escaped!"
	default:
		s.message = "Defeat! You were defeated..."
	}
	s.log.WithField("outcome", res.Outcome).Info("turn combat ended")

	delay := s.env.Config.Encounter.ResultsDelay
	s.timers.After(delay, func() {
		s.results = ui.NewResultsPanel(res, nil, s.finish)
	})
}

func (s *TurnScene) finish() {
	p := s.payload
	pos := p.ReturnPosition
	s.d.Start(p.ReturnScene, Payload{
		TargetPosition: &pos,
		Result:         &CombatReturn{NPCID: p.NPCID, Result: s.result, LevelsGained: s.gained},
	})
}

func (s *TurnScene) Exit() {
	s.timers.Clear()
}

func (s *TurnScene) Draw(screen *ebiten.Image) {
	screen.Fill(turnBackground)
	centerX := float64(common.BaseWidth) / 2
	barX := centerX - turnBarWidth/2

	enemy, hero := s.session.Enemy(), s.session.Player()
	ui.DrawTextCentered(screen, enemy.Name(), centerX, 80, 2, ui.Red)
	ui.DrawBar(screen, barX, 120, turnBarWidth, turnBarHeight, enemy.HP(), enemy.MaxHP(), ui.Red)
	ui.DrawTextCentered(screen, fmt.Sprintf("%d/%d", enemy.HP(), enemy.MaxHP()), centerX, 124, 1, ui.White)

	ui.DrawTextCentered(screen, s.message, centerX, 200, 2, ui.White)
	ui.DrawTextCentered(screen, s.turnLabel(), centerX, 250, 2, ui.Yellow)

	ui.DrawTextCentered(screen, hero.Name(), centerX, 500, 2, ui.Green)
	ui.DrawBar(screen, barX, 540, turnBarWidth, turnBarHeight, hero.HP(), hero.MaxHP(), ui.Green)
	ui.DrawTextCentered(screen, fmt.Sprintf("%d/%d", hero.HP(), hero.MaxHP()), centerX, 544, 1, ui.White)
	if hero.Guarding() {
		ui.DrawTextCentered(screen, "Guarding", centerX, 570, 1, ui.Yellow)
	}

	if !s.ended {
		s.actions.Draw(screen)
		ui.DrawTextCentered(screen, "1 Attack   2 Defend   3 Run", centerX, 410, 1, ui.Gray)
	}
	if s.results != nil {
		s.results.Draw(screen)
	}
}

func (s *TurnScene) turnLabel() string {
	switch s.session.Turn() {
	case turn.TurnPlayer:
		return "Your turn"
	case turn.TurnEnemy:
		return "Enemy's turn"
	default:
		return ""
	}
}

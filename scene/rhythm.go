package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/combat/rhythm"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/ui"
)

var (
	laneKeys   = []ebiten.Key{ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF}
	laneColors = []color.NRGBA{
		{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
		{R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
		{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
		{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
	}
	rhythmBackground = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
)

const noteRadius = 20

// RhythmScene runs the timed note-matching encounter.
type RhythmScene struct {
	d       *Director
	env     *Env
	log     logrus.FieldLogger
	payload CombatPayload

	session    *rhythm.Session
	maxHP      int
	maxEnemyHP int

	// fx holds floating hit and miss text.
	fx      *ecs.World
	ttl     *system.TTLSystem
	render  *system.RenderSystem
	results *ui.ResultsPanel
	result  combat.Result
	gained  int
}

func NewRhythmScene(d *Director, name string, p Payload) (Scene, error) {
	if p.Combat == nil {
		return nil, errors.New("rhythm scene needs a combat payload")
	}
	env := d.Env()
	cfg := env.Config.Rhythm
	if p.Combat.Player != nil && p.Combat.Player.Health > 0 {
		cfg.PlayerHealth = p.Combat.Player.Health
	}
	if p.Combat.Data.Health > 0 {
		cfg.EnemyHealth = p.Combat.Data.Health
	}

	session := rhythm.NewSession(cfg, env.Rand)
	if err := session.Start(); err != nil {
		return nil, fmt.Errorf("start rhythm session: %w", err)
	}
	s := &RhythmScene{
		d:          d,
		env:        env,
		log:        env.Log.WithFields(logrus.Fields{"scene": name, "npc": p.Combat.NPCID}),
		payload:    *p.Combat,
		session:    session,
		maxHP:      session.PlayerHealth(),
		maxEnemyHP: session.EnemyHealth(),
		fx:         ecs.NewWorld(),
		ttl:        system.NewTTLSystem(),
		render:     system.NewRenderSystem(),
	}
	s.log.Info("rhythm combat started")
	return s, nil
}

func (s *RhythmScene) Update() error {
	s.ttl.Update(s.fx)
	if s.results != nil {
		s.results.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.finish()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.session.Quit()
	}
	for lane, key := range laneKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		evt, err := s.session.Press(lane)
		if err != nil {
			continue
		}
		s.feedback(evt)
	}
	for _, evt := range s.session.Advance(tick) {
		s.feedback(evt)
	}

	if s.session.State() == rhythm.StateEnded {
		s.end()
	}
	return nil
}

func (s *RhythmScene) feedback(evt rhythm.Event) {
	cfg := s.session.Config()
	x := float64(common.BaseWidth) / 2
	if evt.Lane >= 0 && evt.Lane < len(cfg.LaneX) {
		x = cfg.LaneX[evt.Lane]
	}
	switch evt.Kind {
	case rhythm.EventHit:
		s.env.PlaySound("hit")
		s.float(fmt.Sprintf("+%d", evt.Score), x, cfg.TargetLineY-60, ui.Green)
	case rhythm.EventMissed, rhythm.EventWhiff:
		s.env.PlaySound("miss")
		s.float("Miss", x, cfg.TargetLineY-60, ui.Red)
	}
}

func (s *RhythmScene) float(msg string, x, y float64, clr color.Color) {
	if _, err := entity.NewPopup(s.fx, msg, x-float64(len(msg))*7, y, clr); err != nil {
		s.log.WithError(err).Debug("feedback text failed")
	}
}

// end applies the outcome to the registry once and shows the summary.
func (s *RhythmScene) end() {
	p := s.payload
	res := combat.Result{
		Outcome:      s.session.Outcome(),
		PlayerHealth: s.session.PlayerHealth(),
		EnemyID:      p.NPCID,
	}
	if res.Outcome == combat.OutcomeVictory {
		res.Rewards = p.Data.Rewards
		s.env.PlaySound("victory")
	}
	s.result = res
	s.gained = s.env.Registry.ApplyCombatResult(p.NPCID, res)
	s.log.WithFields(logrus.Fields{
		"outcome": res.Outcome,
		"reason":  s.session.Reason(),
		"score":   s.session.Score(),
	}).Info("rhythm combat ended")

	s.results = ui.NewResultsPanel(res, []string{
		fmt.Sprintf("Final Score: %d", s.session.Score()),
		fmt.Sprintf("Max Combo: %d", s.session.MaxCombo()),
	}, s.finish)
}

func (s *RhythmScene) finish() {
	p := s.payload
	pos := p.ReturnPosition
	s.d.Start(p.ReturnScene, Payload{
		TargetPosition: &pos,
		Result:         &CombatReturn{NPCID: p.NPCID, Result: s.result, LevelsGained: s.gained},
	})
}

func (s *RhythmScene) Exit() {}

func (s *RhythmScene) Draw(screen *ebiten.Image) {
	screen.Fill(rhythmBackground)
	cfg := s.session.Config()
	centerX := float64(common.BaseWidth) / 2

	for _, x := range cfg.LaneX {
		vector.StrokeLine(screen, float32(x), float32(cfg.SpawnY), float32(x), float32(cfg.TargetLineY), 2, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false)
	}
	vector.StrokeLine(screen, 100, float32(cfg.TargetLineY), 700, float32(cfg.TargetLineY), 4, color.White, false)
	for lane, x := range cfg.LaneX {
		if lane < len(laneKeys) {
			ui.DrawTextCentered(screen, laneKeys[lane].String(), x, cfg.TargetLineY+20, 2, ui.White)
		}
	}

	for _, n := range s.session.Visible() {
		if n.Lane >= len(cfg.LaneX) {
			continue
		}
		clr := laneColors[n.Lane%len(laneColors)]
		vector.DrawFilledCircle(screen, float32(cfg.LaneX[n.Lane]), float32(s.session.NoteY(n)), noteRadius, clr, true)
	}

	ui.DrawText(screen, fmt.Sprintf("Score: %d", s.session.Score()), 50, 50, 2, ui.White)
	ui.DrawText(screen, fmt.Sprintf("Combo: %d", s.session.Combo()), 50, 80, 2, ui.Yellow)
	ui.DrawText(screen, fmt.Sprintf("Time: %.0fs", s.session.Remaining().Seconds()), 50, 110, 2, ui.White)

	ui.DrawTextCentered(screen, s.enemyName(), centerX, 30, 2, ui.Red)
	ui.DrawTextCentered(screen, "Hit the notes as they reach the line!\nA S D F keys", centerX, 60, 1, ui.Gray)

	ui.DrawBar(screen, 760, 120, 200, 20, s.session.PlayerHealth(), s.maxHP, ui.Green)
	ui.DrawText(screen, "Player", 760, 100, 1, ui.White)
	ui.DrawBar(screen, 760, 170, 200, 20, s.session.EnemyHealth(), s.maxEnemyHP, ui.Red)
	ui.DrawText(screen, "Enemy", 760, 150, 1, ui.White)

	s.render.Draw(s.fx, screen)
	if s.results != nil {
		s.results.Draw(screen)
	}
}

func (s *RhythmScene) enemyName() string {
	if s.payload.Data.EnemyName != "" {
		return s.payload.Data.EnemyName
	}
	return "Enemy"
}

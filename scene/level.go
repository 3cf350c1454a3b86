package scene

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialog"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/player"
	"github.com/milk9111/overworld/ui"
)

var choiceKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// LevelScene is a walkable level: the world, its systems, and the dialog
// session for whoever the player is talking to.
type LevelScene struct {
	d    *Director
	env  *Env
	name string
	def  levels.Scene
	lvl  *levels.Level
	log  logrus.FieldLogger

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	render    *system.RenderSystem
	debug     *system.DebugOverlay
	loaded    *entity.Loaded
	bg        color.Color

	player  *player.State
	dialogs *dialog.Controller
	talk    *dialog.Session
	fx      *effects
	box     *ui.DialogBox
	speaker string
	// encounter is the combat NPC whose challenge is on screen.
	encounter string
	talking   bool
	leaving   bool
}

// NewLevelScene is the constructor the director uses for every id in the
// scene table.
func NewLevelScene(d *Director, name string, p Payload) (Scene, error) {
	env := d.Env()
	def, err := env.Scenes.Lookup(name)
	if err != nil {
		return nil, err
	}
	s := &LevelScene{
		d:    d,
		env:  env,
		name: name,
		def:  def,
		log:  env.Log.WithField("scene", name),
	}

	lvl, err := levels.LoadLevel(def.Level)
	if err != nil {
		s.log.WithError(err).Error("level failed to load; starting empty")
	} else if errs := levels.Validate(lvl, env.Library.Manifest(), &env.Scenes); len(errs) > 0 {
		for _, verr := range errs {
			s.log.WithError(verr).Warn("level validation")
		}
	}
	s.lvl = lvl
	s.loadDialogs()

	s.player = s.loadPlayer()
	s.fx = &effects{player: s.player, registry: env.Registry, notify: s.popup}
	s.talk = dialog.NewSession(s.fx, env.Config.Dialog.TypewriterInterval)
	s.box = ui.NewDialogBox(s.selectChoice)

	s.world = ecs.NewWorld()
	loaded, err := entity.LoadLevelToWorld(s.world, env.Library, lvl, entity.LevelOptions{
		Spawn:         s.spawn(p),
		Player:        s.player,
		SkipCombatNPC: env.Registry.IsDefeated,
	}, s.log)
	if err != nil {
		return nil, err
	}
	s.loaded = loaded
	if lvl != nil && lvl.BackgroundColor != "" {
		if c, err := entity.ParseHexColor(lvl.BackgroundColor); err == nil {
			s.bg = c
		}
	}

	s.buildSystems()
	s.armCooldown()
	if p.Result != nil {
		s.showCombatReturn(*p.Result)
	}
	s.env.Registry.SavePlayer(s.player)
	return s, nil
}

func (s *LevelScene) loadDialogs() {
	if s.def.Dialogs == "" {
		return
	}
	file, err := levels.LoadDialogs(s.def.Dialogs)
	if err != nil {
		s.log.WithError(err).Warn("dialogs failed to load; using built-in dialogs")
		file = nil
	}
	s.dialogs = dialog.NewController(file, s.log)
}

func (s *LevelScene) loadPlayer() *player.State {
	if p, ok := s.env.Registry.LoadPlayer(); ok {
		p.X, p.Y = 0, 0
		return p
	}
	p := player.New(s.env.Config.Player.Name)
	if s.env.Config.Player.Speed > 0 {
		p.Speed = s.env.Config.Player.Speed
	}
	return p
}

// spawn resolves where the player appears: the remembered open-world
// position first, then the requested target, then the level's own spawn.
func (s *LevelScene) spawn(p Payload) *common.Vec {
	if s.openWorld() {
		if pos, ok := s.env.Registry.TakeLastOpenWorldPosition(); ok {
			return &pos
		}
	}
	if p.TargetPosition != nil {
		pos := *p.TargetPosition
		return &pos
	}
	return nil
}

func (s *LevelScene) openWorld() bool {
	if s.def.WorldType != "" {
		return s.def.WorldType == levels.WorldOpen
	}
	return s.lvl != nil && s.lvl.WorldType == levels.WorldOpen
}

func (s *LevelScene) buildSystems() {
	cfg := s.env.Config
	var exits []levels.Exit
	if s.lvl != nil {
		exits = s.lvl.Exits
	}

	s.physics = system.NewPhysicsSystem()
	s.render = system.NewRenderSystem()
	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		system.NewEncounterSystem(),
		s.physics,
		system.NewDoorSystem(),
		system.NewTransitionSystem(exits, s.openWorld()),
		system.NewInteractionSystem(cfg.Dialog.InteractionDistance),
		system.NewDepthSystem(),
		system.NewAnimationSystem(),
		system.NewFlashSystem(),
		system.NewTTLSystem(),
		system.NewCameraSystem(common.BaseWidth, common.BaseHeight),
		system.NewAudioSystem(s.env.Muted),
		system.NewAutosaveSystem(cfg.Player.AutosaveFrames, s.autosave),
	)
	if s.env.Debug {
		s.debug = system.NewDebugOverlay(s.log)
	}
}

// armCooldown stops a player who spawned on a doorway from being sent
// straight back through it.
func (s *LevelScene) armCooldown() {
	pe := s.loaded.Player
	t, ok := ecs.Get(s.world, pe, component.TransformComponent.Kind())
	if !ok {
		return
	}
	box := common.RectFromCenter(t.X, t.Y, 1, 1)
	if body, ok := ecs.Get(s.world, pe, component.PhysicsBodyComponent.Kind()); ok {
		box = body.Rect(*t)
	}
	system.ArmCooldown(s.world, pe, box)
}

func (s *LevelScene) Update() error {
	s.handleDialogInput()
	s.talk.Update(tick)

	frozen := s.talk.Active() || s.leaving
	s.scheduler.SetFrozen(frozen)
	if pc, ok := ecs.Get(s.world, s.loaded.Player, component.PlayerComponent.Kind()); ok {
		pc.Frozen = frozen
	}
	s.scheduler.Update(s.world)

	for _, evt := range s.world.Events().Drain() {
		s.handleEvent(evt)
	}
	if s.talking && !s.talk.Active() {
		s.talking = false
		s.afterDialog()
	}
	if req, ok := system.TakeSceneChangeRequest(s.world); ok && !s.leaving {
		s.changeScene(req.Target, req.Position, req.SnapshotOpenWorld)
	}

	s.box.Sync(s.talk, s.speaker)
	s.box.Update()
	if s.debug != nil {
		s.debug.Update(s.world)
	}
	return nil
}

func (s *LevelScene) handleDialogInput() {
	if !s.talk.Active() {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.talk.Close()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.talk.Continue()
		return
	}
	for i, key := range choiceKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.selectChoice(i)
			return
		}
	}
}

func (s *LevelScene) selectChoice(i int) {
	if !s.talk.Active() {
		return
	}
	if err := s.talk.Select(i); err != nil {
		s.log.WithError(err).Debug("choice ignored")
		return
	}
	s.env.PlaySound("blip")
}

func (s *LevelScene) handleEvent(evt ecs.Event) {
	switch evt.Kind {
	case ecs.EventTalkRequested:
		id, _ := evt.Data.(string)
		s.startTalk(evt.Entity, id)
	case ecs.EventEncounter:
		id, _ := evt.Data.(string)
		s.startEncounter(evt.Entity, id)
	case ecs.EventDoorOpened, ecs.EventDoorClosed:
		s.log.WithField("building", evt.Data).Debug(string(evt.Kind))
	case ecs.EventPassThroughChanged:
		s.log.WithField("behind", evt.Data).Debug("player depth band changed")
	case ecs.EventInteractionZone:
		s.log.WithField("building", evt.Data).Debug("entered interaction zone")
	}
}

// startTalk opens the NPC's dialog. A scene without a dialog file has no
// controller, and talking there does nothing.
func (s *LevelScene) startTalk(e ecs.Entity, npcID string) {
	if s.dialogs == nil || s.talk.Active() || npcID == "" {
		return
	}
	node := s.dialogs.GetDialog(npcID, dialog.State{Player: s.player, Flags: s.env.Registry})
	s.speaker = dialog.DisplayName(npcID)
	if npc, ok := ecs.Get(s.world, e, component.NPCComponent.Kind()); ok && npc.Name != "" {
		s.speaker = npc.Name
	}
	s.fx.reset()
	if err := s.talk.Start(npcID, node); err != nil {
		s.log.WithError(err).WithField("npc", npcID).Warn("dialog did not start")
		return
	}
	s.talking = true
	s.env.PlaySound("blip")
}

func (s *LevelScene) startEncounter(e ecs.Entity, npcID string) {
	c, ok := ecs.Get(s.world, e, component.CombatNPCComponent.Kind())
	if !ok {
		return
	}
	if s.talk.Active() {
		s.talk.Close()
	}
	data := c.Data
	if data.EnemyID == "" {
		data.EnemyID = npcID
	}
	if data.EnemyName == "" {
		data.EnemyName = c.Name
	}
	s.speaker = c.Name
	s.encounter = npcID
	s.fx.reset()
	if err := s.talk.Start(npcID, dialog.EncounterNode(npcID, c.Name, data)); err != nil {
		s.log.WithError(err).WithField("npc", npcID).Warn("encounter dialog did not start")
		s.encounter = ""
		return
	}
	s.talking = true
}

// afterDialog carries out what the finished conversation asked for.
func (s *LevelScene) afterDialog() {
	s.env.Registry.SavePlayer(s.player)

	if s.encounter != "" {
		npcID := s.encounter
		s.encounter = ""
		if s.fx.combat == nil {
			// Walking away from the challenge counts as running.
			s.flee(npcID)
		}
	}

	switch {
	case s.fx.combat != nil:
		data := *s.fx.combat
		s.fx.reset()
		s.startCombat(data)
	case s.fx.scene != "":
		target := s.fx.scene
		s.fx.reset()
		s.changeScene(target, nil, false)
	}
}

func (s *LevelScene) flee(npcID string) {
	e, ok := s.loaded.CombatNPCs[npcID]
	if !ok {
		return
	}
	if c, ok := ecs.Get(s.world, e, component.CombatNPCComponent.Kind()); ok {
		system.Flee(c, s.fleeCooldown())
	}
}

func (s *LevelScene) fleeCooldown() time.Duration {
	if d := s.env.Config.Encounter.FleeCooldown; d > 0 {
		return d
	}
	return system.FleeRearm
}

func (s *LevelScene) startCombat(data combat.Data) {
	pos, _ := s.PlayerPosition()
	s.syncPlayer()
	s.env.Registry.SavePlayer(s.player)
	s.leaving = true
	s.d.Start(CombatSceneFor(data), Payload{Combat: &CombatPayload{
		Data:           data,
		Player:         s.player.Clone(),
		ReturnScene:    s.name,
		ReturnPosition: pos,
		NPCID:          data.EnemyID,
	}})
}

// changeScene saves the player and hands over to target. Only a move from
// the open world into a room remembers where the player stood.
func (s *LevelScene) changeScene(target string, pos *common.Vec, snapshot bool) {
	if !s.env.Scenes.Has(target) {
		s.log.WithField("target", target).Warn("unknown target scene")
		return
	}
	s.syncPlayer()
	if snapshot && s.openWorld() {
		if def, err := s.env.Scenes.Lookup(target); err == nil && def.WorldType == levels.WorldRoom {
			s.env.Registry.SetLastOpenWorldPosition(common.Vec{X: s.player.X, Y: s.player.Y})
		}
	}
	s.env.Registry.SavePlayer(s.player)
	if err := s.env.Persist(target); err != nil {
		s.log.WithError(err).Warn("save failed")
	}
	s.leaving = true
	s.d.Start(target, Payload{TargetPosition: pos})
}

func (s *LevelScene) showCombatReturn(r CombatReturn) {
	title, clr := ui.ResultTitle(r.Result.Outcome)
	s.popupAt(title, clr, 0)
	for i, line := range ui.RewardLines(r.Result) {
		s.popupAt(line, ui.Yellow, i+1)
	}
	if r.LevelsGained > 0 {
		s.popupAt(fmt.Sprintf("Level up! Now level %d", s.player.Level), ui.Green, len(ui.RewardLines(r.Result))+1)
	}
	if r.Result.Outcome != combat.OutcomeVictory {
		s.flee(r.NPCID)
	}
}

func (s *LevelScene) popup(msg string) {
	s.popupAt(msg, ui.Yellow, 0)
}

func (s *LevelScene) popupAt(msg string, clr color.Color, row int) {
	x := float64(common.BaseWidth)/2 - float64(len(msg))*7
	y := float64(common.BaseHeight)/3 + float64(row)*30
	if _, err := entity.NewPopup(s.world, msg, x, y, clr); err != nil {
		s.log.WithError(err).Debug("popup failed")
	}
}

// syncPlayer copies the live entity state back into the player model.
func (s *LevelScene) syncPlayer() {
	if pos, ok := s.PlayerPosition(); ok {
		s.player.X, s.player.Y = pos.X, pos.Y
	}
	if pc, ok := ecs.Get(s.world, s.loaded.Player, component.PlayerComponent.Kind()); ok && pc.Facing != "" {
		s.player.Facing = pc.Facing
	}
}

func (s *LevelScene) autosave() {
	s.syncPlayer()
	s.env.Registry.SavePlayer(s.player)
	if err := s.env.Persist(s.name); err != nil {
		s.log.WithError(err).Warn("autosave failed")
		return
	}
	s.log.Debug("autosaved")
}

func (s *LevelScene) PlayerPosition() (common.Vec, bool) {
	if s.loaded == nil {
		return common.Vec{}, false
	}
	t, ok := ecs.Get(s.world, s.loaded.Player, component.TransformComponent.Kind())
	if !ok {
		return common.Vec{}, false
	}
	return common.Vec{X: t.X, Y: t.Y}, true
}

// Player is the live player model, for the HUD and the pause menu.
func (s *LevelScene) Player() *player.State { return s.player }

// Save writes the player and registry out to the save store.
func (s *LevelScene) Save() error {
	s.syncPlayer()
	s.env.Registry.SavePlayer(s.player)
	return s.env.Persist(s.name)
}

func (s *LevelScene) Exit() {
	s.talk.Close()
	s.syncPlayer()
	s.env.Registry.SavePlayer(s.player)
}

func (s *LevelScene) Draw(screen *ebiten.Image) {
	if s.bg != nil {
		screen.Fill(s.bg)
	}
	s.render.Draw(s.world, screen)
	ui.DrawHUD(screen, s.player)
	if !s.talk.Active() {
		s.drawPrompt(screen)
	}
	s.box.Draw(screen)
	if s.debug != nil {
		s.debug.Draw(s.physics.Space(), s.world, screen)
	}
}

func (s *LevelScene) drawPrompt(screen *ebiten.Image) {
	focus, ok := ecs.Get(s.world, s.loaded.Player, component.InteractionFocusComponent.Kind())
	if !ok || s.dialogs == nil {
		return
	}
	t, ok := ecs.Get(s.world, ecs.Entity(focus.Target), component.TransformComponent.Kind())
	if !ok {
		return
	}
	camX, camY := 0.0, 0.0
	if ct, ok := ecs.Get(s.world, s.loaded.Camera, component.TransformComponent.Kind()); ok {
		camX, camY = ct.X, ct.Y
	}
	offset := s.env.Config.Dialog.PromptOffset
	if offset <= 0 {
		offset = 60
	}
	ui.DrawPrompt(screen, t.X-camX, t.Y-camY-offset)
}

package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/config"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
	"github.com/milk9111/overworld/savegame"
	"github.com/milk9111/overworld/scene"
	"github.com/milk9111/overworld/session"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	startScene := flag.String("scene", "", "scene id from levels/scenes.yaml to start in")
	configPath := flag.String("config", "", "YAML file layered over the built-in settings")
	slot := flag.String("slot", "", "save slot to load and write")
	muted := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)
	if *debug {
		cfg.Debug.Overlay = true
		cfg.Debug.HotReload = true
	}
	if *slot != "" {
		cfg.Save.Slot = *slot
	}

	manifest, err := assets.LoadManifest()
	if err != nil {
		log.WithError(err).Fatal("load texture manifest")
	}
	for _, key := range manifest.Missing() {
		log.WithField("texture", key).Warn("manifest entry has no file")
	}
	scenes, err := levels.LoadScenes()
	if err != nil {
		log.WithError(err).Fatal("load scene table")
	}

	registry := session.NewRegistry()
	store, err := savegame.Open(cfg.Save)
	if err != nil {
		log.WithError(err).Warn("save store unavailable; progress will not persist")
		store = nil
	}

	start := cfg.StartScene
	if store != nil {
		if s, ok := loadSave(store, cfg, log); ok {
			registry.Restore(s.Snapshot)
			if scenes.Has(s.Scene) {
				start = s.Scene
			}
		}
	}
	if *startScene != "" {
		start = *startScene
	}

	env := &scene.Env{
		Config:   cfg,
		Log:      log,
		Registry: registry,
		Scenes:   scenes,
		Library:  render.NewLibrary(manifest),
		Store:    store,
		Rand:     scene.NewRand(cfg.Seed),
		Slot:     cfg.Save.Slot,
		Debug:    cfg.Debug.Overlay,
		Muted:    *muted,
	}
	director := scene.NewDirector(env)
	director.Register(scene.RhythmCombat, scene.NewRhythmScene)
	director.Register(scene.TurnCombat, scene.NewTurnScene)
	director.HandleLevels(scene.NewLevelScene)
	director.Start(start, scene.Payload{})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	scale := cfg.Window.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*scale), int(float64(cfg.Window.Height)*scale))
	ebiten.SetWindowTitle(cfg.Window.Title)

	game := NewGame(director, cfg.Debug.HotReload)
	defer game.Close()

	log.WithFields(logrus.Fields{"scene": start, "slot": cfg.Save.Slot}).Info("starting")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("game exited")
	}
}

func loadSave(store savegame.Store, cfg config.Config, log logrus.FieldLogger) (savegame.Save, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout(cfg))
	defer cancel()
	s, err := store.Load(ctx, cfg.Save.Slot)
	switch {
	case errors.Is(err, savegame.ErrNotFound):
		log.WithField("slot", cfg.Save.Slot).Info("no save yet; starting fresh")
		return savegame.Save{}, false
	case err != nil:
		log.WithError(err).Warn("load save failed; starting fresh")
		return savegame.Save{}, false
	}
	log.WithFields(logrus.Fields{"slot": s.Slot, "scene": s.Scene, "saved_at": s.SavedAt}).Info("save loaded")
	return s, true
}

func saveTimeout(cfg config.Config) time.Duration {
	if cfg.Save.Timeout > 0 {
		return cfg.Save.Timeout
	}
	return 2 * time.Second
}

package main

import (
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/scene"
)

var watchDirs = []string{"levels", filepath.Join("levels", "area-1"), filepath.Join("levels", "dialogs"), "prefabs", "assets"}

type Game struct {
	director *scene.Director
	log      logrus.FieldLogger

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	watcher *prefabs.Watcher
}

func NewGame(director *scene.Director, hotReload bool) *Game {
	g := &Game{director: director, log: director.Env().Log}
	g.pauseUI = NewPauseUI(g)
	if hotReload {
		w, err := prefabs.NewWatcher(watchDirs...)
		if err != nil {
			g.log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.drainWatcher()
	return g.director.Update()
}

// drainWatcher applies file edits seen since the last frame. Texture
// manifest edits reload the library; anything else rebuilds the scene.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	restart := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log := g.log.WithField("file", path)
			if filepath.Base(path) == assets.ManifestFile {
				m, err := assets.LoadManifest()
				if err != nil {
					log.WithError(err).Warn("manifest reload failed")
					continue
				}
				g.director.Env().Library.Reload(m)
			} else {
				g.director.Env().Library.Reload(nil)
			}
			log.Info("file changed")
			restart = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watch error")
		default:
			if restart {
				g.director.Restart()
			}
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.director.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Save writes the current progress. Level scenes fold in the live player
// first; other scenes persist the registry as it stands.
func (g *Game) Save() error {
	if s, ok := g.director.Scene().(interface{ Save() error }); ok {
		return s.Save()
	}
	return g.director.Env().Persist(g.director.Current())
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.WithError(err).Debug("close watcher")
		}
	}
	if store := g.director.Env().Store; store != nil {
		if err := store.Close(); err != nil {
			g.log.WithError(err).Debug("close save store")
		}
	}
}

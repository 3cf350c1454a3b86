// Command dialogplay plays a scene's NPC dialogs in the terminal, showing
// the effect of every action on a scratch player.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milk9111/overworld/config"
	"github.com/milk9111/overworld/dialog"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
	"github.com/milk9111/overworld/player"
	"github.com/milk9111/overworld/session"
)

func main() {
	sceneID := flag.String("scene", "", "scene id from levels/scenes.yaml (defaults to the start scene)")
	builtin := flag.Bool("builtin", false, "play the built-in fallback dialogs instead")
	gold := flag.Int("gold", 0, "starting gold")
	level := flag.Int("level", 1, "starting player level")
	items := flag.String("items", "", "comma separated starting inventory")
	flags := flag.String("flags", "", "comma separated registry flags to set")
	flag.Parse()

	log := logger.Discard()
	cfg := config.Default()

	scene, file, err := loadFile(*sceneID, *builtin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := player.New(cfg.Player.Name)
	p.Gold = *gold
	p.Level = max(*level, 1)
	for _, it := range splitList(*items) {
		p.AddItem(it)
	}
	registry := session.NewRegistry()
	for _, f := range splitList(*flags) {
		registry.SetFlag(f, true)
	}

	fx := &previewEffects{player: p, registry: registry}
	m := newModel(scene, dialog.NewController(file, log), fx, cfg.Dialog.TypewriterInterval)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadFile(sceneID string, builtin bool) (string, dialog.File, error) {
	if builtin {
		return "built-in", dialog.Builtin(), nil
	}
	table, err := levels.LoadScenes()
	if err != nil {
		return "", nil, err
	}
	if sceneID == "" {
		sceneID = table.Start
	}
	sc, err := table.Lookup(sceneID)
	if err != nil {
		return "", nil, err
	}
	if sc.Dialogs == "" {
		return "", nil, fmt.Errorf("scene %q has no dialogs file", sceneID)
	}
	f, err := levels.LoadDialogs(sc.Dialogs)
	if err != nil {
		return "", nil, err
	}
	return sceneID, f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

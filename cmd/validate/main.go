// Command validate checks every scene in levels/scenes.yaml: its level
// layout against the texture manifest and scene table, and its dialog file.
// It exits non-zero when any problem is found.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
)

func main() {
	only := flag.String("scene", "", "validate a single scene id")
	verbose := flag.Bool("v", false, "log scenes that pass")
	flag.Parse()

	log := logger.New(logger.Config{Level: "info"})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	manifest, err := assets.LoadManifest()
	if err != nil {
		log.WithError(err).Fatal("load texture manifest")
	}
	for _, key := range manifest.Missing() {
		log.WithField("texture", key).Warn("manifest entry has no file")
	}
	table, err := levels.LoadScenes()
	if err != nil {
		log.WithError(err).Fatal("load scene table")
	}
	if table.Start != "" && !table.Has(table.Start) {
		log.WithField("scene", table.Start).Error("start scene is not in the table")
	}

	ids := table.IDs()
	if *only != "" {
		if !table.Has(*only) {
			log.WithField("scene", *only).Fatal("unknown scene")
		}
		ids = []string{*only}
	}

	problems := 0
	for _, id := range ids {
		errs := check(table.Scenes[id], manifest, &table)
		entry := log.WithField("scene", id)
		for _, e := range errs {
			entry.Error(e)
		}
		if len(errs) == 0 {
			entry.Debug("ok")
		}
		problems += len(errs)
	}

	if problems > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s) in %d scene(s)\n", problems, len(ids))
		os.Exit(1)
	}
	fmt.Printf("%d scene(s) ok\n", len(ids))
}

func check(sc levels.Scene, textures levels.TextureSet, table *levels.SceneTable) []error {
	var errs []error
	lvl, err := levels.LoadLevel(sc.Level)
	if err != nil {
		errs = append(errs, err)
	} else {
		if lvl.WorldType != sc.WorldType && sc.WorldType != "" {
			errs = append(errs, fmt.Errorf("level world type %q disagrees with scene table %q", lvl.WorldType, sc.WorldType))
		}
		errs = append(errs, levels.Validate(lvl, textures, table)...)
	}

	if sc.Dialogs == "" {
		return errs
	}
	f, err := levels.LoadDialogs(sc.Dialogs)
	if err != nil {
		return append(errs, err)
	}
	for _, e := range levels.ValidateDialogs(f, table) {
		errs = append(errs, fmt.Errorf("dialogs: %w", e))
	}
	return errs
}

package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

type AudioSystem struct {
	muted bool
}

func NewAudioSystem(muted bool) *AudioSystem {
	return &AudioSystem{muted: muted}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players), len(audioComp.Volume))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			player := audioComp.Players[i]
			if a.muted || player == nil {
				continue
			}
			player.SetVolume(audioComp.Volume[i])
			if err := player.Rewind(); err != nil {
				continue
			}
			player.Play()
		}

		for i := 0; i < min(count, len(audioComp.Stop)); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false
			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}

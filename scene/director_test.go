package scene

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/overworld/combat"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/session"
)

type fakeScene struct {
	name    string
	updates int
	exited  bool
	pos     *common.Vec
	onTick  func()
}

func (f *fakeScene) Update() error {
	f.updates++
	if f.onTick != nil {
		f.onTick()
	}
	return nil
}

func (f *fakeScene) Draw(*ebiten.Image) {}

func (f *fakeScene) Exit() { f.exited = true }

func (f *fakeScene) PlayerPosition() (common.Vec, bool) {
	if f.pos == nil {
		return common.Vec{}, false
	}
	return *f.pos, true
}

type recorder struct {
	built    []*fakeScene
	payloads []Payload
}

func (r *recorder) ctor(_ *Director, name string, p Payload) (Scene, error) {
	s := &fakeScene{name: name}
	r.built = append(r.built, s)
	r.payloads = append(r.payloads, p)
	return s, nil
}

func newTestDirector(t *testing.T) *Director {
	t.Helper()
	log, _ := test.NewNullLogger()
	return NewDirector(&Env{
		Log:      log,
		Registry: session.NewRegistry(),
		Scenes: levels.SceneTable{Scenes: map[string]levels.Scene{
			"StarterArea":   {WorldType: levels.WorldOpen},
			"VincentsStore": {WorldType: levels.WorldRoom},
		}},
	})
}

func TestDirectorStartIsDeferredToEndOfTick(t *testing.T) {
	d := newTestDirector(t)
	rec := &recorder{}
	d.HandleLevels(rec.ctor)

	d.Start("StarterArea", Payload{})
	assert.Nil(t, d.Scene())
	require.NoError(t, d.Update())
	require.Len(t, rec.built, 1)
	assert.Equal(t, "StarterArea", d.Current())

	first := rec.built[0]
	first.onTick = func() {
		d.Start("VincentsStore", Payload{})
		assert.Equal(t, "StarterArea", d.Current(), "switch must wait for the tick to finish")
	}
	require.NoError(t, d.Update())
	assert.Equal(t, 1, first.updates)
	assert.True(t, first.exited)
	assert.Equal(t, "VincentsStore", d.Current())
}

func TestDirectorRegisteredScenesWin(t *testing.T) {
	d := newTestDirector(t)
	levelsRec, combatRec := &recorder{}, &recorder{}
	d.HandleLevels(levelsRec.ctor)
	d.Register(RhythmCombat, combatRec.ctor)

	d.Start(RhythmCombat, Payload{Combat: &CombatPayload{NPCID: "slime"}})
	require.NoError(t, d.Update())
	assert.Empty(t, levelsRec.built)
	require.Len(t, combatRec.payloads, 1)
	assert.Equal(t, "slime", combatRec.payloads[0].Combat.NPCID)
}

func TestDirectorFailures(t *testing.T) {
	d := newTestDirector(t)
	rec := &recorder{}
	d.HandleLevels(rec.ctor)
	d.Register("Broken", func(*Director, string, Payload) (Scene, error) {
		return nil, errors.New("boom")
	})

	d.Start("Nowhere", Payload{})
	require.Error(t, d.Update(), "nothing running yet, so the failure surfaces")

	d.Start("StarterArea", Payload{})
	require.NoError(t, d.Update())

	d.Start("Broken", Payload{})
	require.NoError(t, d.Update(), "a running scene keeps going")
	assert.Equal(t, "StarterArea", d.Current())

	d.Start("Nowhere", Payload{})
	require.NoError(t, d.Update())
	assert.Equal(t, "StarterArea", d.Current())
}

func TestDirectorRestartKeepsPosition(t *testing.T) {
	d := newTestDirector(t)
	rec := &recorder{}
	d.HandleLevels(rec.ctor)
	d.Start("StarterArea", Payload{})
	require.NoError(t, d.Update())

	rec.built[0].pos = &common.Vec{X: 120, Y: 340}
	d.Restart()
	require.NoError(t, d.Update())

	require.Len(t, rec.payloads, 2)
	require.NotNil(t, rec.payloads[1].TargetPosition)
	assert.Equal(t, common.Vec{X: 120, Y: 340}, *rec.payloads[1].TargetPosition)
	assert.Equal(t, "StarterArea", d.Current())
}

func TestCombatSceneFor(t *testing.T) {
	assert.Equal(t, RhythmCombat, CombatSceneFor(combat.Data{}))
	assert.Equal(t, RhythmCombat, CombatSceneFor(combat.Data{Mode: combat.ModeRhythm}))
	assert.Equal(t, TurnCombat, CombatSceneFor(combat.Data{Mode: combat.ModeTurn}))
}

package rhythm

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/overworld/combat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// laneSeq returns lanes from a fixed cycle.
type laneSeq struct {
	lanes []int
	i     int
}

func (l *laneSeq) IntN(n int) int {
	v := l.lanes[l.i%len(l.lanes)] % n
	l.i++
	return v
}

func newStarted(t *testing.T, cfg Config, lanes ...int) *Session {
	t.Helper()
	if len(lanes) == 0 {
		lanes = []int{0, 1, 2, 3}
	}
	s := NewSession(cfg, &laneSeq{lanes: lanes})
	require.NoError(t, s.Start())
	return s
}

func TestStartGeneratesPattern(t *testing.T) {
	s := newStarted(t, Config{})
	notes := s.Notes()

	require.Len(t, notes, 60)
	assert.Equal(t, 2500*time.Millisecond, s.Config().TravelTime())
	for i, n := range notes {
		assert.Equal(t, time.Duration(i)*500*time.Millisecond, n.SpawnTime)
		assert.Equal(t, n.SpawnTime+2500*time.Millisecond, n.HitTime)
		assert.Equal(t, i%4, n.Lane)
		assert.Equal(t, NotePending, n.State)
	}
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
}

func TestPressScoring(t *testing.T) {
	tests := []struct {
		name       string
		offset     time.Duration
		wantKind   EventKind
		wantScore  int
		wantDamage int
	}{
		{"perfect", 0, EventHit, 100, 10},
		{"early_half_window", -25 * time.Millisecond, EventHit, 50, 7},
		{"late_edge_inside", 49 * time.Millisecond, EventHit, 2, 5},
		{"exactly_window_is_outside", -50 * time.Millisecond, EventWhiff, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStarted(t, Config{})
			s.Advance(2500*time.Millisecond + tc.offset)

			ev, err := s.Press(0)
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, ev.Kind)
			assert.Equal(t, tc.wantScore, ev.Score)
			assert.Equal(t, tc.wantDamage, ev.Damage)
			assert.Equal(t, 100-tc.wantDamage, s.EnemyHealth())
		})
	}
}

func TestComboAndMaxCombo(t *testing.T) {
	s := newStarted(t, Config{})
	s.Advance(2500 * time.Millisecond)
	_, _ = s.Press(0)
	s.Advance(500 * time.Millisecond)
	_, _ = s.Press(1)
	assert.Equal(t, 2, s.Combo())

	_, _ = s.Press(3)
	assert.Equal(t, 0, s.Combo())
	assert.Equal(t, 2, s.MaxCombo())
	assert.Equal(t, 98, s.PlayerHealth())
}

func TestPressJustAfterWindowIsMiss(t *testing.T) {
	s := newStarted(t, Config{})
	s.Advance(2500 * time.Millisecond)
	_, err := s.Press(0)
	require.NoError(t, err)
	require.Equal(t, 1, s.Combo())

	// Note 1 (lane 1) is due at 3000ms; press at 3051ms.
	events := s.Advance(551 * time.Millisecond)
	ev, err := s.Press(1)
	require.NoError(t, err)

	assert.Equal(t, EventWhiff, ev.Kind)
	assert.Equal(t, 0, s.Combo())
	assert.Equal(t, NoteMissed, s.Notes()[1].State)
	var missed int
	for _, e := range events {
		if e.Kind == EventMissed {
			missed++
		}
	}
	assert.Equal(t, 1, missed)
}

func TestEachNoteResolvesOnce(t *testing.T) {
	s := NewSession(Config{PlayerHealth: 1_000_000, EnemyHealth: 1_000_000}, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, s.Start())
	presses := rand.New(rand.NewPCG(3, 5))

	terminal := map[int]int{}
	record := func(ev Event) {
		if ev.Kind == EventHit || ev.Kind == EventMissed {
			terminal[ev.NoteID]++
		}
	}

	for s.State() == StateActive {
		for _, ev := range s.Advance(16 * time.Millisecond) {
			record(ev)
		}
		if s.State() != StateActive {
			break
		}
		if presses.IntN(3) == 0 {
			ev, err := s.Press(presses.IntN(4))
			require.NoError(t, err)
			record(ev)
		}
	}

	for id, n := range terminal {
		assert.Equalf(t, 1, n, "note %d resolved %d times", id, n)
	}
	for _, n := range s.Notes() {
		if n.State != NotePending {
			assert.Equal(t, 1, terminal[n.ID])
		}
	}
	assert.Equal(t, ReasonTimeUp, s.Reason())
}

func TestEndings(t *testing.T) {
	t.Run("enemy_defeated", func(t *testing.T) {
		s := newStarted(t, Config{EnemyHealth: 10})
		s.Advance(2500 * time.Millisecond)
		_, _ = s.Press(0)
		assert.Equal(t, StateEnded, s.State())
		assert.Equal(t, ReasonEnemyDefeated, s.Reason())
		assert.Equal(t, combat.OutcomeVictory, s.Outcome())
		_, err := s.Press(0)
		assert.ErrorIs(t, err, ErrNotActive)
	})

	t.Run("player_defeated_by_whiffs", func(t *testing.T) {
		s := newStarted(t, Config{PlayerHealth: 4})
		_, _ = s.Press(2)
		_, _ = s.Press(2)
		assert.Equal(t, ReasonPlayerDefeated, s.Reason())
		assert.Equal(t, combat.OutcomeDefeat, s.Outcome())
	})

	t.Run("player_defeated_by_auto_miss", func(t *testing.T) {
		s := newStarted(t, Config{})
		events := s.Advance(time.Minute)
		assert.Equal(t, ReasonPlayerDefeated, s.Reason())
		assert.Equal(t, EventEnded, events[len(events)-1].Kind)
		// 50 misses at 2 each; the 50th note's window closes at 27.05s.
		assert.Equal(t, 27050*time.Millisecond, s.Now())
	})

	t.Run("quit", func(t *testing.T) {
		s := newStarted(t, Config{})
		s.Quit()
		assert.Equal(t, ReasonQuit, s.Reason())
		assert.Equal(t, combat.OutcomeDefeat, s.Outcome())
	})

	t.Run("time_up_is_victory", func(t *testing.T) {
		s := newStarted(t, Config{PlayerHealth: 1000})
		s.Advance(30 * time.Second)
		assert.Equal(t, ReasonTimeUp, s.Reason())
		assert.Equal(t, combat.OutcomeVictory, s.Outcome())
		assert.Equal(t, time.Duration(0), s.Remaining())
	})
}

func TestInvalidLane(t *testing.T) {
	s := newStarted(t, Config{})
	_, err := s.Press(4)
	assert.ErrorIs(t, err, ErrInvalidLane)
}

func TestNoteY(t *testing.T) {
	s := newStarted(t, Config{})
	s.Advance(2500 * time.Millisecond)
	n := s.Notes()[0]
	assert.InDelta(t, 600, s.NoteY(n), 0.001)
}

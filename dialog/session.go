package dialog

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

var (
	ErrActive    = errors.New("dialog: already active")
	ErrNotActive = errors.New("dialog: not active")
	ErrNoChoice  = errors.New("dialog: no such choice")
	ErrNilNode   = errors.New("dialog: nil node")
)

const DefaultTypewriterInterval = 30 * time.Millisecond

// Session plays one conversation at a time. It owns the only typewriter
// clock; showing a node or closing resets it.
type Session struct {
	fx       Effects
	interval time.Duration

	active   bool
	npcID    string
	node     *Node
	line     int
	revealed int
	total    int
	clock    time.Duration
	history  []string
}

func NewSession(fx Effects, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultTypewriterInterval
	}
	return &Session{fx: fx, interval: interval}
}

// Start opens the dialog on node. The caller freezes player movement while
// Active reports true.
func (s *Session) Start(npcID string, node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	if s.active {
		return ErrActive
	}
	s.active = true
	s.npcID = npcID
	s.show(node)
	return nil
}

func (s *Session) show(node *Node) {
	s.node = node
	s.line = 0
	s.history = append(s.history, historyID(node))
	s.resetReveal()
}

func historyID(n *Node) string {
	if n.ID == "" {
		return "unknown"
	}
	return n.ID
}

func (s *Session) resetReveal() {
	s.revealed = 0
	s.clock = 0
	s.total = utf8.RuneCountInString(s.node.Line(s.line))
}

// Update reveals one rune per interval.
func (s *Session) Update(dt time.Duration) {
	if !s.active || s.revealed >= s.total {
		return
	}
	s.clock += dt
	for s.clock >= s.interval && s.revealed < s.total {
		s.clock -= s.interval
		s.revealed++
	}
	if s.revealed >= s.total {
		s.clock = 0
	}
}

// Continue is ignored while choices are shown. Otherwise it finishes the
// current reveal, then steps through lines, and past the last line runs the
// node's actions and follows Next or closes.
func (s *Session) Continue() {
	if !s.active || s.node.HasChoices() {
		return
	}
	if s.Revealing() {
		s.revealed = s.total
		s.clock = 0
		return
	}
	if s.line < s.node.LineCount()-1 {
		s.line++
		s.resetReveal()
		return
	}

	node := s.node
	Execute(node.Actions, s.fx)
	if node.Next != nil && s.active {
		s.show(node.Next)
		return
	}
	s.Close()
}

// Select runs choice i's actions once, then follows its Next or closes.
func (s *Session) Select(i int) error {
	if !s.active {
		return ErrNotActive
	}
	if i < 0 || i >= len(s.node.Choices) {
		return fmt.Errorf("%w: %d", ErrNoChoice, i)
	}
	choice := s.node.Choices[i]
	Execute(choice.Actions, s.fx)
	if choice.Next != nil && s.active {
		s.show(choice.Next)
		return nil
	}
	s.Close()
	return nil
}

func (s *Session) Close() {
	s.active = false
	s.npcID = ""
	s.node = nil
	s.line = 0
	s.revealed = 0
	s.total = 0
	s.clock = 0
}

func (s *Session) Active() bool { return s.active }
func (s *Session) NPC() string  { return s.npcID }
func (s *Session) Node() *Node  { return s.node }
func (s *Session) LineIndex() int {
	return s.line
}

// Revealing reports whether the typewriter is still running.
func (s *Session) Revealing() bool {
	return s.active && s.revealed < s.total
}

// Text is the portion of the current line revealed so far.
func (s *Session) Text() string {
	if !s.active {
		return ""
	}
	line := s.node.Line(s.line)
	if s.revealed >= s.total {
		return line
	}
	n := 0
	for i := range line {
		if n == s.revealed {
			return line[:i]
		}
		n++
	}
	return line
}

// ChoiceLabels numbers choices from 1, e.g. "1. Fight!".
func (s *Session) ChoiceLabels() []string {
	if !s.active || !s.node.HasChoices() {
		return nil
	}
	labels := make([]string, len(s.node.Choices))
	for i, c := range s.node.Choices {
		labels[i] = fmt.Sprintf("%d. %s", i+1, c.Text)
	}
	return labels
}

// History lists the ids of every node shown, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

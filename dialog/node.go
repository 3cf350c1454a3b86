// Package dialog selects and plays branching NPC conversations.
package dialog

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Node is one screen of dialog. Lines, when present, are shown one at a
// time and replace Text.
type Node struct {
	ID      string   `json:"id,omitempty"`
	Text    string   `json:"text,omitempty"`
	Lines   []string `json:"dialogs,omitempty"`
	Choices []Choice `json:"choices,omitempty"`
	Actions []Action `json:"actions,omitempty"`
	Next    *Node    `json:"next,omitempty"`
}

type Choice struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions,omitempty"`
	Next    *Node    `json:"nextDialog,omitempty"`
}

// LineCount is at least one for any node.
func (n *Node) LineCount() int {
	if n == nil {
		return 0
	}
	if len(n.Lines) > 0 {
		return len(n.Lines)
	}
	return 1
}

func (n *Node) Line(i int) string {
	if n == nil {
		return ""
	}
	if len(n.Lines) == 0 {
		if i == 0 {
			return n.Text
		}
		return ""
	}
	if i < 0 || i >= len(n.Lines) {
		return ""
	}
	return n.Lines[i]
}

func (n *Node) HasChoices() bool {
	return n != nil && len(n.Choices) > 0
}

// Variant is a contextual alternative to an NPC's default node. Its node
// fields sit inline next to the conditions.
type Variant struct {
	Conditions *Conditions `json:"conditions,omitempty"`
	Node
}

type NPCDialogs struct {
	Default    *Node     `json:"default,omitempty"`
	Contextual []Variant `json:"contextual,omitempty"`
}

// File maps NPC ids to their dialogs for one scene.
type File map[string]NPCDialogs

// NPCs returns the NPC ids in sorted order.
func (f File) NPCs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Parse decodes a dialog file. Unknown action types and actions missing
// their payload are rejected.
func Parse(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("dialog: parse: %w", err)
	}
	for _, id := range f.NPCs() {
		d := f[id]
		if d.Default == nil && len(d.Contextual) == 0 {
			return nil, fmt.Errorf("dialog: parse: npc %q has no dialog", id)
		}
	}
	return f, nil
}

// Walk visits n and every node reachable through Next and choices,
// depth first. It stops when fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	walk(n, fn, 0)
}

const maxWalkDepth = 64

func walk(n *Node, fn func(*Node) bool, depth int) bool {
	if n == nil || depth > maxWalkDepth {
		return true
	}
	if !fn(n) {
		return false
	}
	for i := range n.Choices {
		if !walk(n.Choices[i].Next, fn, depth+1) {
			return false
		}
	}
	return walk(n.Next, fn, depth+1)
}

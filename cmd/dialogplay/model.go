package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/milk9111/overworld/dialog"
)

const maxLogLines = 8

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	choiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	effectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

type tickMsg struct{}

// model lists the scene's NPCs and plays the selected one's dialog through
// the same session the game uses.
type model struct {
	scene    string
	npcs     []string
	cursor   int
	ctrl     *dialog.Controller
	fx       *previewEffects
	talk     *dialog.Session
	interval time.Duration
	width    int
}

func newModel(scene string, ctrl *dialog.Controller, fx *previewEffects, interval time.Duration) model {
	return model{
		scene:    scene,
		npcs:     ctrl.File().NPCs(),
		ctrl:     ctrl,
		fx:       fx,
		talk:     dialog.NewSession(fx, interval),
		interval: interval,
		width:    72,
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-8, 20)
		return m, nil
	case tickMsg:
		if !m.talk.Active() || !m.talk.Revealing() {
			return m, nil
		}
		m.talk.Update(m.interval)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.talk.Active() {
			return m.updateTalk(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.npcs)-1 {
			m.cursor++
		}
	case "enter", " ", "e":
		if len(m.npcs) == 0 {
			return m, nil
		}
		npc := m.npcs[m.cursor]
		node := m.ctrl.GetDialog(npc, dialog.State{Player: m.fx.player, Flags: m.fx.registry})
		if err := m.talk.Start(npc, node); err != nil {
			m.fx.note("start %s: %v", npc, err)
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) updateTalk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.talk.Close()
		return m, nil
	case " ", "enter":
		m.talk.Continue()
		return m, m.tick()
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if err := m.talk.Select(int(key[0] - '1')); err != nil {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("DIALOG PREVIEW: "+m.scene) + "\n\n")

	if m.talk.Active() {
		var box strings.Builder
		box.WriteString(speakerStyle.Render(dialog.DisplayName(m.talk.NPC())) + "\n\n")
		box.WriteString(wordwrap.String(m.talk.Text(), m.width-6))
		if labels := m.talk.ChoiceLabels(); len(labels) > 0 && !m.talk.Revealing() {
			box.WriteString("\n")
			for _, l := range labels {
				box.WriteString("\n" + choiceStyle.Render(l))
			}
		}
		b.WriteString(boxStyle.Width(m.width).Render(box.String()) + "\n")
		if m.talk.Node().HasChoices() {
			b.WriteString(hintStyle.Render("1-9 choose  esc close") + "\n")
		} else {
			b.WriteString(hintStyle.Render("space continue  esc close") + "\n")
		}
	} else {
		for i, npc := range m.npcs {
			line := fmt.Sprintf("  %s", dialog.DisplayName(npc))
			if i == m.cursor {
				line = cursorStyle.Render("> " + dialog.DisplayName(npc))
			}
			b.WriteString(line + "\n")
		}
		if len(m.npcs) == 0 {
			b.WriteString(hintStyle.Render("no dialogs in this scene") + "\n")
		}
		b.WriteString("\n" + hintStyle.Render("up/down pick  enter talk  q quit") + "\n")
	}

	p := m.fx.player
	b.WriteString(fmt.Sprintf("\ngold %d  level %d  items %v  quests %v\n", p.Gold, p.Level, p.Inventory, p.Quests))
	log := m.fx.log
	if len(log) > maxLogLines {
		log = log[len(log)-maxLogLines:]
	}
	for _, l := range log {
		b.WriteString(effectStyle.Render("• "+l) + "\n")
	}
	return b.String()
}

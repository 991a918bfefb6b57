package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
)

type tickMsg time.Time

type model struct {
	demo     *demo
	interval time.Duration
	bar      progress.Model
	snap     snapshot
	finished bool
}

func newModel(d *demo) model {
	return model{
		demo:     d,
		interval: d.cfg.TickInterval,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		snap:     d.snapshot(),
	}
}

func (m model) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.demo.cancelCountdown()
		case "u":
			m.demo.requestUndo()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(60, msg.Width-8))
		return m, nil
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.demo.step()
		m.snap = m.demo.snapshot()
		if m.demo.done() {
			m.finished = true
			return m, nil
		}
		return m, m.scheduleTick()
	}
	return m, nil
}

func (m model) View() string {
	s := m.snap

	var b strings.Builder
	b.WriteString(titleStyle.Render("STEPFLOW"))
	b.WriteString("\n")

	countdown := fmt.Sprintf("%s %d/%d", labelStyle.Render("countdown"), s.counter.value, s.counter.target)
	if s.finished {
		countdown += " " + doneStyle.Render("done")
	}
	fmt.Fprintf(&b, "%s\n%s\n\n", countdown, m.bar.ViewAs(s.progress()))

	editor := fmt.Sprintf("%s cursor=%d undoable=%d", labelStyle.Render("editor"), s.cursor, s.undoable)
	if s.replaying {
		editor += " " + mutedStyle.Render("(undoing)")
	}
	b.WriteString(editor)
	b.WriteString("\n\n")

	lines := make([]string, 0, len(s.reactors))
	for _, r := range s.reactors {
		lines = append(lines, r.String())
	}
	b.WriteString(boxStyle.Render(fmt.Sprintf("tick %d\n%s", s.tick, strings.Join(lines, "\n"))))

	footer := "q quit · c cancel countdown · u undo"
	if m.finished {
		footer = "all reactors done · q quit"
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")
	return b.String()
}

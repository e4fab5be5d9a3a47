package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/perfmark/component"
	"go.jacobcolvin.com/perfmark/log"
	"go.jacobcolvin.com/perfmark/session"
)

const (
	refreshInterval = 250 * time.Millisecond
	maxLogLines     = 8
)

// runLive runs the workload in the background while a terminal view shows
// accumulated results and recent log output. The view exits when the
// workload completes or the user quits; reports are flushed afterwards.
func runLive(pub *log.Publisher, workload func() error) error {
	p := tea.NewProgram(newLiveModel(pub.Subscribe()))

	go func() {
		p.Send(doneMsg{err: workload()})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(*liveModel); ok && m.err != nil {
		return m.err
	}

	return session.Finalize()
}

// tickMsg signals that it is time to refresh the results view.
type tickMsg struct{}

// doneMsg reports workload completion.
type doneMsg struct {
	err error
}

// liveModel is the bubbletea model for the live results view.
type liveModel struct {
	sub      *log.Subscription
	logLines []string
	err      error
	done     bool
}

func newLiveModel(sub *log.Subscription) *liveModel {
	return &liveModel{
		sub: sub,
	}
}

// Init returns the first refresh command.
func (m *liveModel) Init() tea.Cmd {
	return tick()
}

// Update handles refresh, workload-completion, and quit messages.
func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case doneMsg:
		m.done = true
		m.err = msg.err
		m.drainLogs()

		return m, tea.Quit

	case tickMsg:
		m.drainLogs()

		return m, tick()
	}

	return m, nil
}

// View renders the results table over the most recent log lines.
func (m *liveModel) View() tea.View {
	var buf strings.Builder

	buf.WriteString("perfmark (q to quit)\n\n")
	writeResults(&buf, session.Results(false))

	if len(m.logLines) > 0 {
		buf.WriteString("\nrecent logs:\n")

		for _, line := range m.logLines {
			buf.WriteString("  " + line + "\n")
		}
	}

	v := tea.NewView(buf.String())
	v.AltScreen = true

	return v
}

// drainLogs moves buffered log entries into the view without blocking.
func (m *liveModel) drainLogs() {
	for {
		select {
		case entry, ok := <-m.sub.C():
			if !ok {
				return
			}

			line := strings.TrimRight(string(entry), "\n")
			m.logLines = append(m.logLines, line)

			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
		default:
			return
		}
	}
}

func writeResults(buf *strings.Builder, res component.Results) {
	if len(res) == 0 {
		buf.WriteString("no samples yet\n")

		return
	}

	names := make([]component.Name, 0, len(res))
	for name := range res {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		for _, s := range res[name] {
			fmt.Fprintf(buf, "  %-12s %-16s laps=%d %.6f %s\n",
				name, s.Label, s.Laps, s.Value, s.DisplayUnits)
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

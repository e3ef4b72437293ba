// Package tui renders the session clock in a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lofitimer/internal/core/sessionclock"
	"lofitimer/internal/ui/shortcuts"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the part of the driver the terminal view drives.
type Controller interface {
	shortcuts.Commands
	Snapshot() sessionclock.Snapshot
}

type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Reset, keys.Help, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{keys.Toggle, keys.Reset}, {keys.Help, keys.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	timeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F472B6"))
	modeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#2DD4BF"))
	frameStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#818CF8")).
			Padding(1, 3)
)

const maxProgressWidth = 48

type eventMsg sessionclock.Event

type eventsClosedMsg struct{}

// Model is the bubbletea model of the terminal timer.
type Model struct {
	controller Controller
	events     <-chan sessionclock.Event
	snapshot   sessionclock.Snapshot
	message    string
	progress   progress.Model
	help       help.Model
	keys       keyMap
	quitting   bool
}

// New creates a terminal model reading clock events from events.
func New(controller Controller, events <-chan sessionclock.Event) Model {
	bar := progress.New(progress.WithGradient("#C084FC", "#F472B6"), progress.WithoutPercentage())
	bar.Width = maxProgressWidth
	return Model{
		controller: controller,
		events:     events,
		snapshot:   controller.Snapshot(),
		progress:   bar,
		help:       help.New(),
		keys:       defaultKeys(),
	}
}

// Run shows the terminal timer until the user quits or ctx is cancelled.
func Run(ctx context.Context, controller Controller, events <-chan sessionclock.Event) error {
	program := tea.NewProgram(New(controller, events), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func (model Model) Init() tea.Cmd {
	return waitForEvent(model.events)
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		model.snapshot = msg.Snapshot
		switch msg.Type {
		case sessionclock.EventWorkCompleted, sessionclock.EventBreakCompleted:
			model.message = msg.Message
		case sessionclock.EventStarted, sessionclock.EventReset:
			model.message = ""
		}
		return model, waitForEvent(model.events)

	case eventsClosedMsg:
		model.quitting = true
		return model, tea.Quit

	case tea.WindowSizeMsg:
		model.help.Width = msg.Width
		model.progress.Width = min(maxProgressWidth, max(10, msg.Width-12))
		return model, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, model.keys.Quit):
			model.quitting = true
			return model, tea.Quit
		case key.Matches(msg, model.keys.Help):
			model.help.ShowAll = !model.help.ShowAll
			return model, nil
		}
		shortcuts.Dispatch(msg.String(), model.controller)
		return model, nil
	}
	return model, nil
}

func (model Model) View() string {
	if model.quitting {
		return ""
	}

	snapshot := model.snapshot
	status := "paused"
	if snapshot.Running {
		status = "running"
	}

	lines := []string{
		modeStyle.Render(snapshot.ModeLabel()),
		timeStyle.Render(snapshot.Display()),
		model.progress.ViewAs(snapshot.Progress()),
		dimStyle.Render(fmt.Sprintf("%s · %s", status, sessionsText(snapshot.CompletedWorkSessions))),
	}
	if model.message != "" {
		lines = append(lines, messageStyle.Render(model.message))
	}

	body := frameStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return strings.Join([]string{body, model.help.View(model.keys)}, "\n")
}

func sessionsText(completed int) string {
	if completed == 1 {
		return "1 session completed"
	}
	return fmt.Sprintf("%d sessions completed", completed)
}

func waitForEvent(events <-chan sessionclock.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

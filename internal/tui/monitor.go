// Package tui implements the live API server monitor.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// Querier is the read-only view of the API server the monitor polls.
type Querier interface {
	CheckHealth(ctx context.Context) (bool, error)
	Status(ctx context.Context) (string, error)
}

const (
	// pollTimeout bounds a single poll so the view never freezes on a stuck
	// server.
	pollTimeout = 5 * time.Second

	// Lines taken by the header, health line, panel border and help line.
	chromeHeight = 7
)

// Model is the monitor's bubbletea model.
type Model struct {
	probe    Querier
	interval time.Duration

	checked   bool
	healthy   bool
	lastCheck time.Time
	status    string
	statusErr error

	viewport viewport.Model
	help     help.Model
	width    int
}

// NewModel creates a monitor polling probe every interval.
func NewModel(probe Querier, interval time.Duration) Model {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	m := Model{
		probe:    probe,
		interval: interval,
		viewport: viewport.New(76, 16),
		help:     help.New(),
	}
	m.viewport.SetContent(labelStyle.Render("no status yet"))
	return m
}

// RunMonitor runs the monitor until the user quits.
func RunMonitor(probe Querier, interval time.Duration) error {
	p := tea.NewProgram(NewModel(probe, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the first poll.
func (m Model) Init() tea.Cmd {
	return m.poll()
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-4, 10)
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, monitorKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, monitorKeys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, monitorKeys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, monitorKeys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, monitorKeys.PageUp):
			m.viewport.HalfViewUp()
		case key.Matches(msg, monitorKeys.PageDown):
			m.viewport.HalfViewDown()
		}
		return m, nil

	case healthMsg:
		m.checked = true
		m.healthy = msg.Healthy
		m.lastCheck = msg.At
		return m, nil

	case statusMsg:
		m.setStatus(msg.Body, msg.Err)
		if msg.Manual {
			return m, nil
		}
		return m, m.scheduleTick()

	case tickMsg:
		return m, m.poll()
	}
	return m, nil
}

// setStatus replaces the viewport content, keeping the scroll position when
// the payload has not changed.
func (m *Model) setStatus(body string, err error) {
	changed := body != m.status || (err == nil) != (m.statusErr == nil)
	m.status = body
	m.statusErr = err

	var content string
	switch {
	case err != nil:
		content = errorStyle.Render(err.Error())
	case body == "":
		content = labelStyle.Render("no status yet")
	default:
		content = valueStyle.Render(formatStatus(body))
	}
	m.viewport.SetContent(content)
	if changed {
		m.viewport.GotoTop()
	}
}

// formatStatus indents JSON payloads and returns anything else unchanged.
func formatStatus(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

// View renders the monitor.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("AEGIS API monitor"))
	b.WriteString(labelStyle.Render("  " + models.ServerURL()))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Health: "))
	switch {
	case !m.checked:
		b.WriteString(valueStyle.Render("checking..."))
	case m.healthy:
		b.WriteString(healthyStyle.Render("● healthy"))
	default:
		b.WriteString(unhealthyStyle.Render("● not responding"))
	}
	if !m.lastCheck.IsZero() {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  (checked %s)", m.lastCheck.Format("15:04:05"))))
	}
	b.WriteString("\n")

	b.WriteString(panelStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(monitorKeys))
	return b.String()
}

// poll queries health then status. Status is issued after health so that
// both lines of the view describe the same moment as closely as possible.
func (m Model) poll() tea.Cmd {
	return tea.Sequence(checkHealthCmd(m.probe), getStatusCmd(m.probe, false))
}

// refresh polls once outside the tick loop, which keeps running on its own.
func (m Model) refresh() tea.Cmd {
	return tea.Sequence(checkHealthCmd(m.probe), getStatusCmd(m.probe, true))
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func checkHealthCmd(probe Querier) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
		defer cancel()

		healthy, err := probe.CheckHealth(ctx)
		if err != nil {
			healthy = false
		}
		return healthMsg{Healthy: healthy, At: time.Now()}
	}
}

func getStatusCmd(probe Querier, manual bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
		defer cancel()

		body, err := probe.Status(ctx)
		return statusMsg{Body: body, Err: err, Manual: manual}
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const progressBarWidth = 30

// WarmModel shows the progress of a warm run
type WarmModel struct {
	title   string
	run     WarmFunc
	events  chan tea.Msg
	cancel  context.CancelFunc
	keys    KeyMap
	spinner spinner.Model
	width   int

	loaded  int
	total   int
	result  domain.WarmResult
	err     error
	done    bool
	aborted bool
}

// NewWarmModel creates a model that starts run on Init
func NewWarmModel(title string, run WarmFunc, cancel context.CancelFunc) WarmModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return WarmModel{
		title:   title,
		run:     run,
		events:  make(chan tea.Msg, 16),
		cancel:  cancel,
		keys:    DefaultKeyMap(),
		spinner: s,
	}
}

// Init implements tea.Model
func (m WarmModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startWarm(m.run, m.events), readEvent(m.events))
}

// Update implements tea.Model
func (m WarmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if !m.done {
				m.aborted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ProgressMsg:
		m.loaded = msg.Loaded
		m.total = msg.Total
		return m, readEvent(m.events)

	case WarmDoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m WarmModel) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title) + "\n\n")

	switch {
	case m.done && m.err != nil:
		b.WriteString(RenderError(m.err.Error(), m.width))
		b.WriteString("\n" + styles.DimStyle.Render(warmSummary(m.result)))
	case m.done:
		b.WriteString(styles.SuccessStyle.Render(styles.SuccessChar+" ") + warmSummary(m.result))
	default:
		percent := 0.0
		if m.total > 0 {
			percent = float64(m.loaded) / float64(m.total) * 100
		}
		b.WriteString(m.spinner.View() + " ")
		b.WriteString(styles.RenderProgressBar(percent, progressBarWidth))
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf(" %d/%d pages", m.loaded, m.total)))
		b.WriteString("\n\n" + styles.DimStyle.Render(m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc))
	}
	return b.String() + "\n"
}

// Result returns the outcome of the run once it has finished
func (m WarmModel) Result() (domain.WarmResult, error) {
	return m.result, m.err
}

// Aborted reports whether the user quit before the run finished
func (m WarmModel) Aborted() bool {
	return m.aborted
}

func warmSummary(r domain.WarmResult) string {
	return fmt.Sprintf("%s: %d pages, %d titles cached", r.Category, r.Pages, r.Rows)
}

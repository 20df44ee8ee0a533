package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/optimizer"
	"github.com/rgehrsitz/isoamt/internal/taxparams"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PlanLoadedMsg:
		m.loading = false
		m.preloaded = nil
		m.plan = msg.Plan
		m.base = msg.Input
		m.params = msg.Params
		m.paramsPath = msg.ParamsPath
		m.planner = optimizer.NewPlanner(msg.Params, calculation.NopLogger{})
		m.sliders = buildSliders(msg.Input)
		m.focus = sliderBudget
		m.sliders[m.focus].SetFocused(true)
		// an override table covers a single year
		m.keys.Year.SetEnabled(msg.ParamsPath == "")
		return m, m.baselineCmd()

	case PlanCalculatedMsg:
		// drop results computed for a year that has since been toggled away
		if m.params == nil || msg.Year != m.params.Year {
			return m, nil
		}
		if msg.Baseline {
			if msg.Err == nil {
				m.baseline = msg.Result
			}
			// the baseline only fills the view until the first slider-driven run
			if m.result != nil || m.seq != 0 {
				return m, nil
			}
		} else if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		m.curve = msg.Curve
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// everything else needs a loaded plan
	if m.planner == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Left):
		if m.sliders[m.focus].Decrement() {
			cmd := m.recalculate(m.currentInput())
			return m, cmd
		}
	case key.Matches(msg, m.keys.Right):
		if m.sliders[m.focus].Increment() {
			cmd := m.recalculate(m.currentInput())
			return m, cmd
		}
	case key.Matches(msg, m.keys.Reset):
		m.sliders = buildSliders(m.base)
		m.sliders[m.focus].SetFocused(true)
		cmd := m.recalculate(m.base)
		return m, cmd
	case key.Matches(msg, m.keys.Year):
		params, err := taxparams.Resolve(m.nextYear(), m.paramsPath)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.params = params
		m.planner = optimizer.NewPlanner(params, calculation.NopLogger{})
		m.baseline = nil
		m.result = nil
		cmd := tea.Batch(m.baselineCmd(), m.recalculate(m.currentInput()))
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveFocus(delta int) {
	m.sliders[m.focus].SetFocused(false)
	m.focus = (m.focus + delta + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focus].SetFocused(true)
}

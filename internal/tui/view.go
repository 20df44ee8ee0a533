package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/output"
	"github.com/rgehrsitz/isoamt/internal/tui/components"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return AppStyle.Render(InfoStyle.Render("⠋ Loading " + m.planPath + "..."))
	}
	if m.plan == nil {
		return AppStyle.Render(m.renderError() + "\n\n" + m.help.View(m.keys))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, m.renderSliders(), "", m.renderScenario())
	right := m.renderResult()

	body := lipgloss.JoinHorizontal(lipgloss.Top, BorderStyle.Render(left), "  ", right)
	sections := []string{m.renderTitleBar(), body}
	if m.err != nil {
		sections = append(sections, m.renderError())
	}
	sections = append(sections, StatusBarStyle.Render(m.help.View(m.keys)))

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("ISO / AMT Exercise Planner")
	subtitle := SubtitleStyle.Render(fmt.Sprintf("Tax year %d • %s • %s",
		m.params.Year, m.base.FilingStatus.Label(), m.planPath))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m Model) renderSliders() string {
	rendered := make([]string, len(m.sliders))
	for i, s := range m.sliders {
		rendered[i] = s.Render()
	}
	return strings.Join(rendered, "\n\n")
}

func (m Model) renderScenario() string {
	lines := []string{
		fmt.Sprintf("Strike:  %s", output.FormatCurrency(m.base.ISOStrike)),
		fmt.Sprintf("Shares:  %s", output.FormatShares(m.base.TotalSharesAvailable)),
	}
	return SubtitleStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderResult() string {
	if m.result == nil {
		return InfoStyle.Render("Calculating...")
	}
	opt := m.result.Optimal

	sharesCard := components.NewMetricCard("Max shares", output.FormatShares(opt.MaxShares))
	amtCard := components.NewMetricCard("Projected AMT", output.FormatCurrency(opt.ProjectedAMT))
	cashCard := components.NewMetricCard("Cash needed", output.FormatCurrency(opt.CashNeeded))
	totalCard := components.NewMetricCard("Total tax", output.FormatCurrency(opt.ProjectedTotalTax))
	if b := m.baseline; b != nil && b != m.result {
		if d := opt.MaxShares - b.Optimal.MaxShares; d != 0 {
			sharesCard.WithTrend(d > 0, d > 0, fmt.Sprintf("%+d vs plan", d))
		}
		addMoneyTrend(amtCard, opt.ProjectedAMT.Sub(b.Optimal.ProjectedAMT))
		addMoneyTrend(cashCard, opt.CashNeeded.Sub(b.Optimal.CashNeeded))
		addMoneyTrend(totalCard, opt.ProjectedTotalTax.Sub(b.Optimal.ProjectedTotalTax))
	}

	sections := []string{
		components.MetricGrid([]*components.MetricCard{sharesCard, amtCard, cashCard, totalCard}, 2),
		"",
		components.NewProgressBar(opt.BudgetUtilization.InexactFloat64()).WithLabel("Budget utilization").WithWidth(36).Render(),
		"",
		m.renderTiles(),
		m.renderSensitivity(),
		"",
		m.renderCurve(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// addMoneyTrend shows a change in a cost; increases are unfavorable
func addMoneyTrend(card *components.MetricCard, delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	sign := "+"
	if delta.IsNegative() {
		sign = ""
	}
	card.WithTrend(delta.IsPositive(), delta.IsNegative(), sign+output.FormatCurrency(delta)+" vs plan")
}

func (m Model) renderTiles() string {
	tiles := m.result.Tiles.All()
	cards := make([]*components.ScenarioCard, len(tiles))
	for i, t := range tiles {
		cards[i] = components.NewScenarioCard(t.Percentage.Mul(decimal.NewFromInt(100)).String() + "% of grant").
			AddHighlight(output.FormatShares(t.Shares) + " shares").
			AddHighlight("AMT " + output.FormatCurrency(t.ProjectedAMT)).
			AddHighlight("Cash " + output.FormatCurrency(t.CashNeeded)).
			SetSelected(t.Shares <= m.result.Optimal.MaxShares)
	}
	return components.ScenarioRow(cards)
}

func (m Model) renderSensitivity() string {
	side := func(name string, r *domain.SensitivityResult) *components.ScenarioCard {
		card := components.NewScenarioCard(name)
		if r == nil {
			return card.AddHighlight("FMV at or below strike").SetDisabled(true)
		}
		return card.
			AddHighlight("FMV " + output.FormatCurrency(r.FMV)).
			AddHighlight(output.FormatShares(r.MaxShares) + " shares")
	}
	return components.ScenarioRow([]*components.ScenarioCard{
		side("FMV -10%", m.result.Sensitivity.Down),
		side("FMV +10%", m.result.Sensitivity.Up),
	})
}

func (m Model) renderCurve() string {
	if len(m.curve) == 0 {
		return ""
	}
	amt := make([]float64, len(m.curve))
	budget := make([]float64, len(m.curve))
	for i, v := range m.curve {
		amt[i] = v.InexactFloat64()
		budget[i] = m.curve[0].Add(m.currentInput().TargetAMTBudget).InexactFloat64()
	}
	return components.NewASCIIChart("AMT by share of grant exercised").
		AddSeries("AMT", amt, ColorAccent).
		AddSeries("budget", budget, ColorMuted).
		WithLabels([]string{"0", output.FormatShares(m.base.TotalSharesAvailable)}).
		WithSize(60, 8).
		Render()
}

func (m Model) renderError() string {
	if m.err == nil {
		return ""
	}
	return ErrorStyle.Render("Error: " + m.err.Error())
}

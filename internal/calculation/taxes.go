package calculation

import (
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Deduction: the larger of itemized and standard deduction, no election.
//
// 2. AMT income: ordinary income + ISO bargain element + other adjustments.
//    The regular deduction is not subtracted and no preference items are
//    added back; this is a simplified Form 6251 base.
//
// 3. Tentative minimum tax: two tiers (26% / 28%) split at the table's
//    threshold. AMT owed is the excess of TMT over regular tax.
//
// 4. Federal only. No NIIT, state tax or AMT credit carryforward.

// CalculateTax maps a scenario and a parameter table to a full tax breakdown.
// It has no side effects; the only error is a table lacking the filing status.
func CalculateTax(input domain.TaxInput, params *domain.TaxParameters) (domain.TaxResult, error) {
	sp, err := params.ForStatus(input.FilingStatus)
	if err != nil {
		return domain.TaxResult{}, err
	}

	deduction := decimal.Max(input.ItemizedDeductions, sp.StandardDeduction)
	regularTaxable := nonNegative(input.OrdinaryIncome.Sub(deduction))
	regularTax := BracketTax(regularTaxable, sp.Brackets)

	bargain := BargainElement(input.SharesExercised, input.ISOStrike, input.ISOFMV)
	amtIncome := input.OrdinaryIncome.Add(bargain).Add(input.OtherAMTAdjustments)
	exemption := AMTExemption(amtIncome, sp)
	amtTaxable := nonNegative(amtIncome.Sub(exemption))
	tmt := TentativeMinimumTax(amtTaxable, sp.AMTRates)

	amtOwed := nonNegative(tmt.Sub(regularTax))
	total := regularTax.Add(amtOwed)

	effective := decimal.Zero
	if denom := input.OrdinaryIncome.Add(bargain); !denom.IsZero() {
		effective = total.Div(denom)
	}

	return domain.TaxResult{
		RegularTaxableIncome: regularTaxable,
		RegularTax:           regularTax,
		AMTIncome:            amtIncome,
		AMTExemption:         exemption,
		AMTTaxableIncome:     amtTaxable,
		TentativeMinimumTax:  tmt,
		AMTOwed:              amtOwed,
		TotalTaxOwed:         total,
		BargainElement:       bargain,
		EffectiveTaxRate:     effective,
	}, nil
}

// BracketTax applies progressive brackets to taxable income
func BracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	tax := decimal.Zero
	for _, bracket := range brackets {
		portion := nonNegative(income.Sub(bracket.Min))
		if !bracket.Unbounded() {
			portion = decimal.Min(portion, bracket.Max.Sub(bracket.Min))
		}
		if portion.GreaterThan(decimal.Zero) {
			tax = tax.Add(portion.Mul(bracket.Rate))
		}
		if bracket.Unbounded() || income.LessThanOrEqual(bracket.Max) {
			break
		}
	}
	return tax
}

// BargainElement is shares x (FMV - strike), zero when FMV does not exceed strike
func BargainElement(shares int64, strike, fmv decimal.Decimal) decimal.Decimal {
	spread := nonNegative(fmv.Sub(strike))
	return spread.Mul(decimal.NewFromInt(shares))
}

// AMTExemption returns the exemption after phaseout, floored at zero
func AMTExemption(amtIncome decimal.Decimal, sp domain.FilingStatusParams) decimal.Decimal {
	if amtIncome.LessThanOrEqual(sp.AMTPhaseoutStart) {
		return sp.AMTExemption
	}
	reduction := amtIncome.Sub(sp.AMTPhaseoutStart).Mul(sp.AMTPhaseoutRate)
	return nonNegative(sp.AMTExemption.Sub(reduction))
}

// TentativeMinimumTax applies the two-tier AMT schedule
func TentativeMinimumTax(amtTaxable decimal.Decimal, rates domain.AMTRateStructure) decimal.Decimal {
	if amtTaxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if amtTaxable.LessThanOrEqual(rates.Threshold) {
		return amtTaxable.Mul(rates.LowerRate)
	}
	lower := rates.Threshold.Mul(rates.LowerRate)
	upper := amtTaxable.Sub(rates.Threshold).Mul(rates.UpperRate)
	return lower.Add(upper)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

package taxparams

import (
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/shopspring/decimal"
)

// amtRates is shared by every status in both built-in tables
func amtRates() domain.AMTRateStructure {
	return domain.AMTRateStructure{
		Threshold: decimal.NewFromInt(220700),
		LowerRate: decimal.NewFromFloat(0.26),
		UpperRate: decimal.NewFromFloat(0.28),
	}
}

// brackets builds a bracket list from the upper bounds of every bracket but the last
func brackets(bounds []int64, rates []float64) []domain.TaxBracket {
	out := make([]domain.TaxBracket, 0, len(rates))
	lower := decimal.Zero
	for i, rate := range rates {
		b := domain.TaxBracket{Min: lower, Rate: decimal.NewFromFloat(rate)}
		if i < len(bounds) {
			b.Max = decimal.NewFromInt(bounds[i])
			lower = b.Max
		}
		out = append(out, b)
	}
	return out
}

var regularRates = []float64{0.10, 0.12, 0.22, 0.24, 0.32, 0.35, 0.37}

// TaxYear2024 returns the 2024 federal parameter table
func TaxYear2024() *domain.TaxParameters {
	return &domain.TaxParameters{
		Year: 2024,
		Statuses: map[domain.FilingStatus]domain.FilingStatusParams{
			domain.FilingStatusSingle: {
				StandardDeduction: decimal.NewFromInt(14600),
				AMTExemption:      decimal.NewFromInt(85700),
				AMTPhaseoutStart:  decimal.NewFromInt(609350),
				AMTPhaseoutRate:   decimal.NewFromFloat(0.25),
				Brackets:          brackets([]int64{11600, 47150, 100525, 191950, 243725, 609350}, regularRates),
				AMTRates:          amtRates(),
			},
			domain.FilingStatusMarried: {
				StandardDeduction: decimal.NewFromInt(29200),
				AMTExemption:      decimal.NewFromInt(133300),
				AMTPhaseoutStart:  decimal.NewFromInt(1218700),
				AMTPhaseoutRate:   decimal.NewFromFloat(0.25),
				Brackets:          brackets([]int64{23200, 94300, 201050, 383900, 487450, 731200}, regularRates),
				AMTRates:          amtRates(),
			},
		},
	}
}

// TaxYear2025 returns the 2025 federal parameter table
func TaxYear2025() *domain.TaxParameters {
	return &domain.TaxParameters{
		Year: 2025,
		Statuses: map[domain.FilingStatus]domain.FilingStatusParams{
			domain.FilingStatusSingle: {
				StandardDeduction: decimal.NewFromInt(15000),
				AMTExemption:      decimal.NewFromInt(88100),
				AMTPhaseoutStart:  decimal.NewFromInt(626350),
				AMTPhaseoutRate:   decimal.NewFromFloat(0.25),
				Brackets:          brackets([]int64{11925, 48475, 103350, 197300, 250525, 626350}, regularRates),
				AMTRates:          amtRates(),
			},
			domain.FilingStatusMarried: {
				StandardDeduction: decimal.NewFromInt(30000),
				AMTExemption:      decimal.NewFromInt(137000),
				AMTPhaseoutStart:  decimal.NewFromInt(1252700),
				AMTPhaseoutRate:   decimal.NewFromFloat(0.25),
				Brackets:          brackets([]int64{23850, 96950, 206700, 394600, 501050, 751600}, regularRates),
				AMTRates:          amtRates(),
			},
		},
	}
}

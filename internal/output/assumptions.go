package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Federal tax only: no state income tax and no Net Investment Income Tax",
	"Deduction is the larger of itemized and standard deduction",
	"AMT income is ordinary income plus the ISO bargain element; no other preference items",
	"Budget counts only AMT caused by the exercise, over AMT owed without exercising",
	"Shares are held past the qualifying period (no disqualifying disposition)",
	"AMT credit carryforward to later years is not modeled",
}

// Disclaimer is printed at the end of every report
const Disclaimer = "This plan is an estimate for discussion with a tax professional. It is not tax advice."

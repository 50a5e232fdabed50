// Package evaluation is the loan evaluation engine: amortization, risk
// bucketing, payment status and package eligibility. Every function is a pure
// function of its arguments.
package evaluation

import "time"

// Risk buckets. A probability below LowRiskCeiling is Low, below
// MediumRiskCeiling is Medium, anything else is High.
const (
	LowRiskCeiling    = 0.30
	MediumRiskCeiling = 0.60
)

// DueSoonWindow is how far ahead a payment counts as due soon.
const DueSoonWindow = 7 * 24 * time.Hour

// Package eligibility policy. The DTI comparison is strict.
const (
	MaxDebtToIncomeRatio = 0.50
	MinMonthsEmployed    = 6
)

// MaxScheduleMonths bounds the amortization table Schedule will build.
const MaxScheduleMonths = 1200

const monthsPerYear = 12

package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0 // one billion
	MaxInterestRate = 1000.0          // 1000% per year
	MaxTermMonths   = 600             // 50 years
	MinTermMonths   = 1

	// Credit score scale accepted for package minimums.
	MinCreditScore = 300
	MaxCreditScore = 850

	MaxPackageNameLength  = 120
	MaxLoansPerAssessment = 1000
	MaxPaymentsPerSummary = 10000

	DefaultCacheTTL = time.Hour
)

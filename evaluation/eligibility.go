package evaluation

import "loan-evaluator/domain"

// EligibilityCheck breaks a package eligibility decision into its criteria.
type EligibilityCheck struct {
	CreditScoreOK  bool `json:"credit_score_eligible"`
	DebtToIncomeOK bool `json:"dti_eligible"`
	EmploymentOK   bool `json:"employment_eligible"`
	Eligible       bool `json:"eligible"`
}

// CheckEligibility evaluates each criterion separately. A nil profile fails
// everything, and a missing field fails only its own criterion.
func CheckEligibility(profile *domain.ApplicantProfile, offer domain.LoanPackageOffer) EligibilityCheck {
	if profile == nil {
		return EligibilityCheck{}
	}

	var check EligibilityCheck
	if profile.CreditScore != nil {
		check.CreditScoreOK = *profile.CreditScore >= float64(offer.MinimumCreditScore)
	}
	if profile.DebtToIncomeRatio != nil {
		check.DebtToIncomeOK = *profile.DebtToIncomeRatio < MaxDebtToIncomeRatio
	}
	if profile.MonthsEmployed != nil {
		check.EmploymentOK = *profile.MonthsEmployed >= MinMonthsEmployed
	}
	check.Eligible = check.CreditScoreOK && check.DebtToIncomeOK && check.EmploymentOK
	return check
}

// IsEligibleForPackage reports whether profile qualifies for offer. It never
// fails; unusable data simply yields false.
func IsEligibleForPackage(profile *domain.ApplicantProfile, offer domain.LoanPackageOffer) bool {
	return CheckEligibility(profile, offer).Eligible
}

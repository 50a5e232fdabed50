package evaluation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-evaluator/domain"
)

func ptr[T any](v T) *T { return &v }

func profile(score, dti float64, months int) *domain.ApplicantProfile {
	return &domain.ApplicantProfile{
		CreditScore:       ptr(score),
		DebtToIncomeRatio: ptr(dti),
		MonthsEmployed:    ptr(months),
		Income:            60000,
		Age:               35,
	}
}

func TestIsEligibleForPackage(t *testing.T) {
	pkg := domain.LoanPackageOffer{Amount: 20000, InterestRatePercent: 9, TermMonths: 36, MinimumCreditScore: 680}

	tests := []struct {
		name    string
		profile *domain.ApplicantProfile
		want    bool
	}{
		{"all thresholds exactly met", profile(680, 0.49, 6), true},
		{"comfortably eligible", profile(800, 0.1, 120), true},
		{"five months employed", profile(850, 0.0, 5), false},
		{"score one point short", profile(679, 0.2, 24), false},
		{"dti at ceiling", profile(750, 0.50, 24), false},
		{"dti above one", profile(750, 1.3, 24), false},
		{"NaN dti", profile(750, math.NaN(), 24), false},
		{"nil profile", nil, false},
		{"empty profile", &domain.ApplicantProfile{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligibleForPackage(tt.profile, pkg))
		})
	}
}

func TestIsEligibleForPackage_PolicyConstants(t *testing.T) {
	assert.Equal(t, 0.50, MaxDebtToIncomeRatio)
	assert.Equal(t, 6, MinMonthsEmployed)
}

func TestCheckEligibility_MissingFieldFailsOnlyItsCriterion(t *testing.T) {
	pkg := domain.LoanPackageOffer{MinimumCreditScore: 600}

	p := profile(700, 0.3, 12)
	p.DebtToIncomeRatio = nil

	assert.Equal(t, EligibilityCheck{
		CreditScoreOK:  true,
		DebtToIncomeOK: false,
		EmploymentOK:   true,
		Eligible:       false,
	}, CheckEligibility(p, pkg))
}

func TestCheckEligibility_NilProfileFailsEverything(t *testing.T) {
	assert.Equal(t, EligibilityCheck{}, CheckEligibility(nil, domain.LoanPackageOffer{}))
}

func TestIsEligibleForPackage_RepeatedCallsAgree(t *testing.T) {
	pkg := domain.LoanPackageOffer{Amount: 20000, InterestRatePercent: 9, TermMonths: 36, MinimumCreditScore: 680}
	applicant := profile(680, 0.49, 6)
	before := *applicant

	first := IsEligibleForPackage(applicant, pkg)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, IsEligibleForPackage(applicant, pkg))
		assert.Equal(t, CheckEligibility(applicant, pkg), CheckEligibility(applicant, pkg))
	}
	assert.Equal(t, before, *applicant)
	assert.True(t, first)
}

package domain

import "time"

type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"loan_term_months"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// Offer converts a calculator request into the offer the engine evaluates.
func (in LoanInput) Offer() LoanPackageOffer {
	return LoanPackageOffer{
		Amount:              in.Amount,
		InterestRatePercent: in.InterestRate,
		TermMonths:          in.TermMonths,
	}
}

// LoanPackageOffer holds the financial terms of a loan package.
type LoanPackageOffer struct {
	Amount              float64 `json:"amount"`
	InterestRatePercent float64 `json:"interest_rate"`
	TermMonths          int     `json:"loan_term_months"`
	MinimumCreditScore  int     `json:"minimum_credit_score"`
}

// ApplicantProfile is the customer data eligibility is checked against.
// Nil pointer fields mean the value was never supplied.
type ApplicantProfile struct {
	CreditScore       *float64 `json:"credit_score,omitempty"`
	DebtToIncomeRatio *float64 `json:"dti_ratio,omitempty"`
	MonthsEmployed    *int     `json:"months_employed,omitempty"`
	Income            float64  `json:"income"`
	Age               int      `json:"age"`
}

// LoanSnapshot is the state of an active loan as reported by the backend.
type LoanSnapshot struct {
	ID                 string    `json:"loan_id,omitempty"`
	Principal          float64   `json:"principal"`
	AmountRemaining    float64   `json:"amount_remaining"`
	DefaultProbability float64   `json:"default_probability"`
	NextPaymentDate    time.Time `json:"next_payment_date"`
}

// PaymentRecord is one entry of a loan's repayment history.
type PaymentRecord struct {
	Amount      float64             `json:"amount"`
	PaymentDate time.Time           `json:"payment_date"`
	DueDate     time.Time           `json:"due_date"`
	Status      PaymentRecordStatus `json:"status"`
}

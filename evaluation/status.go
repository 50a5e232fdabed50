package evaluation

import (
	"fmt"
	"time"

	"loan-evaluator/domain"
)

// Progress is how much of a loan's principal has been repaid.
type Progress struct {
	Paid    float64 `json:"paid"`
	Percent float64 `json:"percent"`
}

// ClassifyPaymentStatus compares the next due date against now. A payment due
// exactly now is not overdue.
func ClassifyPaymentStatus(nextPaymentDate, now time.Time) domain.PaymentStatus {
	if nextPaymentDate.Before(now) {
		return domain.PaymentOverdue
	}

	until := nextPaymentDate.Sub(now)
	if until > 0 && until <= DueSoonWindow {
		return domain.PaymentDueSoon
	}
	return domain.PaymentOnTrack
}

// RepaymentProgress reports the repaid share of a loan's principal.
func RepaymentProgress(loan domain.LoanSnapshot) (Progress, error) {
	switch {
	case !isFinite(loan.Principal) || loan.Principal <= 0:
		return Progress{}, fmt.Errorf("%w: principal must be positive, got %v", domain.ErrInvalidInput, loan.Principal)
	case !isFinite(loan.AmountRemaining) || loan.AmountRemaining < 0:
		return Progress{}, fmt.Errorf("%w: amount remaining must be non-negative, got %v", domain.ErrInvalidInput, loan.AmountRemaining)
	case loan.AmountRemaining > loan.Principal:
		return Progress{}, fmt.Errorf("%w: amount remaining %v exceeds principal %v", domain.ErrInvalidInput, loan.AmountRemaining, loan.Principal)
	}

	paid := loan.Principal - loan.AmountRemaining
	return Progress{
		Paid:    RoundCurrency(paid),
		Percent: RoundCurrency(paid / loan.Principal * 100),
	}, nil
}

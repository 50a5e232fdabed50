package evaluation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-evaluator/domain"
)

// PaymentHistorySummary aggregates a repayment history.
type PaymentHistorySummary struct {
	TotalPayments int                                `json:"total_payments"`
	ByStatus      map[domain.PaymentRecordStatus]int `json:"by_status"`
	TotalPaid     float64                            `json:"total_paid"`
	Outstanding   float64                            `json:"outstanding"`
	PaidLate      int                                `json:"paid_late"`
}

// SummarizePayments counts records per status and sums paid and outstanding
// (pending or overdue) amounts in cents. A paid record whose payment date is
// after its due date counts as paid late. Statuses are normalized with
// domain.ParsePaymentRecordStatus.
func SummarizePayments(records []domain.PaymentRecord) (PaymentHistorySummary, error) {
	summary := PaymentHistorySummary{
		ByStatus: map[domain.PaymentRecordStatus]int{
			domain.RecordPaid:    0,
			domain.RecordPending: 0,
			domain.RecordOverdue: 0,
		},
	}

	paid, outstanding := decimal.Zero, decimal.Zero
	for i, rec := range records {
		status, err := domain.ParsePaymentRecordStatus(string(rec.Status))
		if err != nil {
			return PaymentHistorySummary{}, fmt.Errorf("payment %d: %w", i, err)
		}
		if !isFinite(rec.Amount) || rec.Amount < 0 {
			return PaymentHistorySummary{}, fmt.Errorf("payment %d: %w: amount must be non-negative, got %v", i, domain.ErrInvalidInput, rec.Amount)
		}

		amount := decimal.NewFromFloat(rec.Amount).Round(2)
		summary.ByStatus[status]++
		if status == domain.RecordPaid {
			paid = paid.Add(amount)
			if !rec.DueDate.IsZero() && rec.PaymentDate.After(rec.DueDate) {
				summary.PaidLate++
			}
		} else {
			outstanding = outstanding.Add(amount)
		}
	}

	summary.TotalPayments = len(records)
	summary.TotalPaid = paid.InexactFloat64()
	summary.Outstanding = outstanding.InexactFloat64()
	return summary, nil
}

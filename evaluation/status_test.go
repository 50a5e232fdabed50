package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-evaluator/domain"
)

func TestClassifyPaymentStatus(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name string
		next time.Time
		want domain.PaymentStatus
	}{
		{"exactly now", now, domain.PaymentOnTrack},
		{"one day ago", now.Add(-day), domain.PaymentOverdue},
		{"one nanosecond ago", now.Add(-time.Nanosecond), domain.PaymentOverdue},
		{"one second ahead", now.Add(time.Second), domain.PaymentDueSoon},
		{"seven days ahead", now.Add(7 * day), domain.PaymentDueSoon},
		{"just past the window", now.Add(7*day + time.Nanosecond), domain.PaymentOnTrack},
		{"eight days ahead", now.Add(8 * day), domain.PaymentOnTrack},
		{"zero date", time.Time{}, domain.PaymentOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPaymentStatus(tt.next, now))
		})
	}
}

func TestClassifyPaymentStatus_IgnoresTimeZone(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	next := now.In(tokyo).Add(3 * 24 * time.Hour)

	assert.Equal(t, domain.PaymentDueSoon, ClassifyPaymentStatus(next, now))
}

func TestRepaymentProgress(t *testing.T) {
	progress, err := RepaymentProgress(domain.LoanSnapshot{Principal: 10000, AmountRemaining: 7500})
	require.NoError(t, err)
	assert.Equal(t, Progress{Paid: 2500, Percent: 25}, progress)

	progress, err = RepaymentProgress(domain.LoanSnapshot{Principal: 3000, AmountRemaining: 3000})
	require.NoError(t, err)
	assert.Equal(t, Progress{}, progress)

	progress, err = RepaymentProgress(domain.LoanSnapshot{Principal: 3000, AmountRemaining: 0})
	require.NoError(t, err)
	assert.Equal(t, Progress{Paid: 3000, Percent: 100}, progress)
}

func TestRepaymentProgress_InvalidInput(t *testing.T) {
	tests := []domain.LoanSnapshot{
		{Principal: 0, AmountRemaining: 0},
		{Principal: -1, AmountRemaining: 0},
		{Principal: 100, AmountRemaining: -1},
		{Principal: 100, AmountRemaining: 100.01},
	}

	for _, loan := range tests {
		_, err := RepaymentProgress(loan)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", loan)
	}
}

func TestClassifyPaymentStatus_RepeatedCallsAgree(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
	next := now.Add(DueSoonWindow)
	nextCopy, nowCopy := next, now

	first := ClassifyPaymentStatus(next, now)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, ClassifyPaymentStatus(next, now))
	}
	assert.True(t, next.Equal(nextCopy))
	assert.True(t, now.Equal(nowCopy))
}

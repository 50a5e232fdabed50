package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RiskLevel buckets a default probability.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// PaymentStatus describes how close an active loan is to its next payment.
type PaymentStatus string

const (
	PaymentOverdue PaymentStatus = "Overdue"
	PaymentDueSoon PaymentStatus = "Due Soon"
	PaymentOnTrack PaymentStatus = "On Track"
)

// PaymentRecordStatus is the backend status of a single repayment.
type PaymentRecordStatus string

const (
	RecordPaid    PaymentRecordStatus = "paid"
	RecordPending PaymentRecordStatus = "pending"
	RecordOverdue PaymentRecordStatus = "overdue"
)

// ParsePaymentRecordStatus accepts the backend spelling in any case.
func ParsePaymentRecordStatus(s string) (PaymentRecordStatus, error) {
	switch st := PaymentRecordStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case RecordPaid, RecordPending, RecordOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, s)
	}
}

// UnmarshalJSON decodes through ParsePaymentRecordStatus, rejecting unknown
// statuses.
func (s *PaymentRecordStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := ParsePaymentRecordStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

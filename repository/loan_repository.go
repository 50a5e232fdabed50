package repository

import (
	"context"

	"loan-evaluator/domain"
)

type LoanRepository interface {
	Save(ctx context.Context, input domain.LoanInput, result domain.LoanResult) error
}

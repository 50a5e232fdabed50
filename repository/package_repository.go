package repository

import (
	"context"

	"loan-evaluator/domain"
)

// PackageRepository persists loan packages. Get and Update return
// domain.ErrPackageNotFound for unknown IDs.
type PackageRepository interface {
	Create(ctx context.Context, pkg domain.LoanPackage) error
	Get(ctx context.Context, id string) (domain.LoanPackage, error)
	// List returns active packages ordered by creation time. An empty bankID
	// matches every bank.
	List(ctx context.Context, bankID string) ([]domain.LoanPackage, error)
	Update(ctx context.Context, pkg domain.LoanPackage) error
}

package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"loan-evaluator/domain"
)

type PackageRepositoryMemory struct {
	mu       sync.RWMutex
	packages map[string]domain.LoanPackage
}

func NewPackageRepositoryMemory() *PackageRepositoryMemory {
	return &PackageRepositoryMemory{
		packages: make(map[string]domain.LoanPackage),
	}
}

func (r *PackageRepositoryMemory) Create(_ context.Context, pkg domain.LoanPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packages[pkg.ID]; exists {
		return fmt.Errorf("package %s already exists", pkg.ID)
	}
	r.packages[pkg.ID] = pkg
	return nil
}

func (r *PackageRepositoryMemory) Get(_ context.Context, id string) (domain.LoanPackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pkg, ok := r.packages[id]
	if !ok {
		return domain.LoanPackage{}, fmt.Errorf("%w: %s", domain.ErrPackageNotFound, id)
	}
	return pkg, nil
}

func (r *PackageRepositoryMemory) List(_ context.Context, bankID string) ([]domain.LoanPackage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.LoanPackage{}
	for _, pkg := range r.packages {
		if !pkg.IsActive {
			continue
		}
		if bankID != "" && pkg.BankID != bankID {
			continue
		}
		out = append(out, pkg)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PackageRepositoryMemory) Update(_ context.Context, pkg domain.LoanPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.packages[pkg.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrPackageNotFound, pkg.ID)
	}
	r.packages[pkg.ID] = pkg
	return nil
}

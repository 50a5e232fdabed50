package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"loan-evaluator/domain"
	"loan-evaluator/evaluation"
	"loan-evaluator/repository"
)

// PackageService manages the loan package catalogue.
type PackageService struct {
	repo  repository.PackageRepository
	now   func() time.Time
	newID func() string
}

func NewPackageService(repo repository.PackageRepository) *PackageService {
	return &PackageService{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *PackageService) Create(ctx context.Context, in domain.PackageInput) (domain.LoanPackage, error) {
	if err := validatePackageInput(in); err != nil {
		return domain.LoanPackage{}, err
	}

	now := s.now()
	pkg := domain.LoanPackage{
		ID:               s.newID(),
		BankID:           strings.TrimSpace(in.BankID),
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		LoanPackageOffer: in.LoanPackageOffer,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		return domain.LoanPackage{}, fmt.Errorf("failed to create package: %w", err)
	}
	return pkg, nil
}

// Get returns a package whether or not it is still active.
func (s *PackageService) Get(ctx context.Context, id string) (domain.LoanPackage, error) {
	return s.repo.Get(ctx, id)
}

// List returns the active packages, optionally for a single bank.
func (s *PackageService) List(ctx context.Context, bankID string) ([]domain.LoanPackage, error) {
	return s.repo.List(ctx, strings.TrimSpace(bankID))
}

func (s *PackageService) Update(ctx context.Context, id string, in domain.PackageInput) (domain.LoanPackage, error) {
	if err := validatePackageInput(in); err != nil {
		return domain.LoanPackage{}, err
	}

	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.LoanPackage{}, err
	}

	pkg.BankID = strings.TrimSpace(in.BankID)
	pkg.Name = strings.TrimSpace(in.Name)
	pkg.Description = in.Description
	pkg.LoanPackageOffer = in.LoanPackageOffer
	pkg.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, pkg); err != nil {
		return domain.LoanPackage{}, err
	}
	return pkg, nil
}

// Delete deactivates a package. Deleting an inactive package is a no-op.
func (s *PackageService) Delete(ctx context.Context, id string) error {
	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !pkg.IsActive {
		return nil
	}

	pkg.IsActive = false
	pkg.UpdatedAt = s.now()
	return s.repo.Update(ctx, pkg)
}

// Quote returns the payment breakdown of a package's offer.
func (s *PackageService) Quote(ctx context.Context, id string) (evaluation.LoanSummary, error) {
	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return evaluation.LoanSummary{}, err
	}
	return evaluation.Summarize(pkg.LoanPackageOffer)
}

func validatePackageInput(in domain.PackageInput) error {
	name := strings.TrimSpace(in.Name)
	switch {
	case strings.TrimSpace(in.BankID) == "":
		return fmt.Errorf("%w: bank id is required", domain.ErrInvalidInput)
	case name == "":
		return fmt.Errorf("%w: package name is required", domain.ErrInvalidInput)
	case len(name) > MaxPackageNameLength:
		return fmt.Errorf("%w: package name exceeds %d characters", domain.ErrInvalidInput, MaxPackageNameLength)
	case in.MinimumCreditScore < MinCreditScore || in.MinimumCreditScore > MaxCreditScore:
		return fmt.Errorf("%w: minimum credit score must be between %d and %d", domain.ErrInvalidInput, MinCreditScore, MaxCreditScore)
	}

	return validateLoanInput(domain.LoanInput{
		Amount:       in.Amount,
		InterestRate: in.InterestRatePercent,
		TermMonths:   in.TermMonths,
	})
}

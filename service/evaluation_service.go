package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loan-evaluator/domain"
	"loan-evaluator/evaluation"
	"loan-evaluator/metrics"
	"loan-evaluator/repository"
)

// LoanAssessment is the evaluated state of one active loan.
type LoanAssessment struct {
	LoanID        string               `json:"loan_id,omitempty"`
	Risk          domain.RiskLevel     `json:"risk_level"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Progress      evaluation.Progress  `json:"progress"`
}

// Assessment covers a set of active loans and their aggregate.
type Assessment struct {
	Loans     []LoanAssessment            `json:"loans"`
	Portfolio evaluation.PortfolioSummary `json:"portfolio"`
}

// PackageEligibility is the eligibility verdict for one package.
type PackageEligibility struct {
	Package        domain.LoanPackage          `json:"package"`
	Check          evaluation.EligibilityCheck `json:"check"`
	MonthlyPayment float64                     `json:"monthly_payment"`
}

// EvaluationService exposes the evaluation engine to transport layers and
// resolves packages from the catalogue.
type EvaluationService struct {
	packages repository.PackageRepository
	now      func() time.Time
}

func NewEvaluationService(packages repository.PackageRepository) *EvaluationService {
	return &EvaluationService{
		packages: packages,
		now:      time.Now,
	}
}

func (s *EvaluationService) ClassifyRisk(probability float64) (domain.RiskLevel, error) {
	risk, err := evaluation.ClassifyDefaultRisk(probability)
	if err != nil {
		metrics.Evaluations.WithLabelValues("risk", metrics.OutcomeInvalid).Inc()
		return "", err
	}
	metrics.Evaluations.WithLabelValues("risk", string(risk)).Inc()
	return risk, nil
}

// PaymentStatus classifies a due date. A zero now means the current time.
func (s *EvaluationService) PaymentStatus(next, now time.Time) domain.PaymentStatus {
	if now.IsZero() {
		now = s.now()
	}
	status := evaluation.ClassifyPaymentStatus(next, now)
	metrics.Evaluations.WithLabelValues("payment_status", string(status)).Inc()
	return status
}

// AssessLoans evaluates every loan and the portfolio they form. A zero now
// means the current time. Any invalid loan fails the whole assessment.
func (s *EvaluationService) AssessLoans(
	ctx context.Context,
	loans []domain.LoanSnapshot,
	now time.Time,
) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	if len(loans) > MaxLoansPerAssessment {
		return Assessment{}, fmt.Errorf("%w: at most %d loans per assessment", domain.ErrInvalidInput, MaxLoansPerAssessment)
	}
	if now.IsZero() {
		now = s.now()
	}

	assessed := make([]LoanAssessment, 0, len(loans))
	for i, loan := range loans {
		risk, err := evaluation.ClassifyDefaultRisk(loan.DefaultProbability)
		if err != nil {
			metrics.Evaluations.WithLabelValues("assessment", metrics.OutcomeInvalid).Inc()
			return Assessment{}, fmt.Errorf("loan %d (%s): %w", i, loan.ID, err)
		}
		progress, err := evaluation.RepaymentProgress(loan)
		if err != nil {
			metrics.Evaluations.WithLabelValues("assessment", metrics.OutcomeInvalid).Inc()
			return Assessment{}, fmt.Errorf("loan %d (%s): %w", i, loan.ID, err)
		}

		assessed = append(assessed, LoanAssessment{
			LoanID:        loan.ID,
			Risk:          risk,
			PaymentStatus: evaluation.ClassifyPaymentStatus(loan.NextPaymentDate, now),
			Progress:      progress,
		})
	}

	portfolio, err := evaluation.SummarizePortfolio(loans, now)
	if err != nil {
		return Assessment{}, err
	}
	metrics.Evaluations.WithLabelValues("assessment", "ok").Inc()

	return Assessment{Loans: assessed, Portfolio: portfolio}, nil
}

// SummarizePayments aggregates a repayment history.
func (s *EvaluationService) SummarizePayments(
	ctx context.Context,
	records []domain.PaymentRecord,
) (evaluation.PaymentHistorySummary, error) {
	if err := ctx.Err(); err != nil {
		return evaluation.PaymentHistorySummary{}, err
	}
	if len(records) > MaxPaymentsPerSummary {
		return evaluation.PaymentHistorySummary{}, fmt.Errorf("%w: at most %d payments per summary", domain.ErrInvalidInput, MaxPaymentsPerSummary)
	}

	summary, err := evaluation.SummarizePayments(records)
	if err != nil {
		metrics.Evaluations.WithLabelValues("payment_history", metrics.OutcomeInvalid).Inc()
		return evaluation.PaymentHistorySummary{}, err
	}
	metrics.Evaluations.WithLabelValues("payment_history", "ok").Inc()
	return summary, nil
}

// CheckPackageEligibility evaluates profile against one active package.
// Inactive packages are reported as not found.
func (s *EvaluationService) CheckPackageEligibility(
	ctx context.Context,
	profile *domain.ApplicantProfile,
	packageID string,
) (PackageEligibility, error) {
	pkg, err := s.packages.Get(ctx, packageID)
	if err != nil {
		return PackageEligibility{}, err
	}
	if !pkg.IsActive {
		return PackageEligibility{}, fmt.Errorf("%w: %s is inactive", domain.ErrPackageNotFound, packageID)
	}

	payment, err := evaluation.ComputeMonthlyPayment(pkg.LoanPackageOffer)
	if err != nil {
		return PackageEligibility{}, fmt.Errorf("package %s: %w", packageID, err)
	}

	check := evaluation.CheckEligibility(profile, pkg.LoanPackageOffer)
	recordEligibility(check)

	return PackageEligibility{
		Package:        pkg,
		Check:          check,
		MonthlyPayment: evaluation.RoundCurrency(payment),
	}, nil
}

// EligiblePackages lists the active packages the profile qualifies for.
func (s *EvaluationService) EligiblePackages(
	ctx context.Context,
	profile *domain.ApplicantProfile,
) ([]PackageEligibility, error) {
	packages, err := s.packages.List(ctx, "")
	if err != nil {
		return nil, err
	}

	out := []PackageEligibility{}
	if profile == nil {
		return out, nil
	}

	for _, pkg := range packages {
		check := evaluation.CheckEligibility(profile, pkg.LoanPackageOffer)
		recordEligibility(check)
		if !check.Eligible {
			continue
		}

		payment, err := evaluation.ComputeMonthlyPayment(pkg.LoanPackageOffer)
		if err != nil {
			slog.Warn("skipping package with invalid offer", "package_id", pkg.ID, "error", err)
			continue
		}

		out = append(out, PackageEligibility{
			Package:        pkg,
			Check:          check,
			MonthlyPayment: evaluation.RoundCurrency(payment),
		})
	}
	return out, nil
}

func recordEligibility(check evaluation.EligibilityCheck) {
	outcome := "ineligible"
	if check.Eligible {
		outcome = "eligible"
	}
	metrics.Evaluations.WithLabelValues("eligibility", outcome).Inc()
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"loan-evaluator/domain"
	"loan-evaluator/evaluation"
	"loan-evaluator/metrics"
	"loan-evaluator/repository"
)

type LoanService struct {
	repo     repository.LoanRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
}

// NewLoanService creates a new LoanService. Results are memoized in cache for
// cacheTTL; a non-positive ttl falls back to DefaultCacheTTL.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *LoanService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &LoanService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanResult{}, err
	}

	result, err := s.lookupOrCompute(ctx, input)
	if err != nil {
		return domain.LoanResult{}, err
	}

	// Persisting is best effort
	if err := s.repo.Save(ctx, input, result); err != nil {
		slog.Warn("failed to save loan calculation", "error", err)
	}

	return result, nil
}

// BuildSchedule returns the amortization table for the input.
func (s *LoanService) BuildSchedule(
	_ context.Context,
	input domain.LoanInput,
) ([]evaluation.Installment, error) {
	if err := validateLoanInput(input); err != nil {
		return nil, err
	}

	rows, err := evaluation.Schedule(input.Offer())
	if err != nil {
		metrics.Evaluations.WithLabelValues("schedule", metrics.OutcomeInvalid).Inc()
		return nil, err
	}
	metrics.Evaluations.WithLabelValues("schedule", "ok").Inc()
	return rows, nil
}

func (s *LoanService) lookupOrCompute(ctx context.Context, input domain.LoanInput) (domain.LoanResult, error) {
	key := loanCacheKey(input)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.LoanResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return result, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	summary, err := evaluation.Summarize(input.Offer())
	if err != nil {
		metrics.Evaluations.WithLabelValues("payment", metrics.OutcomeInvalid).Inc()
		return domain.LoanResult{}, err
	}
	metrics.Evaluations.WithLabelValues("payment", "ok").Inc()

	result := domain.LoanResult{
		MonthlyPayment: summary.MonthlyPayment,
		TotalPayment:   summary.TotalPayment,
		TotalInterest:  summary.TotalInterest,
	}

	if encoded, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			slog.Warn("failed to cache loan calculation", "key", key, "error", err)
		}
	}

	return result, nil
}

func loanCacheKey(input domain.LoanInput) string {
	return "loan:" +
		strconv.FormatFloat(input.Amount, 'g', -1, 64) + ":" +
		strconv.FormatFloat(input.InterestRate, 'g', -1, 64) + ":" +
		strconv.Itoa(input.TermMonths)
}

func validateLoanInput(input domain.LoanInput) error {
	if math.IsNaN(input.Amount) || input.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if input.Amount > MaxLoanAmount {
		return fmt.Errorf("%w: amount exceeds the maximum of $%.2f", domain.ErrInvalidInput, MaxLoanAmount)
	}
	if math.IsNaN(input.InterestRate) || input.InterestRate < 0 {
		return fmt.Errorf("%w: interest rate must not be negative", domain.ErrInvalidInput)
	}
	if input.InterestRate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", domain.ErrInvalidInput, MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return fmt.Errorf("%w: term must be at least %d month", domain.ErrInvalidInput, MinTermMonths)
	}
	if input.TermMonths > MaxTermMonths {
		return fmt.Errorf("%w: term exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTermMonths)
	}
	return nil
}

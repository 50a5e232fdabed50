package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loan-evaluator/domain"
	"loan-evaluator/repository"
)

type MockLoanRepository struct {
	SaveCalls  int
	ForceError bool
}

func (m *MockLoanRepository) Save(
	_ context.Context,
	_ domain.LoanInput,
	_ domain.LoanResult,
) error {
	m.SaveCalls++
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func newTestLoanService(repo repository.LoanRepository) *LoanService {
	return NewLoanService(repo, repository.NewMemoryCache(), time.Minute)
}

func TestCalculateLoan_WithInterest(t *testing.T) {
	mockRepo := &MockLoanRepository{}
	service := newTestLoanService(mockRepo)

	result, err := service.CalculateLoan(context.Background(), domain.LoanInput{
		Amount:       10000,
		InterestRate: 12,
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LoanResult{MonthlyPayment: 888.49, TotalPayment: 10661.85, TotalInterest: 661.85}, result)
	assert.Equal(t, 1, mockRepo.SaveCalls)
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {
	service := newTestLoanService(&MockLoanRepository{})

	result, err := service.CalculateLoan(context.Background(), domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Zero(t, result.TotalInterest)
}

func TestCalculateLoan_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"zero amount", domain.LoanInput{Amount: 0, InterestRate: 10, TermMonths: 12}},
		{"amount above limit", domain.LoanInput{Amount: MaxLoanAmount + 1, InterestRate: 10, TermMonths: 12}},
		{"negative rate", domain.LoanInput{Amount: 1000, InterestRate: -1, TermMonths: 12}},
		{"rate above limit", domain.LoanInput{Amount: 1000, InterestRate: MaxInterestRate + 1, TermMonths: 12}},
		{"zero term", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: 0}},
		{"term above limit", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: MaxTermMonths + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockLoanRepository{}
			service := newTestLoanService(mockRepo)

			_, err := service.CalculateLoan(context.Background(), tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, mockRepo.SaveCalls, "repository Save should NOT be called")
		})
	}
}

func TestCalculateLoan_SaveFailureIsNotFatal(t *testing.T) {
	service := newTestLoanService(&MockLoanRepository{ForceError: true})

	_, err := service.CalculateLoan(context.Background(), domain.LoanInput{Amount: 500, InterestRate: 5, TermMonths: 6})

	assert.NoError(t, err)
}

func TestCalculateLoan_ServesCachedResult(t *testing.T) {
	ctx := context.Background()
	input := domain.LoanInput{Amount: 2000, InterestRate: 6, TermMonths: 24}
	cached := `{"monthly_payment":1,"total_payment":2,"total_interest":3}`

	cache := &MockCache{}
	cache.On("Get", ctx, loanCacheKey(input)).Return(cached, true)

	mockRepo := &MockLoanRepository{}
	service := NewLoanService(mockRepo, cache, time.Minute)

	result, err := service.CalculateLoan(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, domain.LoanResult{MonthlyPayment: 1, TotalPayment: 2, TotalInterest: 3}, result)
	assert.Equal(t, 1, mockRepo.SaveCalls)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateLoan_StoresResultInCache(t *testing.T) {
	ctx := context.Background()
	input := domain.LoanInput{Amount: 1200, InterestRate: 0, TermMonths: 12}

	cache := &MockCache{}
	cache.On("Get", ctx, loanCacheKey(input)).Return("", false)
	cache.On("Set", ctx, loanCacheKey(input), `{"monthly_payment":100,"total_payment":1200,"total_interest":0}`, 5*time.Minute).
		Return(errors.New("cache down"))

	service := NewLoanService(&MockLoanRepository{}, cache, 5*time.Minute)

	result, err := service.CalculateLoan(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MonthlyPayment)
	cache.AssertExpectations(t)
}

func TestNewLoanService_DefaultTTL(t *testing.T) {
	service := NewLoanService(&MockLoanRepository{}, repository.NewMemoryCache(), 0)
	assert.Equal(t, DefaultCacheTTL, service.cacheTTL)
}

func TestBuildSchedule(t *testing.T) {
	service := newTestLoanService(&MockLoanRepository{})

	rows, err := service.BuildSchedule(context.Background(), domain.LoanInput{Amount: 1000, InterestRate: 0, TermMonths: 3})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Zero(t, rows[2].Balance)

	_, err = service.BuildSchedule(context.Background(), domain.LoanInput{Amount: 1000, InterestRate: 0, TermMonths: MaxTermMonths + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

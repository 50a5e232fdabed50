package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"loan-evaluator/domain"
	"loan-evaluator/service"
)

type EvaluationHandler struct {
	service *service.EvaluationService
}

func NewEvaluationHandler(service *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: service}
}

type riskRequest struct {
	DefaultProbability *float64 `json:"default_probability"`
}

type paymentStatusRequest struct {
	NextPaymentDate *time.Time `json:"next_payment_date"`
	Now             time.Time  `json:"now"`
}

type assessRequest struct {
	Loans []domain.LoanSnapshot `json:"loans"`
	Now   time.Time             `json:"now"`
}

type paymentHistoryRequest struct {
	Payments []domain.PaymentRecord `json:"payments"`
}

type eligibilityRequest struct {
	Profile *domain.ApplicantProfile `json:"profile"`
}

func (h *EvaluationHandler) ClassifyRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.DefaultProbability == nil {
		writeError(w, fmt.Errorf("%w: default_probability is required", domain.ErrInvalidInput))
		return
	}

	risk, err := h.service.ClassifyRisk(*req.DefaultProbability)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]domain.RiskLevel{"risk_level": risk})
}

func (h *EvaluationHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.NextPaymentDate == nil {
		writeError(w, fmt.Errorf("%w: next_payment_date is required", domain.ErrInvalidInput))
		return
	}

	status := h.service.PaymentStatus(*req.NextPaymentDate, req.Now)
	writeJSON(w, http.StatusOK, map[string]domain.PaymentStatus{"payment_status": status})
}

func (h *EvaluationHandler) AssessLoans(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	assessment, err := h.service.AssessLoans(r.Context(), req.Loans, req.Now)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

func (h *EvaluationHandler) SummarizePayments(w http.ResponseWriter, r *http.Request) {
	var req paymentHistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.service.SummarizePayments(r.Context(), req.Payments)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *EvaluationHandler) CheckPackageEligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.CheckPackageEligibility(r.Context(), req.Profile, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *EvaluationHandler) EligiblePackages(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	packages, err := h.service.EligiblePackages(r.Context(), req.Profile)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"packages": packages})
}

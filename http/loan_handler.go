package http

import (
	"net/http"

	"loan-evaluator/domain"
	"loan-evaluator/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) BuildSchedule(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	rows, err := h.service.BuildSchedule(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"schedule": rows})
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"loan-evaluator/domain"
	"loan-evaluator/service"
)

type PackageHandler struct {
	service *service.PackageService
}

func NewPackageHandler(service *service.PackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.PackageInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	pkg, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.List(r.Context(), r.URL.Query().Get("bank_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"packages": packages})
}

func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.PackageInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	pkg, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PackageHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Quote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

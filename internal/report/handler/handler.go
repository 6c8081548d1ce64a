package handler

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/httpx"
	"github.com/fekuna/omnipos-inventory/internal/report"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReportHandler) Routes(r chi.Router) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/", h.GenerateReport)
		rr.Get("/inventory", h.InventorySummary)
		rr.Get("/sales", h.SalesSummary)
		rr.Get("/low-stock", h.LowStock)
	})
}

// GenerateReport answers with the fixed-width text report, or JSON when asked for it.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.uc.GenerateReport(r.Context())
	if err != nil {
		h.logger.Error("generate report failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		httpx.WriteSuccess(w, http.StatusOK, rep)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, rep); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ReportHandler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.InventorySummary(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, s)
}

func (h *ReportHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.SalesSummary(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, s)
}

func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.LowStock(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, s)
}

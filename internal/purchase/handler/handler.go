package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/httpx"
	"github.com/fekuna/omnipos-inventory/internal/purchase"
	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type PurchaseHandler struct {
	uc     purchase.UseCase
	logger logger.ZapLogger
}

func NewPurchaseHandler(uc purchase.UseCase, log logger.ZapLogger) *PurchaseHandler {
	return &PurchaseHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *PurchaseHandler) Routes(r chi.Router) {
	r.Route("/purchases", func(pr chi.Router) {
		pr.Post("/", h.CreatePurchase)
		pr.Get("/", h.ListPurchases)
		pr.Get("/products", h.ListPurchasableProducts)
	})
}

func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var input dto.PurchaseInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if input.Reference == "" {
		input.Reference = r.Header.Get("Idempotency-Key")
	}

	res, err := h.uc.Purchase(r.Context(), &input)
	if err != nil {
		h.logger.Warn("purchase failed", zap.Int64("product_id", input.ProductID), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	httpx.WriteSuccess(w, status, res)
}

func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	productID, err := httpx.QueryInt64(r, "product_id")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	limit, err := httpx.QueryInt(r, "limit")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	offset, err := httpx.QueryInt(r, "offset")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	filters := &dto.PurchaseFilters{ProductID: productID, Limit: limit, Offset: offset}
	if since := r.URL.Query().Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			httpx.WriteError(w, apperror.Validation("since must be an RFC 3339 timestamp"))
			return
		}
		filters.Since = t
	}

	records, err := h.uc.ListPurchases(r.Context(), filters)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, records)
}

func (h *PurchaseHandler) ListPurchasableProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.ListPurchasableProducts(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, products)
}

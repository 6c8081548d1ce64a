package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/httpx"
	"github.com/fekuna/omnipos-inventory/internal/product"
	"github.com/fekuna/omnipos-inventory/internal/product/dto"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Routes(r chi.Router) {
	r.Route("/products", func(pr chi.Router) {
		pr.Post("/", h.CreateProduct)
		pr.Get("/", h.ListProducts)
		pr.Get("/{id}", h.GetProduct)
		pr.Put("/{id}", h.UpdateProduct)
		pr.Delete("/{id}", h.DeleteProduct)
	})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateProductInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &input)
	if err != nil {
		h.logger.Warn("create product failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, p)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := httpx.QueryInt64(r, "category_id")
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

	products, err := h.uc.ListProducts(r.Context(), &dto.ProductFilters{
		Name:        r.URL.Query().Get("name"),
		CategoryID:  categoryID,
		InStockOnly: r.URL.Query().Get("in_stock") == "true",
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	p, err := h.uc.GetProduct(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, p)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var input dto.UpdateProductInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	input.ID = id

	p, err := h.uc.UpdateProduct(r.Context(), &input)
	if err != nil {
		h.logger.Warn("update product failed", zap.Int64("product_id", id), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.uc.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Warn("delete product failed", zap.Int64("product_id", id), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

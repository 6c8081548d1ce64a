package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-inventory/internal/category"
	"github.com/fekuna/omnipos-inventory/internal/category/dto"
	"github.com/fekuna/omnipos-inventory/internal/httpx"
	"github.com/fekuna/omnipos-inventory/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Routes(r chi.Router) {
	r.Route("/categories", func(cr chi.Router) {
		cr.Post("/", h.CreateCategory)
		cr.Get("/", h.ListCategories)
		cr.Get("/{id}", h.GetCategory)
		cr.Put("/{id}", h.UpdateCategory)
		cr.Delete("/{id}", h.DeleteCategory)
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateCategoryInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}

	cat, err := h.uc.CreateCategory(r.Context(), &input)
	if err != nil {
		h.logger.Warn("create category failed", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
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

	cats, err := h.uc.ListCategories(r.Context(), &dto.CategoryFilters{
		Name:   r.URL.Query().Get("name"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, cats)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	cat, err := h.uc.GetCategory(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, cat)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var input dto.UpdateCategoryInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	input.ID = id

	cat, err := h.uc.UpdateCategory(r.Context(), &input)
	if err != nil {
		h.logger.Warn("update category failed", zap.Int64("category_id", id), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, cat)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	res, err := h.uc.DeleteCategory(r.Context(), id)
	if err != nil {
		h.logger.Warn("delete category failed", zap.Int64("category_id", id), zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, res)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moneymind/backend/internal/api/middleware"
	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/store"
	"github.com/rs/zerolog"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	categories store.CategoryRepository
	log        zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(categories store.CategoryRepository, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, log: log}
}

type categoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	ParentID    string `json:"parent_id,omitempty"`
	IsActive    bool   `json:"is_active"`
	BudgetLimit string `json:"budget_limit,omitempty"`
}

func newCategoryDTO(c *domain.Category) categoryDTO {
	dto := categoryDTO{
		ID:       c.ID,
		Name:     c.Name,
		Color:    c.Color,
		Icon:     c.Icon,
		ParentID: c.ParentID,
		IsActive: c.IsActive,
	}
	if c.BudgetLimit != nil {
		dto.BudgetLimit = c.BudgetLimit.String()
	}
	return dto
}

// ListCategories handles GET /api/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	dtos := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, newCategoryDTO(c))
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": dtos,
		"count":      len(dtos),
	})
}

type createCategoryRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	ParentID string `json:"parent_id"`
}

// CreateCategory handles POST /api/categories
func (h *CategoriesHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ParentID != "" {
		if _, err := h.categories.GetByID(ctx, req.ParentID); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Unknown parent category")
			return
		}
	}

	category, err := domain.NewCategory(req.Name, req.Color, req.Icon, req.ParentID, nil)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.categories.Save(ctx, category); err != nil {
		h.log.Error().Err(err).Msg("Failed to save category")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save category")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, newCategoryDTO(category))
}

// DeactivateCategory handles POST /api/categories/{id}/deactivate
func (h *CategoriesHandler) DeactivateCategory(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	category, err := h.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.log.Error().Err(err).Str("category_id", id).Msg("Failed to get category")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get category")
		return
	}

	category.Deactivate()
	if err := h.categories.Save(ctx, category); err != nil {
		h.log.Error().Err(err).Str("category_id", id).Msg("Failed to save category")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save category")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newCategoryDTO(category))
}

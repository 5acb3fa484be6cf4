package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/category"
)

// CategoryHandler exposes category and subcategory management.
type CategoryHandler struct {
	service *category.Service
	log     zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service *category.Service, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type CreateSubcategoryRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

// HandleCategories serves GET (list) and POST (create) on /api/categories.
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		cats, err := h.service.ListCategories(r.Context(), userID)
		if err != nil {
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to list categories")
			http.Error(w, "Failed to list categories", http.StatusInternalServerError)
			return
		}
		if cats == nil {
			cats = []category.Category{}
		}
		writeJSON(w, http.StatusOK, cats)

	case http.MethodPost:
		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		cat, err := h.service.AddCategory(r.Context(), userID, req.Name, req.Type)
		if err != nil {
			switch {
			case errors.Is(err, category.ErrDuplicateName):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, category.ErrEmptyName), errors.Is(err, category.ErrInvalidType):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				h.log.Error().Err(err).Str("user_id", userID).Msg("failed to create category")
				http.Error(w, "Failed to create category", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, cat)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCategoryByID serves DELETE on /api/categories/{id}.
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), userID, id); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("category_id", id).Msg("failed to delete category")
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubcategories serves GET (list) and POST (create) on /api/subcategories.
func (h *CategoryHandler) HandleSubcategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		subs, err := h.service.ListSubcategories(r.Context(), userID)
		if err != nil {
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to list subcategories")
			http.Error(w, "Failed to list subcategories", http.StatusInternalServerError)
			return
		}
		if subs == nil {
			subs = []category.Subcategory{}
		}
		writeJSON(w, http.StatusOK, subs)

	case http.MethodPost:
		var req CreateSubcategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sub, err := h.service.AddSubcategory(r.Context(), userID, req.Name, req.CategoryID)
		if err != nil {
			switch {
			case errors.Is(err, category.ErrCategoryNotFound):
				http.Error(w, "Parent category not found", http.StatusBadRequest)
			case errors.Is(err, category.ErrEmptyName):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				h.log.Error().Err(err).Str("user_id", userID).Msg("failed to create subcategory")
				http.Error(w, "Failed to create subcategory", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusCreated, sub)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSubcategoryByID serves DELETE on /api/subcategories/{id}.
func (h *CategoryHandler) HandleSubcategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Subcategory ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteSubcategory(r.Context(), userID, id); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("subcategory_id", id).Msg("failed to delete subcategory")
		http.Error(w, "Failed to delete subcategory", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps category request bodies
const maxBodyBytes = 1 << 20

// categoryRequest is the body of POST and PUT /categories.
// Name is a pointer so that an empty string is accepted while a missing field is not.
type categoryRequest struct {
	Name *string `json:"name" validate:"required"`
}

// decodeCategory reads and validates a category body
func (h *Handlers) decodeCategory(w http.ResponseWriter, r *http.Request) (string, error) {
	var req categoryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return "", fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return "", errors.New("invalid JSON body: unexpected data after object")
	}
	if err := h.validate.Struct(req); err != nil {
		return "", fmt.Errorf("name: field required")
	}
	return *req.Name, nil
}

// GetCategory handles GET /categories/{cat_id}
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "cat_id")
	if err != nil {
		h.unprocessable(w, err)
		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get_category", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, newCategoryResponse(category))
}

// CreateCategory handles POST /categories
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	name, err := h.decodeCategory(w, r)
	if err != nil {
		h.unprocessable(w, err)
		return
	}

	category, err := h.store.CreateCategory(r.Context(), name)
	if err != nil {
		h.storeError(w, r, "create_category", err)
		return
	}

	log.Info().Int64("category_id", category.ID).Msg("Category created")
	h.jsonResponse(w, http.StatusCreated, newCategoryResponse(category))
}

// UpdateCategory handles PUT /categories/{cat_id}
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "cat_id")
	if err != nil {
		h.unprocessable(w, err)
		return
	}
	name, err := h.decodeCategory(w, r)
	if err != nil {
		h.unprocessable(w, err)
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), id, name)
	if err != nil {
		h.storeError(w, r, "update_category", err)
		return
	}

	log.Info().Int64("category_id", category.ID).Msg("Category updated")
	h.jsonResponse(w, http.StatusOK, newCategoryResponse(category))
}

// DeleteCategory handles DELETE /categories/{cat_id}
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "cat_id")
	if err != nil {
		h.unprocessable(w, err)
		return
	}

	deleted, err := h.store.DeleteCategory(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "delete_category", err)
		return
	}

	log.Info().Int64("category_id", id).Msg("Category deleted")
	h.jsonResponse(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

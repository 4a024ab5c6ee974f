package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/northwind/internal/database"
)

// Store is the query surface the handlers need from the database
type Store interface {
	Ping(ctx context.Context) error
	ListCategories(ctx context.Context) ([]database.Category, error)
	GetCategory(ctx context.Context, id int64) (*database.Category, error)
	CreateCategory(ctx context.Context, name string) (*database.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*database.Category, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)
	ListCustomers(ctx context.Context) ([]database.Customer, error)
	GetProduct(ctx context.Context, id int64) (*database.Product, error)
	ListProductsExtended(ctx context.Context) ([]database.ProductExtended, error)
	ListProductOrders(ctx context.Context, productID int64) ([]database.ProductOrder, error)
	ListEmployees(ctx context.Context, q database.EmployeeQuery) ([]database.Employee, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store    Store
	validate *validator.Validate
}

// New creates a new Handlers instance
func New(store Store) *Handlers {
	return &Handlers{
		store:    store,
		validate: validator.New(),
	}
}

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// jsonResponse writes v as JSON with the given status
func (h *Handlers) jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// jsonError sends a JSON error response
func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, status, errorResponse{Error: message})
}

// jsonErrorDetail sends a JSON error response with a detail field
func (h *Handlers) jsonErrorDetail(w http.ResponseWriter, message, detail string, status int) {
	h.jsonResponse(w, status, errorResponse{Error: message, Detail: detail})
}

// storeError maps a database error to a response; op names the failed operation in logs
func (h *Handlers) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		h.jsonError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, database.ErrInvalidOrder):
		h.jsonErrorDetail(w, "Bad request", err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away or the request timeout already answered with 504
		log.Debug().Err(err).Str("op", op).Str("path", r.URL.Path).Msg("Request canceled")
	default:
		log.Error().Err(err).Str("op", op).Str("path", r.URL.Path).Msg("Database operation failed")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// NotFound handles unknown routes
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, "Not found", http.StatusNotFound)
}

// MethodNotAllowed handles known routes called with the wrong method
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// Index handles GET /
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"message": "Hello!"})
}

// Health handles GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Health check failed")
		h.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/northwind/internal/database"
)

// unprocessable reports a request whose parameters or body could not be parsed
func (h *Handlers) unprocessable(w http.ResponseWriter, err error) {
	h.jsonErrorDetail(w, "Unprocessable entity", err.Error(), http.StatusUnprocessableEntity)
}

// ListCategories handles GET /categories
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		h.storeError(w, r, "list_categories", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, newCategoriesResponse(categories))
}

// ListCustomers handles GET /customers
func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		h.storeError(w, r, "list_customers", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, newCustomersResponse(customers))
}

// GetProduct handles GET /products/{product_id}
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "product_id")
	if err != nil {
		h.unprocessable(w, err)
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get_product", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, ProductResponse{ID: product.ID, Name: product.Name})
}

// ListEmployees handles GET /employees?limit=&offset=&order=
func (h *Handlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := database.DefaultEmployeeQuery()

	// The order key is checked first so a bad value never reaches the database
	if values := r.URL.Query(); values.Has("order") {
		order, err := database.ParseEmployeeOrder(values.Get("order"))
		if err != nil {
			log.Debug().Str("order", values.Get("order")).Msg("Rejected employee order key")
			h.storeError(w, r, "list_employees", err)
			return
		}
		q.Order = order
	}

	var err error
	if q.Limit, err = queryInt(r, "limit", database.NoLimit); err != nil {
		h.unprocessable(w, err)
		return
	}
	if q.Offset, err = queryInt(r, "offset", 0); err != nil {
		h.unprocessable(w, err)
		return
	}

	employees, err := h.store.ListEmployees(r.Context(), q)
	if err != nil {
		h.storeError(w, r, "list_employees", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, newEmployeesResponse(employees))
}

// ListProductsExtended handles GET /products_extended
func (h *Handlers) ListProductsExtended(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProductsExtended(r.Context())
	if err != nil {
		h.storeError(w, r, "list_products_extended", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, newProductsExtendedResponse(products))
}

// ListProductOrders handles GET /products/{product_id}/orders
func (h *Handlers) ListProductOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "product_id")
	if err != nil {
		h.unprocessable(w, err)
		return
	}

	orders, err := h.store.ListProductOrders(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "list_product_orders", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, newOrdersResponse(orders))
}

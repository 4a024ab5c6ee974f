package handlers

import "github.com/saltyorg/northwind/internal/database"

// CategoryResponse is the JSON shape of a category
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CustomerResponse is the JSON shape of a customer
type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
}

// ProductResponse is the JSON shape of a single product
type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductExtendedResponse is a product with its category and supplier names
type ProductExtendedResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Supplier string `json:"supplier"`
}

// EmployeeResponse is the JSON shape of an employee
type EmployeeResponse struct {
	ID        int64  `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	City      string `json:"city"`
}

// OrderResponse is one order line of a product
type OrderResponse struct {
	ID         int64   `json:"id"`
	Customer   string  `json:"customer"`
	Quantity   int64   `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// DeleteResponse reports how many rows a delete removed
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

type categoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type customersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

type employeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

type productsExtendedResponse struct {
	ProductsExtended []ProductExtendedResponse `json:"products_extended"`
}

type ordersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func newCategoryResponse(c *database.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func newCategoriesResponse(categories []database.Category) categoriesResponse {
	resp := categoriesResponse{Categories: make([]CategoryResponse, len(categories))}
	for i := range categories {
		resp.Categories[i] = newCategoryResponse(&categories[i])
	}
	return resp
}

func newCustomersResponse(customers []database.Customer) customersResponse {
	resp := customersResponse{Customers: make([]CustomerResponse, len(customers))}
	for i, c := range customers {
		resp.Customers[i] = CustomerResponse{ID: c.ID, Name: c.Name, FullAddress: c.FullAddress}
	}
	return resp
}

func newEmployeesResponse(employees []database.Employee) employeesResponse {
	resp := employeesResponse{Employees: make([]EmployeeResponse, len(employees))}
	for i, e := range employees {
		resp.Employees[i] = EmployeeResponse{
			ID:        e.ID,
			LastName:  e.LastName,
			FirstName: e.FirstName,
			City:      e.City,
		}
	}
	return resp
}

func newProductsExtendedResponse(products []database.ProductExtended) productsExtendedResponse {
	resp := productsExtendedResponse{ProductsExtended: make([]ProductExtendedResponse, len(products))}
	for i, p := range products {
		resp.ProductsExtended[i] = ProductExtendedResponse{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Supplier: p.Supplier,
		}
	}
	return resp
}

func newOrdersResponse(orders []database.ProductOrder) ordersResponse {
	resp := ordersResponse{Orders: make([]OrderResponse, len(orders))}
	for i, o := range orders {
		resp.Orders[i] = OrderResponse{
			ID:         o.ID,
			Customer:   o.Customer,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice.InexactFloat64(),
		}
	}
	return resp
}

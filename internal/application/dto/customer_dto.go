package dto

import "time"

// CreateCustomerRequest entrada para registrar un cliente en el directorio.
type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

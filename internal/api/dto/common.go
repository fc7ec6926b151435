// Package dto provides request and response types for the bookstore JSON API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

// ListResponse is a list of items with its size.
type ListResponse[T any] struct {
	Items []T `json:"items" doc:"List of items"`
	Total int `json:"total" doc:"Number of items"`
}

// NewListResponse wraps items, never returning a null list.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// IDParam is a path parameter for resource IDs.
type IDParam struct {
	ID string `path:"id" doc:"Record identifier"`
}

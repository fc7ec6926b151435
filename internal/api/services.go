package api

import "github.com/bookstoreapp/bookstore-server/internal/service"

// Services groups the business services used by the API server.
type Services struct {
	Book      *service.BookService
	Magazine  *service.MagazineService
	Aggregate *service.AggregateService
	Search    *service.SearchService
}

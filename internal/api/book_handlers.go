package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookstoreapp/bookstore-server/internal/api/dto"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns every book in store order",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "booksByAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/aggregate",
		Summary:     "Group books by author",
		Description: "Returns author groups with title and ISBN, largest group first",
		Tags:        []string{"Books", "Aggregate"},
	}, s.handleBooksByAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Replace book",
		Description: "Overwrites every field; omitted fields are cleared",
		Tags:        []string{"Books"},
	}, s.handleReplaceBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete book",
		Description:   "Succeeds whether or not the book exists",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBook)
}

// ListBooksOutput is the response for listing books.
type ListBooksOutput struct {
	Body dto.ListResponse[dto.Book]
}

// BookOutput is the response for a single book.
type BookOutput struct {
	Body dto.Book
}

// CreateBookInput is the request for creating a book.
type CreateBookInput struct {
	Body dto.BookRequest
}

// ReplaceBookInput is the request for replacing a book.
type ReplaceBookInput struct {
	dto.IDParam
	Body dto.BookRequest
}

// AuthorGroupsOutput is the response for a per-kind aggregate.
type AuthorGroupsOutput struct {
	Body dto.ListResponse[dto.AuthorGroup]
}

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Book.List(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListBooksOutput{Body: dto.NewListResponse(dto.Books(books))}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *dto.IDParam) (*BookOutput, error) {
	book, err := s.services.Book.Get(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &BookOutput{Body: dto.BookFrom(book)}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.Create(ctx, input.Body.Input())
	if err != nil {
		return nil, apiError(err)
	}
	return &BookOutput{Body: dto.BookFrom(book)}, nil
}

func (s *Server) handleReplaceBook(ctx context.Context, input *ReplaceBookInput) (*BookOutput, error) {
	book, err := s.services.Book.Replace(ctx, input.ID, input.Body.Input())
	if err != nil {
		return nil, apiError(err)
	}
	return &BookOutput{Body: dto.BookFrom(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *dto.IDParam) (*struct{}, error) {
	if err := s.services.Book.Delete(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}

func (s *Server) handleBooksByAuthor(ctx context.Context, _ *struct{}) (*AuthorGroupsOutput, error) {
	groups, err := s.services.Book.GroupByAuthor(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &AuthorGroupsOutput{Body: dto.NewListResponse(dto.AuthorGroups(groups))}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	"github.com/bookstoreapp/bookstore-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search catalog",
		Description: "Matches title, author and ISBN across books and magazines",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains parameters for searching the catalog.
type SearchInput struct {
	Query     string `query:"q" maxLength:"200" doc:"Search text; empty matches everything"`
	Kind      string `query:"kind" enum:"book,magazine" doc:"Restrict to one kind"`
	Limit     int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset    int    `query:"offset" minimum:"0" doc:"Pagination offset"`
	Highlight bool   `query:"highlight" doc:"Include highlighted fragments"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	s.requestLogger(ctx).Debug("search request received",
		"query", input.Query,
		"kind", input.Kind,
		"limit", input.Limit,
	)

	result, err := s.services.Search.Search(ctx, search.Params{
		Query:     input.Query,
		Kind:      domain.Kind(input.Kind),
		Limit:     input.Limit,
		Offset:    input.Offset,
		Highlight: input.Highlight,
	})
	if err != nil {
		s.requestLogger(ctx).Error("search failed", "error", err)
		return nil, huma.Error500InternalServerError("search failed")
	}
	if result.Hits == nil {
		result.Hits = []search.Hit{}
	}
	return &SearchOutput{Body: *result}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookstoreapp/bookstore-server/internal/api/dto"
)

func (s *Server) registerAggregateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "aggregateCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/aggregate",
		Summary:     "Books and magazines by author",
		Description: "Authors with books come first, ordered by book count; authors with only magazines follow, ordered by magazine count.",
		Tags:        []string{"Aggregate"},
	}, s.handleAggregate)
}

// AggregateOutput is the response for the combined aggregate.
type AggregateOutput struct {
	Body dto.ListResponse[dto.CombinedAuthor]
}

func (s *Server) handleAggregate(ctx context.Context, _ *struct{}) (*AggregateOutput, error) {
	records, err := s.services.Aggregate.Combined(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &AggregateOutput{Body: dto.NewListResponse(dto.CombinedAuthors(records))}, nil
}

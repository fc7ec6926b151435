package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookstoreapp/bookstore-server/internal/api/dto"
)

func (s *Server) registerMagazineRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMagazines",
		Method:      http.MethodGet,
		Path:        "/api/v1/magazines",
		Summary:     "List magazines",
		Description: "Returns every magazine in store order",
		Tags:        []string{"Magazines"},
	}, s.handleListMagazines)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createMagazine",
		Method:        http.MethodPost,
		Path:          "/api/v1/magazines",
		Summary:       "Create magazine",
		Tags:          []string{"Magazines"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateMagazine)

	huma.Register(s.api, huma.Operation{
		OperationID: "magazinesByAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/magazines/aggregate",
		Summary:     "Group magazines by author",
		Description: "Returns author groups with title and ISBN, largest group first",
		Tags:        []string{"Magazines", "Aggregate"},
	}, s.handleMagazinesByAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMagazine",
		Method:      http.MethodGet,
		Path:        "/api/v1/magazines/{id}",
		Summary:     "Get magazine",
		Tags:        []string{"Magazines"},
	}, s.handleGetMagazine)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceMagazine",
		Method:      http.MethodPut,
		Path:        "/api/v1/magazines/{id}",
		Summary:     "Replace magazine",
		Description: "Overwrites every field; omitted fields are cleared",
		Tags:        []string{"Magazines"},
	}, s.handleReplaceMagazine)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteMagazine",
		Method:        http.MethodDelete,
		Path:          "/api/v1/magazines/{id}",
		Summary:       "Delete magazine",
		Description:   "Succeeds whether or not the magazine exists",
		Tags:          []string{"Magazines"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteMagazine)
}

// ListMagazinesOutput is the response for listing magazines.
type ListMagazinesOutput struct {
	Body dto.ListResponse[dto.Magazine]
}

// MagazineOutput is the response for a single magazine.
type MagazineOutput struct {
	Body dto.Magazine
}

// CreateMagazineInput is the request for creating a magazine.
type CreateMagazineInput struct {
	Body dto.MagazineRequest
}

// ReplaceMagazineInput is the request for replacing a magazine.
type ReplaceMagazineInput struct {
	dto.IDParam
	Body dto.MagazineRequest
}

func (s *Server) handleListMagazines(ctx context.Context, _ *struct{}) (*ListMagazinesOutput, error) {
	magazines, err := s.services.Magazine.List(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListMagazinesOutput{Body: dto.NewListResponse(dto.Magazines(magazines))}, nil
}

func (s *Server) handleGetMagazine(ctx context.Context, input *dto.IDParam) (*MagazineOutput, error) {
	magazine, err := s.services.Magazine.Get(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &MagazineOutput{Body: dto.MagazineFrom(magazine)}, nil
}

func (s *Server) handleCreateMagazine(ctx context.Context, input *CreateMagazineInput) (*MagazineOutput, error) {
	magazine, err := s.services.Magazine.Create(ctx, input.Body.Input())
	if err != nil {
		return nil, apiError(err)
	}
	return &MagazineOutput{Body: dto.MagazineFrom(magazine)}, nil
}

func (s *Server) handleReplaceMagazine(ctx context.Context, input *ReplaceMagazineInput) (*MagazineOutput, error) {
	magazine, err := s.services.Magazine.Replace(ctx, input.ID, input.Body.Input())
	if err != nil {
		return nil, apiError(err)
	}
	return &MagazineOutput{Body: dto.MagazineFrom(magazine)}, nil
}

func (s *Server) handleDeleteMagazine(ctx context.Context, input *dto.IDParam) (*struct{}, error) {
	if err := s.services.Magazine.Delete(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}

func (s *Server) handleMagazinesByAuthor(ctx context.Context, _ *struct{}) (*AuthorGroupsOutput, error) {
	groups, err := s.services.Magazine.GroupByAuthor(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &AuthorGroupsOutput{Body: dto.NewListResponse(dto.AuthorGroups(groups))}, nil
}

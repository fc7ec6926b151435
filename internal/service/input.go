package service

import (
	"time"

	"github.com/bookstoreapp/bookstore-server/internal/domain"
	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
)

// BookInput carries the caller-supplied fields of a book.
// A nil Author stores a book without an author.
type BookInput struct {
	Title       string  `json:"title"`
	Author      *string `json:"author,omitempty"`
	ISBN        string  `json:"isbn"`
	PublishDate string  `json:"publish_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// MagazineInput carries the caller-supplied fields of a magazine.
type MagazineInput struct {
	Title       string  `json:"title"`
	Author      *string `json:"author,omitempty"`
	ISBN        string  `json:"isbn"`
	PublishDate string  `json:"publish_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Issue       string  `json:"issue"`
}

func parseDate(s string) (*time.Time, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"publish_date": "must be a date in 2006-01-02 format"})
	}
	return d, nil
}

func (in BookInput) toBook() (*domain.Book, error) {
	date, err := parseDate(in.PublishDate)
	if err != nil {
		return nil, err
	}
	return &domain.Book{
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		PublishDate: date,
	}, nil
}

func (in MagazineInput) toMagazine() (*domain.Magazine, error) {
	date, err := parseDate(in.PublishDate)
	if err != nil {
		return nil, err
	}
	return &domain.Magazine{
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		PublishDate: date,
		Issue:       in.Issue,
	}, nil
}

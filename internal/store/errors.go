package store

import (
	"context"
	"errors"

	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
)

// Sentinel errors.
var (
	ErrNotFound      = domainerrors.ErrNotFound
	ErrAlreadyExists = errors.New("record already exists")
	ErrMissingID     = errors.New("record has no id")
)

// Fail maps a backend error onto the catalog error kinds. Domain errors
// pass through unchanged; anything else, including an expired store
// deadline, becomes a StorageFailure for op.
func Fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.StorageFailure(op+": store timeout", err)
	}
	return domainerrors.StorageFailure(op, err)
}

package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/bookstoreapp/bookstore-server/internal/errors"
	"github.com/bookstoreapp/bookstore-server/internal/store"
)

func TestFail(t *testing.T) {
	assert.NoError(t, store.Fail("list books", nil))

	notFound := domainerrors.NotFoundf("books %s not found", "book-1")
	assert.Same(t, notFound, store.Fail("get books", notFound))
	assert.ErrorIs(t, store.Fail("get books", fmt.Errorf("lookup: %w", store.ErrNotFound)), domainerrors.ErrNotFound)

	err := store.Fail("create books", store.ErrAlreadyExists)
	assert.Equal(t, domainerrors.CodeStorageFailure, domainerrors.CodeOf(err))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	err = store.Fail("list magazines", context.DeadlineExceeded)
	assert.Equal(t, domainerrors.CodeStorageFailure, domainerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "store timeout")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
